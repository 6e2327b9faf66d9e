package logging

import (
	"io"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(NewJSONHandler(os.Stdout)))
}

// NewJSONHandler is the stdout handler used before and after the database
// handler is attached.
func NewJSONHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// AttachDatabase makes the default logger also persist ERROR+ records to
// system_logs. The returned stop switches the default logger back to
// stdout before draining the buffer, so nothing logged afterwards is lost
// in an unflushed batch.
func AttachDatabase(db *gorm.DB) (stop func()) {
	h := NewPGHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(NewJSONHandler(os.Stdout), h)))
	return func() {
		Setup()
		h.Stop()
	}
}
