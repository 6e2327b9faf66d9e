package quality

import (
	"encoding/json"
	"fmt"
)

// Mark is the state of one guideline for one app. Unrated means no
// moderator verdict exists; it is never folded into a boolean.
type Mark int

const (
	Unrated Mark = iota
	Passed
	Failed
)

// MarkOf converts a stored verdict into a Mark.
func MarkOf(passed bool) Mark {
	if passed {
		return Passed
	}
	return Failed
}

func (m Mark) String() string {
	switch m {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unrated"
	}
}

// MarshalJSON renders the nullable boolean wire form: true, false or null.
func (m Mark) MarshalJSON() ([]byte, error) {
	switch m {
	case Passed:
		return []byte("true"), nil
	case Failed:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid mark %s: %w", data, err)
	}
	if v == nil {
		*m = Unrated
		return nil
	}
	*m = MarkOf(*v)
	return nil
}
