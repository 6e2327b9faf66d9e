package guidelines

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed guidelines.yaml
var embeddedCatalog []byte

var (
	ErrEmptyCatalog       = errors.New("guideline catalog has no categories")
	ErrDuplicateGuideline = errors.New("duplicate guideline id")
)

// Guideline is a single checkable quality rule.
type Guideline struct {
	ID  string `yaml:"id" json:"id"`
	URL string `yaml:"url" json:"url"`
	// NeededToPassSince is the activation time. Before it the guideline is
	// not enforced and does not show up in status reports.
	NeededToPassSince time.Time `yaml:"needed_to_pass_since" json:"needed_to_pass_since"`
	// ReadOnly guidelines are evaluated from other data, not set by a
	// moderator. The flag is advisory for the authoring surface.
	ReadOnly bool `yaml:"read_only" json:"read_only"`
}

// ActiveAt reports whether the guideline is enforced at now.
// Activation exactly at now counts as active.
func (g Guideline) ActiveAt(now time.Time) bool {
	return !g.NeededToPassSince.After(now)
}

// Category groups guidelines for presentation only.
type Category struct {
	ID         string      `yaml:"id" json:"id"`
	Guidelines []Guideline `yaml:"guidelines" json:"guidelines"`
}

// Entry is a guideline paired with the category it belongs to.
type Entry struct {
	CategoryID string
	Guideline  Guideline
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Catalog is the immutable, ordered category -> guideline structure.
type Catalog struct {
	categories []Category
	entries    []Entry
	byID       map[string]Guideline
}

var defaultCatalog = mustParse(embeddedCatalog)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	return defaultCatalog
}

// Load reads a catalog from path. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read guidelines file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse guidelines: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		categories: file.Categories,
		byID:       make(map[string]Guideline),
	}
	for _, cat := range file.Categories {
		if cat.ID == "" {
			return nil, errors.New("category id is required")
		}
		for _, g := range cat.Guidelines {
			if g.ID == "" {
				return nil, fmt.Errorf("category %q: guideline id is required", cat.ID)
			}
			if _, dup := c.byID[g.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateGuideline, g.ID)
			}
			if g.URL == "" {
				return nil, fmt.Errorf("guideline %q: url is required", g.ID)
			}
			if g.NeededToPassSince.IsZero() {
				return nil, fmt.Errorf("guideline %q: needed_to_pass_since is required", g.ID)
			}
			c.byID[g.ID] = g
			c.entries = append(c.entries, Entry{CategoryID: cat.ID, Guideline: g})
		}
	}
	return c, nil
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic("embedded guideline catalog is invalid: " + err.Error())
	}
	return c
}

// Categories returns a copy of the ordered category structure.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{
			ID:         cat.ID,
			Guidelines: append([]Guideline(nil), cat.Guidelines...),
		}
	}
	return out
}

// Entries flattens the catalog, keeping category and guideline order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Catalog) Lookup(id string) (Guideline, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// Len is the number of guidelines across all categories.
func (c *Catalog) Len() int {
	return len(c.entries)
}
