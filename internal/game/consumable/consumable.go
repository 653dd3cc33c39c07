// Package consumable defines elixirs and books whose stat contributions become
// permanent once consumed, and tracks what a character has consumed.
package consumable

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// ErrAlreadyRead is returned when a book that has already been read is read again.
var ErrAlreadyRead = errors.New("book already read")

// Elixir is a drinkable consumable. Each dose adds Stats again.
type Elixir struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Stats       stats.Contribution `yaml:"stats"`
}

// Book is a readable consumable. A book can be read once; it adds Stats and
// multiplies XP gain for each target in XPMultipliers.
type Book struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description"`
	Stats         stats.Contribution `yaml:"stats"`
	XPMultipliers map[string]float64 `yaml:"xp_multipliers"`
}

func validateCommon(id, name string) error {
	var errs []error
	if id == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	return errors.Join(errs...)
}

// Validate reports an error if the Elixir is missing required fields.
func (e *Elixir) Validate() error {
	return validateCommon(e.ID, e.Name)
}

// Validate reports an error if the Book is missing required fields or carries
// a non-positive XP multiplier.
func (b *Book) Validate() error {
	err := validateCommon(b.ID, b.Name)
	for target, m := range b.XPMultipliers {
		if m <= 0 {
			err = errors.Join(err, fmt.Errorf("xp multiplier for %q must be > 0, got %v", target, m))
		}
	}
	return err
}

// Registry holds elixir and book definitions by ID.
type Registry struct {
	elixirs map[string]*Elixir
	books   map[string]*Book
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		elixirs: make(map[string]*Elixir),
		books:   make(map[string]*Book),
	}
}

// RegisterElixir adds e, replacing any elixir with the same ID.
func (r *Registry) RegisterElixir(e *Elixir) { r.elixirs[e.ID] = e }

// RegisterBook adds b, replacing any book with the same ID.
func (r *Registry) RegisterBook(b *Book) { r.books[b.ID] = b }

// Elixir returns the elixir for id.
func (r *Registry) Elixir(id string) (*Elixir, bool) {
	e, ok := r.elixirs[id]
	return e, ok
}

// Book returns the book for id.
func (r *Registry) Book(id string) (*Book, bool) {
	b, ok := r.books[id]
	return b, ok
}

// Books returns every book sorted by ID.
func (r *Registry) Books() []*Book {
	out := make([]*Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *Book) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// LoadElixirs reads every .yaml file in dir into r.
//
// Precondition: dir must be a readable directory.
func (r *Registry) LoadElixirs(dir string) error {
	return loadDir(dir, func(data []byte, path string) error {
		var e Elixir
		if err := yaml.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("invalid elixir in %q: %w", path, err)
		}
		r.RegisterElixir(&e)
		return nil
	})
}

// LoadBooks reads every .yaml file in dir into r.
//
// Precondition: dir must be a readable directory.
func (r *Registry) LoadBooks(dir string) error {
	return loadDir(dir, func(data []byte, path string) error {
		var b Book
		if err := yaml.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("invalid book in %q: %w", path, err)
		}
		r.RegisterBook(&b)
		return nil
	})
}

func loadDir(dir string, fn func(data []byte, path string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading consumable dir %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		if err := fn(data, path); err != nil {
			return err
		}
	}
	return nil
}
