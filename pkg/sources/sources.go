package sources

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/mealdb/pkg/configfile"
)

// Supported source types.
const (
	TypeRandom     = "random"
	TypeSearch     = "search"
	TypeLetter     = "letter"
	TypeCategory   = "category"
	TypeArea       = "area"
	TypeIngredient = "ingredient"
)

const (
	defaultRequestDelayMs = 500
	defaultRandomLimit    = 1
	defaultQueryLimit     = 10
)

// Source is one feed query declared in the sources file.
type Source struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	Value          string `json:"value" yaml:"value"`
	Limit          int    `json:"limit" yaml:"limit"`
	RequestDelayMs int    `json:"request_delay_ms" yaml:"request_delay_ms"`
}

// RequestDelay returns the pause between page fetches for this source.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return defaultRequestDelayMs * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}

type fileRegistry struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry holds validated sources in file order. It is read-only after
// construction.
type Registry struct {
	sources []Source
	idx     map[string]int
}

// LoadRegistry reads and validates a YAML or JSON sources file.
func LoadRegistry(path string) (*Registry, error) {
	parsed, err := configfile.Load[fileRegistry](path, "sources")
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Sources)
}

// NewRegistry validates srcs and indexes them by id.
func NewRegistry(srcs []Source) (*Registry, error) {
	if len(srcs) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	reg := &Registry{idx: make(map[string]int, len(srcs))}
	for i, raw := range srcs {
		s := sanitizeSource(raw)
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, dup := reg.idx[s.ID]; dup {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.idx[s.ID] = len(reg.sources)
		reg.sources = append(reg.sources, s)
	}
	return reg, nil
}

// All returns a copy of the loaded sources in file order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	return append([]Source(nil), r.sources...)
}

// ByID returns the source with the given id.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	i, ok := r.idx[strings.TrimSpace(id)]
	if !ok {
		return Source{}, false
	}
	return r.sources[i], true
}

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.Value = strings.TrimSpace(s.Value)

	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Limit <= 0 {
		if s.Type == TypeRandom {
			s.Limit = defaultRandomLimit
		} else {
			s.Limit = defaultQueryLimit
		}
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	switch s.Type {
	case "":
		return fmt.Errorf("type is required for source %q", s.ID)
	case TypeRandom:
		return nil
	case TypeSearch, TypeLetter, TypeCategory, TypeArea, TypeIngredient:
		if s.Value == "" {
			return fmt.Errorf("value is required for %s source %q", s.Type, s.ID)
		}
		if s.Type == TypeLetter && len([]rune(s.Value)) != 1 {
			return fmt.Errorf("letter source %q needs a single character, got %q", s.ID, s.Value)
		}
		return nil
	default:
		return fmt.Errorf("unsupported type %q for source %q", s.Type, s.ID)
	}
}
