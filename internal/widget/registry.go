package widget

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	ErrUnknownWidget   = errors.New("unknown widget")
	ErrDuplicateWidget = errors.New("duplicate widget")
	ErrEmptyName       = errors.New("widget name is empty")
)

// suggestMaxDistance bounds how far a typo may be from a known name before
// no suggestion is offered.
const suggestMaxDistance = 3

// Registry indexes widgets by name. It is filled before the loop starts and
// only read afterwards, so it takes no locks.
type Registry struct {
	byName map[string]*Widget
	order  []*Widget
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Widget)}
}

func (r *Registry) Add(w *Widget) error {
	key := normalizeName(w.Name())
	if key == "" {
		return ErrEmptyName
	}
	if _, ok := r.byName[key]; ok {
		return fmt.Errorf("%w %q", ErrDuplicateWidget, w.Name())
	}
	r.byName[key] = w
	r.order = append(r.order, w)
	return nil
}

// Lookup finds a widget by case-insensitive name. Unknown names produce an
// ErrUnknownWidget that names the closest match, if one is close enough.
func (r *Registry) Lookup(name string) (*Widget, error) {
	key := normalizeName(name)
	if w, ok := r.byName[key]; ok {
		return w, nil
	}
	if s := r.suggest(key); s != "" {
		return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownWidget, name, s)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownWidget, name)
}

// All returns widgets in insertion order.
func (r *Registry) All() []*Widget {
	return slices.Clone(r.order)
}

func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) suggest(key string) string {
	best := ""
	bestDist := suggestMaxDistance + 1
	for _, w := range r.order {
		d := levenshtein.ComputeDistance(key, normalizeName(w.Name()))
		if d < bestDist {
			best = w.Name()
			bestDist = d
		}
	}
	return best
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
