package mutate

import (
	"context"
	"iter"
	"slices"
)

// Composite applies its members in sequence order. The sequence is copied
// before the first member runs, so later changes to the source do not affect
// a pass already in progress. The first member to fail stops the pass; there
// is no rollback of members that already ran.
type Composite struct {
	Modifications iter.Seq[Modification]
}

func NewComposite(mods ...Modification) Composite {
	return Composite{Modifications: slices.Values(mods)}
}

// Collect builds a composite over an arbitrary sequence, which is read again
// on every apply.
func Collect(seq iter.Seq[Modification]) Composite {
	return Composite{Modifications: seq}
}

func (c Composite) ApplyUnchecked(ctx context.Context) error {
	for _, m := range c.members() {
		if err := m.ApplyUnchecked(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c Composite) Apply(ctx context.Context) error {
	for _, m := range c.members() {
		if err := m.Apply(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c Composite) members() []Modification {
	if c.Modifications == nil {
		return nil
	}
	return slices.Collect(c.Modifications)
}
