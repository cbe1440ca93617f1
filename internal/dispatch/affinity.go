package dispatch

import "context"

type affinityKey struct{}

// Dispatcher is the pair of capabilities a UI toolkit offers for
// thread-affine widgets: an ownership query and a blocking cross-loop invoke.
type Dispatcher interface {
	OnLoop(ctx context.Context) bool
	Invoke(ctx context.Context, fn func(context.Context) error) error
}

// WithAffinity returns a child of ctx marked as running on owner.
func WithAffinity(ctx context.Context, owner any) context.Context {
	return context.WithValue(ctx, affinityKey{}, owner)
}

// HasAffinity reports whether ctx was marked by WithAffinity for owner.
func HasAffinity(ctx context.Context, owner any) bool {
	if ctx == nil || owner == nil {
		return false
	}
	return ctx.Value(affinityKey{}) == owner
}
