package session

import (
	"context"
	"fmt"
)

// ctxKey is an unexported context key type to avoid collisions across packages.
type ctxKey struct{}

// ScopeError reports that a session accessor was used outside a
// provisioned scope. This is a wiring defect, not a runtime condition,
// so it is raised as a panic and should never be recovered into normal
// control flow.
type ScopeError struct {
	// Op names the accessor that was misused.
	Op string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("session: %s called outside a provisioned session scope", e.Op)
}

// NewContext returns a child context provisioned with the session
// capability. The HTTP layer provisions every request context before any
// page controller runs; nothing else should need to call this.
func NewContext(ctx context.Context, sessions Sessions) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessions)
}

// FromContext returns the session capability and whether the context was
// provisioned.
func FromContext(ctx context.Context) (Sessions, bool) {
	s, ok := ctx.Value(ctxKey{}).(Sessions)
	return s, ok
}

// MustFromContext returns the session capability, panicking with a
// *ScopeError if the context was never provisioned. Page controllers use
// this form: an unprovisioned context there means the router wiring is
// broken and must fail loudly.
func MustFromContext(ctx context.Context) Sessions {
	s, ok := FromContext(ctx)
	if !ok {
		panic(&ScopeError{Op: "MustFromContext"})
	}
	return s
}
