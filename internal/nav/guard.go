// Package nav implements the navigation core of the portal: the static
// route table and the guard decision applied to every navigation.
package nav

// Decision is the outcome of evaluating a navigation against the current
// session state.
type Decision int

const (
	// ShowLoading renders a transient placeholder. Returned while the
	// persisted identity is still being restored: a redirect issued
	// before restore completes could bounce an already signed-in user
	// to the entry screen.
	ShowLoading Decision = iota
	// Redirect sends the user to the public entry point with a
	// replacing navigation, so "back" cannot return to a stale
	// protected view.
	Redirect
	// Render renders the requested page.
	Render
)

// String returns a readable form for logs.
func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show-loading"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decide is the guard: a pure function of (restoring, authenticated,
// requiresAuth). It is evaluated once per navigation and re-evaluated on
// every identity change.
//
//  1. restoring                      → ShowLoading
//  2. requiresAuth && !authenticated → Redirect
//  3. otherwise                      → Render
//
// Role restrictions are deliberately not decided here. Pages that are
// teacher-only run the same three-way decision locally with the role
// predicate, which keeps the route table ignorant of role semantics
// while still preventing a flash of restricted controls.
func Decide(restoring, authenticated, requiresAuth bool) Decision {
	if restoring {
		return ShowLoading
	}
	if requiresAuth && !authenticated {
		return Redirect
	}
	return Render
}
