package nav

import (
	"fmt"
	"strings"
)

// Page identifies a page controller. The route table maps paths to pages
// and stays ignorant of what a page does.
type Page string

const (
	PageChoose        Page = "choose"
	PageLogin         Page = "login"
	PageSections      Page = "sections"
	PageSectionNew    Page = "section-new"
	PageSectionEdit   Page = "section-edit"
	PageSectionDelete Page = "section-delete"
	PageEnroll        Page = "enroll"
	PageUnenroll      Page = "unenroll"
	PageMail          Page = "mail"
	PageRoster        Page = "roster"
	PageLogout        Page = "logout"
)

// EntryPath is the public entry point the guard redirects to.
const EntryPath = "/choose"

// Route is a static descriptor in the navigation tree. Pattern is a
// relative path fragment; segments starting with ':' are named
// parameters matching any single non-empty segment. Children render
// inside their parent's chrome and inherit the guard requirement of the
// nearest guarded ancestor.
type Route struct {
	Pattern      string
	RequiresAuth bool
	Page         Page
	Children     []*Route
}

// Match is the result of resolving a path: the page, its extracted
// parameters, and the auth requirement inherited down the tree. The
// requirement is computed once during traversal and carried here so the
// guard decision for a navigation is made exactly once.
type Match struct {
	Page         Page
	Params       map[string]string
	RequiresAuth bool
	// Wildcard is set when no descriptor matched and the catch-all
	// applies: the handler performs a replacing redirect to the root.
	Wildcard bool
}

// Table is the static route table. It is built once at startup and never
// mutated afterwards.
type Table struct {
	routes []*Route
}

// NewTable builds a table from the given descriptor trees, rejecting
// declarations that would make matching ambiguous.
func NewTable(routes []*Route) (*Table, error) {
	if err := validateSiblings(routes); err != nil {
		return nil, err
	}
	return &Table{routes: routes}, nil
}

// DefaultTable declares the portal's routes:
//
//	/choose                      public  type-selection screen
//	/login/:userType             public  login (param selects copy, not role)
//	/                            guarded shared chrome
//	  (index)                    sections list
//	  sections/new               create form
//	  sections/:id/edit          edit form
//	  sections/:id/delete        delete action
//	  sections/:id/enroll        enroll action
//	  sections/:id/unenroll      unenroll action
//	  sections/:id/mail          mail compose
//	  sections/:id/roster.pdf    roster download
//	  logout                     sign out action
//	*                            replacing redirect to /
func DefaultTable() *Table {
	t, err := NewTable([]*Route{
		{Pattern: "choose", Page: PageChoose},
		{Pattern: "login/:userType", Page: PageLogin},
		{
			Pattern:      "",
			RequiresAuth: true,
			Children: []*Route{
				{Pattern: "", Page: PageSections},
				{Pattern: "sections/new", Page: PageSectionNew},
				{Pattern: "sections/:id/edit", Page: PageSectionEdit},
				{Pattern: "sections/:id/delete", Page: PageSectionDelete},
				{Pattern: "sections/:id/enroll", Page: PageEnroll},
				{Pattern: "sections/:id/unenroll", Page: PageUnenroll},
				{Pattern: "sections/:id/mail", Page: PageMail},
				{Pattern: "sections/:id/roster.pdf", Page: PageRoster},
				{Pattern: "logout", Page: PageLogout},
			},
		},
	})
	if err != nil {
		// The default table is a compile-time artifact; an invalid
		// declaration is a programming error.
		panic(err)
	}
	return t
}

// Resolve maps a request path to a Match by explicit top-down traversal
// of the descriptor trees. Literal segments win over parameters, so each
// concrete path matches exactly one descriptor. Paths nothing matches
// fall through to the wildcard.
func (t *Table) Resolve(path string) Match {
	segs := splitPath(path)
	if m, ok := matchNodes(t.routes, segs, false); ok {
		return m
	}
	return Match{Wildcard: true}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func patternSegments(pattern string) []string {
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, "/")
}

// matchNodes tries each node in order, literal-first, against the given
// path segments. inherited carries the guard requirement of the nearest
// guarded ancestor.
func matchNodes(nodes []*Route, segs []string, inherited bool) (Match, bool) {
	for _, literalFirst := range []bool{true, false} {
		for _, node := range nodes {
			if startsWithParam(node.Pattern) == literalFirst {
				continue
			}
			if m, ok := matchNode(node, segs, inherited); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

func startsWithParam(pattern string) bool {
	return strings.HasPrefix(pattern, ":")
}

func matchNode(node *Route, segs []string, inherited bool) (Match, bool) {
	pat := patternSegments(node.Pattern)
	if len(pat) > len(segs) {
		return Match{}, false
	}

	params := map[string]string{}
	for i, p := range pat {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return Match{}, false
		}
	}

	rest := segs[len(pat):]
	auth := inherited || node.RequiresAuth

	if len(rest) == 0 {
		if node.Page != "" {
			return Match{Page: node.Page, Params: params, RequiresAuth: auth}, true
		}
		// A chrome node with no page of its own defers to its index child.
		if m, ok := matchNodes(node.Children, nil, auth); ok {
			return mergeParams(m, params), true
		}
		return Match{}, false
	}

	if m, ok := matchNodes(node.Children, rest, auth); ok {
		return mergeParams(m, params), true
	}
	return Match{}, false
}

func mergeParams(m Match, parent map[string]string) Match {
	for k, v := range parent {
		if _, exists := m.Params[k]; !exists {
			m.Params[k] = v
		}
	}
	return m
}

// validateSiblings rejects sibling descriptors whose patterns could both
// match the same path, recursively down the tree.
func validateSiblings(nodes []*Route) error {
	seen := map[string]bool{}
	for _, node := range nodes {
		shape := patternShape(node.Pattern)
		if seen[shape] {
			return fmt.Errorf("nav: ambiguous sibling route %q", node.Pattern)
		}
		seen[shape] = true
		if err := validateSiblings(node.Children); err != nil {
			return err
		}
	}
	return nil
}

// patternShape normalizes parameter names so "a/:id" and "a/:key" are
// recognized as the same shape.
func patternShape(pattern string) string {
	segs := patternSegments(pattern)
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = ":"
		}
	}
	return strings.Join(segs, "/")
}
