// Package httpx serves the portal UI. Each request is one navigation:
// the route table resolves the path, the guard decides what to do, and
// a page controller renders the result inside the shared chrome.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/campusbook/sections-ui/internal/api"
	"github.com/campusbook/sections-ui/internal/nav"
	"github.com/campusbook/sections-ui/internal/session"
)

// RouterOptions holds the dependencies of the UI router.
type RouterOptions struct {
	// Sessions is the session capability provisioned into every request
	// context (required).
	Sessions session.Sessions
	// API is the upstream collaborator client (required).
	API api.API
	// Renderer renders page templates (required).
	Renderer *TemplateRenderer
	// Table is the route table. Defaults to nav.DefaultTable().
	Table *nav.Table
	// LoadingRefreshSeconds is the refresh interval of the loading page.
	LoadingRefreshSeconds int
	// Logger for guard and page errors (optional).
	Logger *slog.Logger
}

// Router resolves navigations through the route table and dispatches to
// page controllers.
type Router struct {
	sessions session.Sessions
	table    *nav.Table
	ui       *UIHandlers
	logger   *slog.Logger
}

// NewRouter creates the portal router.
func NewRouter(opts RouterOptions) *Router {
	table := opts.Table
	if table == nil {
		table = nav.DefaultTable()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	refresh := opts.LoadingRefreshSeconds
	if refresh < 1 {
		refresh = 1
	}

	return &Router{
		sessions: opts.Sessions,
		table:    table,
		logger:   logger,
		ui: &UIHandlers{
			T:                     opts.Renderer,
			API:                   opts.API,
			LoadingRefreshSeconds: refresh,
			Logger:                logger,
		},
	}
}

// ServeHTTP implements http.Handler. The guard decision is computed once
// per navigation, before any page code runs, so a protected page body is
// never constructed for a request that ends in a redirect.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Provision the session scope before anything else; page
	// controllers obtain the capability from the request context.
	r = r.WithContext(session.NewContext(r.Context(), rt.sessions))

	m := rt.table.Resolve(r.URL.Path)
	if m.Wildcard {
		// Soft 404: a replacing redirect to the root, never a raw error page.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	st := rt.sessions.Snapshot()
	decision := nav.Decide(st.Restoring, st.Authenticated(), m.RequiresAuth)
	switch decision {
	case nav.ShowLoading:
		rt.ui.Loading(w, r)
	case nav.Redirect:
		// 303 replaces the navigation: "back" cannot land on the
		// protected URL's stale content.
		http.Redirect(w, r, nav.EntryPath, http.StatusSeeOther)
	case nav.Render:
		rt.dispatch(w, r, m)
	}
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request, m nav.Match) {
	switch m.Page {
	case nav.PageChoose:
		rt.ui.Choose(w, r)
	case nav.PageLogin:
		rt.ui.Login(w, r, m)
	case nav.PageSections:
		rt.ui.Sections(w, r)
	case nav.PageSectionNew:
		rt.ui.SectionNew(w, r)
	case nav.PageSectionEdit:
		rt.ui.SectionEdit(w, r, m)
	case nav.PageSectionDelete:
		rt.ui.SectionDelete(w, r, m)
	case nav.PageEnroll:
		rt.ui.Enroll(w, r, m)
	case nav.PageUnenroll:
		rt.ui.Unenroll(w, r, m)
	case nav.PageMail:
		rt.ui.Mail(w, r, m)
	case nav.PageRoster:
		rt.ui.Roster(w, r, m)
	case nav.PageLogout:
		rt.ui.Logout(w, r)
	default:
		rt.logger.Error("route table produced an unmapped page", "page", string(m.Page))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
