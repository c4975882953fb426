package httpx

import (
	"net/http"
	"strings"

	"github.com/campusbook/sections-ui/internal/domain/model"
	"github.com/campusbook/sections-ui/internal/nav"
	"github.com/campusbook/sections-ui/internal/session"
)

// Sections renders the listing page, optionally filtered by the search
// box. On a fetch failure the page keeps an error banner and renders no
// list at all rather than overwriting the view with empty data.
func (h *UIHandlers) Sections(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("name"))

	var sections []model.Section
	var err error
	if query != "" {
		sections, err = h.API.SearchSections(r.Context(), query)
	} else {
		sections, err = h.API.ListSections(r.Context())
	}
	if err != nil {
		h.logger().Error("failed to load sections", "query", query, "error", err)
		h.renderSections(w, r, sectionsView{
			Query: query,
			Error: "Unable to load sections. Please try again.",
		})
		return
	}

	h.renderSections(w, r, sectionsView{
		Query:    query,
		Sections: sections,
		Loaded:   true,
	})
}

type sectionsView struct {
	Query    string
	Sections []model.Section
	// Loaded distinguishes "fetched an empty list" from "fetch failed":
	// only the former shows the empty-state message.
	Loaded bool
	Error  string
}

func (h *UIHandlers) renderSections(w http.ResponseWriter, r *http.Request, view sectionsView) {
	data := NewTemplateData(r, PageMeta{
		Title:       "Sections - Sections",
		PageTitle:   "Course Sections",
		CurrentPage: "sections",
	}).
		With("Query", view.Query).
		With("Sections", view.Sections).
		With("Loaded", view.Loaded).
		With("ShowEmptyState", view.Loaded && len(view.Sections) == 0).
		WithError(view.Error).
		Build()
	_ = h.T.Render(w, "sections-page", data)
}

// Enroll handles a student's enroll action and returns to the listing.
func (h *UIHandlers) Enroll(w http.ResponseWriter, r *http.Request, m nav.Match) {
	h.setEnrollment(w, r, m, true)
}

// Unenroll handles a student's unenroll action and returns to the listing.
func (h *UIHandlers) Unenroll(w http.ResponseWriter, r *http.Request, m nav.Match) {
	h.setEnrollment(w, r, m, false)
}

func (h *UIHandlers) setEnrollment(w http.ResponseWriter, r *http.Request, m nav.Match, enroll bool) {
	// Enrollment is a student capability; anyone else goes back to the
	// listing without the action ever being attempted. Gate and action
	// read the same snapshot so a concurrent logout cannot nil out the
	// identity between the two.
	identity := session.MustFromContext(r.Context()).Snapshot().Identity
	if identity == nil || !identity.IsStudent() || r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	studentID := identity.ID
	var err error
	if enroll {
		err = h.API.Enroll(r.Context(), m.Params["id"], studentID)
	} else {
		err = h.API.Unenroll(r.Context(), m.Params["id"], studentID)
	}
	if err != nil {
		h.logger().Error("enrollment change failed", "section", m.Params["id"], "enroll", enroll, "error", err)
		h.renderSections(w, r, sectionsView{
			Error: "The enrollment change could not be saved. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
