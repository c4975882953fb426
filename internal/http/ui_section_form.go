package httpx

import (
	"net/http"
	"strings"

	"github.com/campusbook/sections-ui/internal/domain/auth"
	"github.com/campusbook/sections-ui/internal/domain/model"
	"github.com/campusbook/sections-ui/internal/nav"
	"github.com/campusbook/sections-ui/internal/session"
)

// sectionForm carries the form state between render and submit.
type sectionForm struct {
	ID          string
	Name        string
	Description string
	Error       string
	FieldErrors map[string]string
}

// requireTeacher applies the page-local role gate: the restricted page
// body is never constructed for a non-teacher, it redirects to the
// listing instead. The identity is read from a single snapshot and
// returned so the handler acts on the same identity it gated on; a
// concurrent logout cannot nil it out mid-request.
func (h *UIHandlers) requireTeacher(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity := session.MustFromContext(r.Context()).Snapshot().Identity
	if identity == nil || !identity.IsTeacher() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return identity, true
}

// SectionNew renders the create form and handles its submission.
// Teacher only.
func (h *UIHandlers) SectionNew(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireTeacher(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost {
		h.submitSection(w, r, sectionForm{}, identity)
		return
	}
	h.renderSectionForm(w, r, sectionForm{})
}

// SectionEdit renders the edit form for an existing section and handles
// its submission. Teacher only.
func (h *UIHandlers) SectionEdit(w http.ResponseWriter, r *http.Request, m nav.Match) {
	identity, ok := h.requireTeacher(w, r)
	if !ok {
		return
	}
	id := m.Params["id"]

	if r.Method == http.MethodPost {
		h.submitSection(w, r, sectionForm{ID: id}, identity)
		return
	}

	section, ok := h.findSection(w, r, id)
	if !ok {
		return
	}
	h.renderSectionForm(w, r, sectionForm{
		ID:          section.ID,
		Name:        section.Name,
		Description: section.Description,
	})
}

// findSection locates a section by id via the listing endpoint (the
// upstream API has no single-section read). A missing id sends the user
// back to the listing.
func (h *UIHandlers) findSection(w http.ResponseWriter, r *http.Request, id string) (model.Section, bool) {
	sections, err := h.API.ListSections(r.Context())
	if err != nil {
		h.logger().Error("failed to load section for editing", "section", id, "error", err)
		h.renderSections(w, r, sectionsView{
			Error: "Unable to load the section. Please try again.",
		})
		return model.Section{}, false
	}
	for _, sec := range sections {
		if sec.ID == id {
			return sec, true
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return model.Section{}, false
}

func (h *UIHandlers) renderSectionForm(w http.ResponseWriter, r *http.Request, form sectionForm) {
	title := "New section"
	if form.ID != "" {
		title = "Edit section"
	}

	data := NewTemplateData(r, PageMeta{
		Title:       title + " - Sections",
		PageTitle:   title,
		CurrentPage: "sections",
	}).
		With("SectionID", form.ID).
		With("Name", form.Name).
		With("Description", form.Description).
		With("FieldErrors", form.FieldErrors).
		WithError(form.Error).
		Build()
	_ = h.T.Render(w, "section-form-page", data)
}

func (h *UIHandlers) submitSection(w http.ResponseWriter, r *http.Request, form sectionForm, identity *auth.Identity) {
	if err := r.ParseForm(); err != nil {
		form.Error = "The submitted form could not be read."
		h.renderSectionForm(w, r, form)
		return
	}
	form.Name = strings.TrimSpace(r.PostFormValue("name"))
	form.Description = strings.TrimSpace(r.PostFormValue("description"))

	if form.Name == "" {
		form.FieldErrors = map[string]string{"name": "Name is required."}
		h.renderSectionForm(w, r, form)
		return
	}

	input := model.SectionInput{
		Name:        form.Name,
		Description: form.Description,
		TeacherID:   identity.ID,
	}

	var err error
	if form.ID == "" {
		_, err = h.API.CreateSection(r.Context(), input)
	} else {
		_, err = h.API.UpdateSection(r.Context(), form.ID, input)
	}
	if err != nil {
		h.logger().Error("section save failed", "section", form.ID, "error", err)
		form.Error = "The section could not be saved. Please try again."
		h.renderSectionForm(w, r, form)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SectionDelete handles the confirmed delete action. Teacher only,
// POST only; anything else returns to the listing untouched.
func (h *UIHandlers) SectionDelete(w http.ResponseWriter, r *http.Request, m nav.Match) {
	if _, ok := h.requireTeacher(w, r); !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.API.DeleteSection(r.Context(), m.Params["id"]); err != nil {
		h.logger().Error("section delete failed", "section", m.Params["id"], "error", err)
		h.renderSections(w, r, sectionsView{
			Error: "The section could not be deleted. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
