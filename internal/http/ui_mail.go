package httpx

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/campusbook/sections-ui/internal/domain/model"
	"github.com/campusbook/sections-ui/internal/nav"
	"github.com/campusbook/sections-ui/internal/session"
)

// Mail renders the compose screen for a section and handles sending.
// Teachers write to the enrolled students, students to the teacher; the
// recipient list comes from upstream either way.
func (h *UIHandlers) Mail(w http.ResponseWriter, r *http.Request, m nav.Match) {
	if r.Method == http.MethodPost {
		h.submitMail(w, r, m)
		return
	}
	h.renderMail(w, r, m, mailForm{})
}

type mailForm struct {
	Subject string
	Body    string
	Error   string
	Sent    bool
}

func (h *UIHandlers) renderMail(w http.ResponseWriter, r *http.Request, m nav.Match, form mailForm) {
	sess := session.MustFromContext(r.Context())
	sectionID := m.Params["id"]

	recipients, err := h.API.MailRecipients(r.Context(), sectionID, sess.IsTeacher())
	if err != nil {
		h.logger().Error("failed to load mail recipients", "section", sectionID, "error", err)
		recipients = nil
		if form.Error == "" {
			form.Error = "Unable to load recipients. Please try again."
		}
	}

	data := NewTemplateData(r, PageMeta{
		Title:       "Send mail - Sections",
		PageTitle:   "Send mail",
		CurrentPage: "sections",
	}).
		With("SectionID", sectionID).
		With("Recipients", recipients).
		With("Subject", form.Subject).
		With("Body", form.Body).
		With("Sent", form.Sent).
		WithError(form.Error).
		Build()
	_ = h.T.Render(w, "mail-page", data)
}

func (h *UIHandlers) submitMail(w http.ResponseWriter, r *http.Request, m nav.Match) {
	if err := r.ParseForm(); err != nil {
		h.renderMail(w, r, m, mailForm{Error: "The submitted form could not be read."})
		return
	}

	form := mailForm{
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Body:    r.PostFormValue("body"),
	}
	to := r.PostForm["to"]
	if len(to) == 0 || form.Subject == "" {
		form.Error = "A recipient and a subject are required."
		h.renderMail(w, r, m, form)
		return
	}

	// One snapshot for the whole submit: a logout landing mid-request
	// leaves identity nil here, so the send is abandoned instead of
	// dereferencing a signed-out session.
	identity := session.MustFromContext(r.Context()).Snapshot().Identity
	if identity == nil {
		http.Redirect(w, r, nav.EntryPath, http.StatusSeeOther)
		return
	}
	msg := model.MailMessage{
		From:    identity.Email,
		To:      to,
		Subject: form.Subject,
		Body:    form.Body,
	}
	if err := h.API.SendMail(r.Context(), msg); err != nil {
		h.logger().Error("mail send failed", "section", m.Params["id"], "error", err)
		form.Error = "The message could not be sent. Please try again."
		h.renderMail(w, r, m, form)
		return
	}

	h.renderMail(w, r, m, mailForm{Sent: true})
}

// Roster streams the student roster document for a section. Teacher only.
func (h *UIHandlers) Roster(w http.ResponseWriter, r *http.Request, m nav.Match) {
	if _, ok := h.requireTeacher(w, r); !ok {
		return
	}

	sectionID := m.Params["id"]
	pdf, err := h.API.RosterPDF(r.Context(), sectionID)
	if err != nil {
		h.logger().Error("roster download failed", "section", sectionID, "error", err)
		h.renderSections(w, r, sectionsView{
			Error: "The roster could not be downloaded. Please try again.",
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="roster-%s.pdf"`, sectionID))
	_, _ = w.Write(pdf)
}
