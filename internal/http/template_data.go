package httpx

import (
	"net/http"

	"github.com/campusbook/sections-ui/internal/session"
)

// PageMeta contains page metadata for rendering.
type PageMeta struct {
	// Title is the document title.
	Title string
	// PageTitle is the heading shown inside the chrome.
	PageTitle string
	// CurrentPage marks the active navbar entry.
	CurrentPage string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a builder seeded with the page meta and the
// current session's identity, so every template can render the chrome
// and role-gate its fragments.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	data := map[string]any{
		"Title":       meta.Title,
		"PageTitle":   meta.PageTitle,
		"CurrentPage": meta.CurrentPage,
	}

	sess := session.MustFromContext(r.Context())
	if identity := sess.Snapshot().Identity; identity != nil {
		data["UserName"] = identity.Name
		data["UserEmail"] = identity.Email
	}
	data["IsTeacher"] = sess.IsTeacher()
	data["IsStudent"] = sess.IsStudent()

	return &TemplateDataBuilder{data: data}
}

// With adds a key/value pair.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// WithError adds a user-visible error banner.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	if msg != "" {
		b.data["Error"] = msg
	}
	return b
}

// Build returns the accumulated template data.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
