package httpx

import (
	"net/http"
	"strings"

	"github.com/campusbook/sections-ui/internal/domain/auth"
	apperrors "github.com/campusbook/sections-ui/internal/errors"
	"github.com/campusbook/sections-ui/internal/nav"
	"github.com/campusbook/sections-ui/internal/session"
)

// Login path parameters. They select the copy on the login screen, not
// the role: the server-issued identity is the sole source of role.
const (
	userTypeTeacher = "professor"
	userTypeStudent = "academico"
)

// Choose renders the public type-selection screen.
func (h *UIHandlers) Choose(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{
		Title:     "Welcome - Sections",
		PageTitle: "Welcome",
	}).Build()
	_ = h.T.Render(w, "choose-page", data)
}

// Login renders the sign-in form and handles its submission. A 401 from
// upstream stays on the form with an inline message and no navigation;
// only a confirmed identity moves the session forward.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request, m nav.Match) {
	role, ok := roleForUserType(m.Params["userType"])
	if !ok {
		http.Redirect(w, r, nav.EntryPath, http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		h.submitLogin(w, r, m, role)
		return
	}
	h.renderLogin(w, r, m, loginForm{})
}

func roleForUserType(userType string) (auth.Role, bool) {
	switch userType {
	case userTypeTeacher:
		return auth.RoleTeacher, true
	case userTypeStudent:
		return auth.RoleStudent, true
	default:
		return "", false
	}
}

type loginForm struct {
	Email string
	Error string
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, m nav.Match, form loginForm) {
	userType := m.Params["userType"]
	title := "Student sign in"
	if userType == userTypeTeacher {
		title = "Teacher sign in"
	}

	data := NewTemplateData(r, PageMeta{
		Title:     title + " - Sections",
		PageTitle: title,
	}).
		With("UserType", userType).
		With("Email", form.Email).
		WithError(form.Error).
		Build()
	_ = h.T.Render(w, "login-page", data)
}

func (h *UIHandlers) submitLogin(w http.ResponseWriter, r *http.Request, m nav.Match, role auth.Role) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, m, loginForm{Error: "The submitted form could not be read."})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		h.renderLogin(w, r, m, loginForm{Email: email, Error: "Email and password are required."})
		return
	}

	identity, err := h.API.Login(r.Context(), email, password, role)
	if err != nil {
		msg := "Sign in is unavailable right now. Please try again."
		if apperrors.IsUnauthorized(err) {
			msg = "Invalid email or password."
		} else {
			h.logger().Error("login call failed", "error", err)
		}
		h.renderLogin(w, r, m, loginForm{Email: email, Error: msg})
		return
	}

	session.MustFromContext(r.Context()).Login(r.Context(), identity)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session and returns to the type-selection screen.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session.MustFromContext(r.Context()).Logout(r.Context())
	http.Redirect(w, r, nav.EntryPath, http.StatusSeeOther)
}
