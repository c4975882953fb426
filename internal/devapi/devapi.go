// Package devapi is an in-memory implementation of the upstream
// course-management API, for local development and tests. It keeps
// everything in process memory: restarting it resets all data.
package devapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusbook/sections-ui/internal/domain/auth"
	"github.com/campusbook/sections-ui/internal/domain/model"
)

// account pairs an identity with its dev password.
type account struct {
	identity auth.Identity
	password string
}

// Server holds the in-memory state behind the dev API.
type Server struct {
	mu       sync.Mutex
	accounts []account
	sections map[string]*model.Section
	enrolled map[string]map[string]bool // sectionID -> studentID -> enrolled
	sent     []model.MailMessage
}

// New creates a Server seeded with demo accounts and sections.
// Demo credentials: ada@university.edu / teach and carl@university.edu / learn.
func New() *Server {
	s := &Server{
		sections: map[string]*model.Section{},
		enrolled: map[string]map[string]bool{},
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	s.accounts = []account{
		{
			identity: auth.Identity{
				ID: "t-ada", Email: "ada@university.edu", Name: "Ada Lovelace",
				Role: auth.RoleTeacher, Department: "Mathematics",
			},
			password: "teach",
		},
		{
			identity: auth.Identity{
				ID: "s-carl", Email: "carl@university.edu", Name: "Carl Gauss",
				Role: auth.RoleStudent, EnrollmentNumber: "2024-0017",
			},
			password: "learn",
		},
	}
	for _, sec := range []*model.Section{
		{ID: uuid.NewString(), Name: "Web Development", Description: "HTML, CSS and friends", TeacherName: "Ada Lovelace"},
		{ID: uuid.NewString(), Name: "Linear Algebra", Description: "Vectors and matrices", TeacherName: "Ada Lovelace"},
	} {
		s.sections[sec.ID] = sec
		s.enrolled[sec.ID] = map[string]bool{}
	}
}

// Handler returns the chi router exposing the dev API surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.handleLogin)
	r.Get("/sections", s.handleList)
	r.Get("/sections/search", s.handleSearch)
	r.Post("/sections", s.handleCreate)
	r.Put("/sections/{id}", s.handleUpdate)
	r.Delete("/sections/{id}", s.handleDelete)
	r.Post("/sections/{id}/enroll/{studentID}", s.handleEnroll)
	r.Delete("/sections/{id}/unenroll/{studentID}", s.handleUnenroll)
	r.Get("/sections/{id}/students/pdf", s.handleRosterPDF)
	r.Get("/mail/{sectionID}/recipients", s.handleRecipients)
	r.Post("/mail/send", s.handleSendMail)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string    `json:"email"`
		Password string    `json:"password"`
		UserType auth.Role `json:"userType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if strings.EqualFold(acct.identity.Email, req.Email) && acct.password == req.Password {
			// The claimed userType is not trusted: the stored identity
			// is authoritative, same as the real server.
			writeJSON(w, http.StatusOK, acct.identity)
			return
		}
	}
	http.Error(w, "bad credentials", http.StatusUnauthorized)
}

func (s *Server) listLocked() []model.Section {
	out := make([]model.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		copy := *sec
		copy.StudentCount = len(s.enrolled[sec.ID])
		out = append(out, copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.listLocked())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.URL.Query().Get("name"))

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []model.Section{}
	for _, sec := range s.listLocked() {
		if strings.Contains(strings.ToLower(sec.Name), name) {
			matched = append(matched, sec)
		}
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &model.Section{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		TeacherName: s.teacherNameLocked(in.TeacherID),
	}
	s.sections[sec.ID] = sec
	s.enrolled[sec.ID] = map[string]bool{}
	writeJSON(w, http.StatusCreated, *sec)
}

func (s *Server) teacherNameLocked(teacherID string) string {
	for _, acct := range s.accounts {
		if acct.identity.ID == teacherID {
			return acct.identity.Name
		}
	}
	return "Unknown"
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in model.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.sections[id]
	if !ok {
		http.Error(w, "section not found", http.StatusNotFound)
		return
	}
	sec.Name = in.Name
	sec.Description = in.Description
	writeJSON(w, http.StatusOK, *sec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[id]; !ok {
		http.Error(w, "section not found", http.StatusNotFound)
		return
	}
	delete(s.sections, id)
	delete(s.enrolled, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	s.setEnrollment(w, r, true)
}

func (s *Server) handleUnenroll(w http.ResponseWriter, r *http.Request) {
	s.setEnrollment(w, r, false)
}

func (s *Server) setEnrollment(w http.ResponseWriter, r *http.Request, enrolled bool) {
	id := chi.URLParam(r, "id")
	studentID := chi.URLParam(r, "studentID")

	s.mu.Lock()
	defer s.mu.Unlock()
	roster, ok := s.enrolled[id]
	if !ok {
		http.Error(w, "section not found", http.StatusNotFound)
		return
	}
	if enrolled {
		roster[studentID] = true
	} else {
		delete(roster, studentID)
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRosterPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.sections[id]
	if !ok {
		http.Error(w, "section not found", http.StatusNotFound)
		return
	}

	// Not a real PDF renderer; enough for the portal's passthrough download.
	w.Header().Set("Content-Type", "application/pdf")
	fmt.Fprintf(w, "%%PDF-1.4\n%% roster for %s (%d students)\n", sec.Name, len(s.enrolled[id]))
}

func (s *Server) handleRecipients(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")
	fromTeacher := r.URL.Query().Get("isTeacher") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()
	roster, ok := s.enrolled[sectionID]
	if !ok {
		http.Error(w, "section not found", http.StatusNotFound)
		return
	}

	// Teachers write to enrolled students; students write to the teacher.
	recipients := []model.Recipient{}
	for _, acct := range s.accounts {
		id := acct.identity
		if fromTeacher && id.IsStudent() && roster[id.ID] {
			recipients = append(recipients, model.Recipient{ID: id.ID, Name: id.Name, Email: id.Email})
		}
		if !fromTeacher && id.IsTeacher() {
			recipients = append(recipients, model.Recipient{ID: id.ID, Name: id.Name, Email: id.Email})
		}
	}
	writeJSON(w, http.StatusOK, recipients)
}

func (s *Server) handleSendMail(w http.ResponseWriter, r *http.Request) {
	var msg model.MailMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}
	if msg.From == "" || len(msg.To) == 0 {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	w.WriteHeader(http.StatusOK)
}

// SentMail returns a copy of all messages accepted so far. Test hook.
func (s *Server) SentMail() []model.MailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.MailMessage(nil), s.sent...)
}
