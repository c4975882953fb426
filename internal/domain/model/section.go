// Package model contains domain entities exchanged with the upstream
// course-management API.
package model

// Section is a course section as returned by GET /sections.
// Enrolled is only meaningful for student sessions; the upstream API
// omits it for teachers.
type Section struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	TeacherName  string `json:"teacherName"`
	StudentCount int    `json:"studentCount"`
	Enrolled     bool   `json:"enrolled,omitempty"`
}

// SectionInput is the write shape for POST /sections and PUT /sections/{id}.
type SectionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TeacherID   string `json:"teacherId"`
}

// Recipient is an addressable member of a section's mailing list.
type Recipient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MailMessage is the payload for POST /mail/send.
type MailMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
