// Package auth contains domain-level types for the authenticated principal.
// It is pure and free of transport/adapter concerns.
package auth

import "fmt"

// Role represents the principal's role in the course portal.
// Keep string form for easy persistence; it matches the userType field
// of the upstream API. Valid values are defined as constants below.
type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Identity represents the authenticated principal issued by the upstream
// API on a successful credential check. The role is immutable for the
// lifetime of a session; exactly one of the role-specific attributes
// (Department for teachers, EnrollmentNumber for students) is set.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"userType"`

	// Department is set only when Role is TEACHER.
	Department string `json:"department,omitempty"`
	// EnrollmentNumber is set only when Role is STUDENT.
	EnrollmentNumber string `json:"enrollmentNumber,omitempty"`
}

// IsTeacher returns true if the identity's role is TEACHER.
func (i Identity) IsTeacher() bool { return i.Role == RoleTeacher }

// IsStudent returns true if the identity's role is STUDENT.
func (i Identity) IsStudent() bool { return i.Role == RoleStudent }

// Validate checks the structural invariants of an identity. A persisted
// blob that fails validation is treated the same as a corrupted one.
func (i Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity missing id")
	}
	switch i.Role {
	case RoleTeacher:
		if i.Department == "" {
			return fmt.Errorf("teacher identity %s missing department", i.ID)
		}
		if i.EnrollmentNumber != "" {
			return fmt.Errorf("teacher identity %s carries an enrollment number", i.ID)
		}
	case RoleStudent:
		if i.EnrollmentNumber == "" {
			return fmt.Errorf("student identity %s missing enrollment number", i.ID)
		}
		if i.Department != "" {
			return fmt.Errorf("student identity %s carries a department", i.ID)
		}
	default:
		return fmt.Errorf("identity %s has unknown role %q", i.ID, i.Role)
	}
	return nil
}
