package devapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/sections-ui/internal/api"
	"github.com/campusbook/sections-ui/internal/domain/auth"
	"github.com/campusbook/sections-ui/internal/domain/model"
	apperrors "github.com/campusbook/sections-ui/internal/errors"
)

// The dev API is exercised through the real client so the two sides of
// the wire contract are checked against each other.
func newClient(t *testing.T) (*api.Client, *Server) {
	t.Helper()
	server := New()
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(api.Options{BaseURL: srv.URL, HTTPClient: srv.Client()}), server
}

func TestLoginSeededAccounts(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	teacher, err := client.Login(ctx, "ada@university.edu", "teach", auth.RoleTeacher)
	require.NoError(t, err)
	assert.True(t, teacher.IsTeacher())
	assert.Equal(t, "Mathematics", teacher.Department)

	student, err := client.Login(ctx, "carl@university.edu", "learn", auth.RoleStudent)
	require.NoError(t, err)
	assert.True(t, student.IsStudent())

	_, err = client.Login(ctx, "ada@university.edu", "wrong", auth.RoleTeacher)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestLoginIgnoresClaimedRole(t *testing.T) {
	client, _ := newClient(t)

	// Claiming TEACHER for a student account does not grant it; the
	// stored identity wins.
	identity, err := client.Login(context.Background(), "carl@university.edu", "learn", auth.RoleTeacher)
	require.NoError(t, err)
	assert.True(t, identity.IsStudent())
}

func TestSectionLifecycle(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	created, err := client.CreateSection(ctx, model.SectionInput{
		Name: "Compilers", Description: "Parsing and codegen", TeacherID: "t-ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.TeacherName)

	updated, err := client.UpdateSection(ctx, created.ID, model.SectionInput{
		Name: "Compilers II", Description: "Optimizers",
	})
	require.NoError(t, err)
	assert.Equal(t, "Compilers II", updated.Name)

	require.NoError(t, client.DeleteSection(ctx, created.ID))

	sections, err := client.ListSections(ctx)
	require.NoError(t, err)
	for _, sec := range sections {
		assert.NotEqual(t, created.ID, sec.ID)
	}

	err = client.DeleteSection(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	matched, err := client.SearchSections(ctx, "WEB")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Web Development", matched[0].Name)

	none, err := client.SearchSections(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEnrollmentChangesStudentCount(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	sections, err := client.ListSections(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sections)
	target := sections[0]

	require.NoError(t, client.Enroll(ctx, target.ID, "s-carl"))

	sections, err = client.ListSections(ctx)
	require.NoError(t, err)
	for _, sec := range sections {
		if sec.ID == target.ID {
			assert.Equal(t, 1, sec.StudentCount)
		}
	}

	require.NoError(t, client.Unenroll(ctx, target.ID, "s-carl"))
}

func TestMailFlow(t *testing.T) {
	client, server := newClient(t)
	ctx := context.Background()

	sections, err := client.ListSections(ctx)
	require.NoError(t, err)
	target := sections[0]
	require.NoError(t, client.Enroll(ctx, target.ID, "s-carl"))

	// Teacher sees enrolled students as recipients.
	recipients, err := client.MailRecipients(ctx, target.ID, true)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "carl@university.edu", recipients[0].Email)

	// Student sees the teacher.
	recipients, err = client.MailRecipients(ctx, target.ID, false)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "ada@university.edu", recipients[0].Email)

	msg := model.MailMessage{
		From:    "ada@university.edu",
		To:      []string{"carl@university.edu"},
		Subject: "Homework",
		Body:    "Due Friday.",
	}
	require.NoError(t, client.SendMail(ctx, msg))
	require.Len(t, server.SentMail(), 1)
	assert.Equal(t, msg, server.SentMail()[0])
}

func TestRosterPDF(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	sections, err := client.ListSections(ctx)
	require.NoError(t, err)

	pdf, err := client.RosterPDF(ctx, sections[0].ID)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Contains(t, string(pdf), "%PDF")
}
