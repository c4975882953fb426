package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/sections-ui/internal/domain/auth"
	"github.com/campusbook/sections-ui/internal/domain/model"
	apperrors "github.com/campusbook/sections-ui/internal/errors"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	return client, srv
}

func TestLoginSuccess(t *testing.T) {
	var gotBody loginRequest
	var gotRequestID string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(auth.Identity{
			ID:         "t-1",
			Email:      "ada@university.edu",
			Name:       "Ada Lovelace",
			Role:       auth.RoleTeacher,
			Department: "Mathematics",
		})
	}))
	defer srv.Close()

	identity, err := client.Login(context.Background(), "ada@university.edu", "secret", auth.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, "t-1", identity.ID)
	assert.True(t, identity.IsTeacher())
	assert.Equal(t, loginRequest{Email: "ada@university.edu", Password: "secret", UserType: auth.RoleTeacher}, gotBody)
	assert.NotEmpty(t, gotRequestID, "every upstream call carries a request id")
}

func TestLoginBadCredentials(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "ada@university.edu", "wrong", auth.RoleTeacher)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestLoginRejectsInvalidIdentity(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Teacher identity without a department violates the identity invariant.
		json.NewEncoder(w).Encode(map[string]string{"id": "t-1", "userType": "TEACHER"})
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "a@b.c", "pw", auth.RoleTeacher)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestSearchSectionsQuery(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sections/search", r.URL.Path)
		require.Equal(t, "web dev", r.URL.Query().Get("name"))
		json.NewEncoder(w).Encode([]model.Section{{ID: "sec-1", Name: "Web Development"}})
	}))
	defer srv.Close()

	sections, err := client.SearchSections(context.Background(), "web dev")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "sec-1", sections[0].ID)
}

func TestSearchSectionsEmptyResult(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Section{})
	}))
	defer srv.Close()

	sections, err := client.SearchSections(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestDeleteSection(t *testing.T) {
	deleted := false
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/sections/sec-1", r.URL.Path)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, client.DeleteSection(context.Background(), "sec-1"))
	assert.True(t, deleted)
}

func TestEnrollAndUnenrollPaths(t *testing.T) {
	var paths []string
	var methods []string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, client.Enroll(context.Background(), "sec-1", "s-9"))
	require.NoError(t, client.Unenroll(context.Background(), "sec-1", "s-9"))

	assert.Equal(t, []string{"/sections/sec-1/enroll/s-9", "/sections/sec-1/unenroll/s-9"}, paths)
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestMailRecipientsQuery(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mail/sec-1/recipients", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("isTeacher"))
		json.NewEncoder(w).Encode([]model.Recipient{{ID: "s-1", Name: "Carl", Email: "carl@u.edu"}})
	}))
	defer srv.Close()

	recipients, err := client.MailRecipients(context.Background(), "sec-1", true)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "carl@u.edu", recipients[0].Email)
}

func TestRosterPDFPassthrough(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sections/sec-1/students/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	got, err := client.RosterPDF(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.ListSections(context.Background())
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestNetworkErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(Options{BaseURL: srv.URL})
	srv.Close() // connection refused from here on

	_, err := client.ListSections(context.Background())
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestNotFoundMapping(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	err := client.DeleteSection(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
