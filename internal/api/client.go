// Package api is the typed client for the upstream course-management
// API. Every operation is a single pass-through call: no retries, no
// caching, no request coalescing. Responses arriving after the
// initiating page has been left are simply discarded by the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/campusbook/sections-ui/internal/domain/auth"
	"github.com/campusbook/sections-ui/internal/domain/model"
	apperrors "github.com/campusbook/sections-ui/internal/errors"
)

// API is the collaborator surface consumed by page controllers. Tests
// substitute a hand-written double.
type API interface {
	Login(ctx context.Context, email, password string, role auth.Role) (auth.Identity, error)
	ListSections(ctx context.Context) ([]model.Section, error)
	SearchSections(ctx context.Context, name string) ([]model.Section, error)
	CreateSection(ctx context.Context, in model.SectionInput) (model.Section, error)
	UpdateSection(ctx context.Context, id string, in model.SectionInput) (model.Section, error)
	DeleteSection(ctx context.Context, id string) error
	Enroll(ctx context.Context, sectionID, studentID string) error
	Unenroll(ctx context.Context, sectionID, studentID string) error
	RosterPDF(ctx context.Context, sectionID string) ([]byte, error)
	MailRecipients(ctx context.Context, sectionID string, isTeacher bool) ([]model.Recipient, error)
	SendMail(ctx context.Context, msg model.MailMessage) error
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ API = (*Client)(nil)

// Options groups dependencies for Client.
type Options struct {
	// BaseURL is the root of the upstream API (required).
	BaseURL string
	// HTTPClient is the underlying transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Logger for request failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewClient constructs a Client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	UserType auth.Role `json:"userType"`
}

// Login exchanges credentials for an identity. A 401 maps to an
// unauthorized error the login page surfaces inline; anything else
// non-2xx is a generic failure.
func (c *Client) Login(ctx context.Context, email, password string, role auth.Role) (auth.Identity, error) {
	var identity auth.Identity
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
		UserType: role,
	}, &identity)
	if err != nil {
		return auth.Identity{}, err
	}
	if verr := identity.Validate(); verr != nil {
		return auth.Identity{}, apperrors.Wrap(verr, apperrors.ErrCodeUnavailable, "upstream returned an invalid identity")
	}
	return identity, nil
}

func (c *Client) ListSections(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	if err := c.do(ctx, http.MethodGet, "/sections", nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Client) SearchSections(ctx context.Context, name string) ([]model.Section, error) {
	var sections []model.Section
	path := "/sections/search?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Client) CreateSection(ctx context.Context, in model.SectionInput) (model.Section, error) {
	var section model.Section
	if err := c.do(ctx, http.MethodPost, "/sections", in, &section); err != nil {
		return model.Section{}, err
	}
	return section, nil
}

func (c *Client) UpdateSection(ctx context.Context, id string, in model.SectionInput) (model.Section, error) {
	var section model.Section
	path := "/sections/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, in, &section); err != nil {
		return model.Section{}, err
	}
	return section, nil
}

func (c *Client) DeleteSection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sections/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Enroll(ctx context.Context, sectionID, studentID string) error {
	path := fmt.Sprintf("/sections/%s/enroll/%s", url.PathEscape(sectionID), url.PathEscape(studentID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) Unenroll(ctx context.Context, sectionID, studentID string) error {
	path := fmt.Sprintf("/sections/%s/unenroll/%s", url.PathEscape(sectionID), url.PathEscape(studentID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// RosterPDF fetches the binary roster document for a section.
func (c *Client) RosterPDF(ctx context.Context, sectionID string) ([]byte, error) {
	path := fmt.Sprintf("/sections/%s/students/pdf", url.PathEscape(sectionID))
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "read roster document")
	}
	return data, nil
}

func (c *Client) MailRecipients(ctx context.Context, sectionID string, isTeacher bool) ([]model.Recipient, error) {
	var recipients []model.Recipient
	path := fmt.Sprintf("/mail/%s/recipients?isTeacher=%t", url.PathEscape(sectionID), isTeacher)
	if err := c.do(ctx, http.MethodGet, path, nil, &recipients); err != nil {
		return nil, err
	}
	return recipients, nil
}

func (c *Client) SendMail(ctx context.Context, msg model.MailMessage) error {
	return c.do(ctx, http.MethodPost, "/mail/send", msg, nil)
}

// do performs a JSON round-trip: encode body, send, check status, decode
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "decode %s %s response", method, path)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", "method", method, "path", path, "error", err)
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "%s %s", method, path)
	}
	return resp, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized("upstream rejected the credentials")
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFoundf("upstream returned 404 for %s", resp.Request.URL.Path)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.Validation("upstream rejected the request")
	default:
		return apperrors.Unavailable(fmt.Sprintf("upstream returned %d", resp.StatusCode))
	}
}
