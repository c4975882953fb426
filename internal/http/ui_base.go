package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusbook/sections-ui/internal/api"
)

// UIHandlers holds the page controllers' shared dependencies.
type UIHandlers struct {
	T                     *TemplateRenderer
	API                   api.API
	LoadingRefreshSeconds int
	Logger                *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Loading renders the transient placeholder shown while the persisted
// identity is still being restored. The page refreshes itself so the
// navigation is retried once restore has finished; no redirect happens
// here, and no protected content is rendered.
func (h *UIHandlers) Loading(w http.ResponseWriter, r *http.Request) {
	refresh := h.LoadingRefreshSeconds
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Refresh", fmt.Sprintf("%d; url=%s", refresh, r.URL.RequestURI()))

	data := map[string]any{
		"Title":          "Loading - Sections",
		"RefreshSeconds": strconv.Itoa(refresh),
		"Target":         r.URL.RequestURI(),
	}
	_ = h.T.Render(w, "loading-page", data)
}
