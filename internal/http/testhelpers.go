package httpx

import (
	"os"
	"testing"
)

// templatePathFromTest is the template directory relative to this package,
// used when tests run from the package directory.
const templatePathFromTest = "../../frontend/templates"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping
// the test when the template directory is not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(templatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}
