// Package sectionsui provides embedded assets for production builds.
package sectionsui

import "embed"

// Embedded templates for production builds.
// In dev mode (IsDev=true), templates are loaded from disk for hot reloading.
// In production mode (IsDev=false), templates are parsed from this embedded filesystem.

//go:embed all:frontend/templates
var TemplateFS embed.FS
