// Package deptdash embeds the dashboard's templates and static assets.
package deptdash

import "embed"

// In dev mode (IsDev=true) templates are read from disk so edits show up without a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
