package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
)

const layoutTemplate = "layout"

// TemplateRenderer renders dashboard pages. Each page file under pages/ is parsed
// together with layout.tmpl into its own template set, so every page can define
// "title" and "content" without clashing.
type TemplateRenderer struct {
	fsys    fs.FS
	devMode bool
	logger  *slog.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing layout.tmpl and pages/*.tmpl (required)
	DevMode    bool         // Re-parse templates on every render
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer parses every page eagerly so broken templates fail at startup.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &TemplateRenderer{fsys: cfg.TemplateFS, devMode: cfg.DevMode, logger: logger}

	pages, err := r.parse()
	if err != nil {
		logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func (r *TemplateRenderer) parse() (map[string]*template.Template, error) {
	base, err := template.New("root").Funcs(templateFuncs()).ParseFS(r.fsys, "layout.tmpl")
	if err != nil {
		return nil, err
	}
	files, err := fs.Glob(r.fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no page templates found under pages/")
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(r.fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = set
	}
	return pages, nil
}

func (r *TemplateRenderer) lookup(page string) (*template.Template, error) {
	if r.devMode {
		pages, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	return t, nil
}

// Render writes data.Page inside the layout with the given status code.
// Nothing is written when execution fails, so callers can still send an error.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, data PageData) error {
	t, err := r.lookup(data.Page)
	if err != nil {
		r.logTemplateError(data.Page, err)
		return err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		r.logTemplateError(data.Page, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", data.Page),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func (r *TemplateRenderer) logTemplateError(page string, err error) {
	r.logger.Error("template execution failed",
		slog.String("template", page),
		slog.Any("error", err),
	)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
		"initial": func(s string) string {
			s = strings.TrimSpace(s)
			if s == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(s)[:1]))
		},
	}
}
