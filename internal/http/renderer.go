package httpx

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
)

// TemplateRenderer renders HTML pages. Each page template is parsed together
// with the shared base layout; the page defines "content", the base defines
// "base".
type TemplateRenderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	// TemplateFS contains base.tmpl and pages/*.tmpl (required).
	TemplateFS fs.FS
	Logger     *slog.Logger
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"roleLabel": func(r domainauth.Role) string { return r.Label() },
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}
}

// NewTemplateRenderer parses the base layout and every page template.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, fmt.Errorf("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pageFiles, err := fs.Glob(cfg.TemplateFS, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		name := path.Base(file)
		t, parseErr := template.New("base.tmpl").
			Funcs(templateFuncs()).
			ParseFS(cfg.TemplateFS, "base.tmpl", file)
		if parseErr != nil {
			return nil, fmt.Errorf("parse %s: %w", file, parseErr)
		}
		pages[name] = t
	}

	return &TemplateRenderer{pages: pages, logger: logger}, nil
}

// Render writes the named page. The page is rendered to a buffer first so a
// template failure yields a clean 500 instead of a torn response.
func (r *TemplateRenderer) Render(w http.ResponseWriter, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("page", page),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
