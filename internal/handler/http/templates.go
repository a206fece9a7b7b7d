package http

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/MKhiriev/fitgrit/internal/logger"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// pageNames lists every page template. Each one is parsed together with the
// shared layout so the nav bar and head section stay in one place.
var pageNames = []string{
	"landing",
	"dashboard",
	"weight",
	"exercise",
	"food",
	"recipes",
	"profile",
}

// templateSet holds one parsed template per page, each cloned from the
// shared layout.
type templateSet struct {
	pages map[string]*template.Template
}

func parseTemplates() (*templateSet, error) {
	layout, err := template.New("layout").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.gohtml")
	if err != nil {
		return nil, fmt.Errorf("error parsing layout template: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		page, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("error cloning layout template: %w", err)
		}
		page, err = page.ParseFS(templateFS, "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("error parsing %s template: %w", name, err)
		}
		pages[name] = page
	}

	return &templateSet{pages: pages}, nil
}

// render writes the named page. Template failures after headers are sent
// cannot be recovered, so the page is logged and the generic error shown.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	page, ok := h.templates.pages[name]
	if !ok {
		logger.FromRequest(r).Error().Str("page", name).Msg("unknown page template")
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.ExecuteTemplate(w, "layout", data); err != nil {
		logger.FromRequest(r).Err(err).Str("page", name).Msg("error rendering page")
	}
}

var templateFuncs = template.FuncMap{
	// chartJSON serializes chart series for the inline script block that
	// feeds the client-side chart renderer.
	"chartJSON": func(v any) (template.JS, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(data), nil
	},
}
