// Package render wraps the html/template layout+page pair behind a
// single call: Render(w, r, name, data). Templates are embedded so the
// binary does not depend on a working directory.
package render

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"tanosveny/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

// Render executes the named page inside the layout. The data map gains
// Lang and a default Title; the T template func translates message keys
// for the detected language.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
	}

	tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		log.Error().Err(err).Str("template", name).Msg("parsing template")
		http.Error(w, i18n.T(lang, "ServerError"), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Title"]; !exists {
		data["Title"] = "Tanösvény"
	}
	data["Lang"] = lang

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("executing template")
	}
}
