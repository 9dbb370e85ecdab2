package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Load parses every page template together with the shared layout blocks.
// Templates are addressed by file name, e.g. "clients_list.html".
func Load() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
