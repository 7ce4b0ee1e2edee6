// Package views renders the operator dashboard as server-side HTML.
package views

import (
	"embed"
	"html/template"
	"strings"

	"github.com/yigit/portaladmin/internal/app/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Each page is addressed by
// its file name, e.g. "users.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatDate": models.FormatDate,
		"join":       strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
}
