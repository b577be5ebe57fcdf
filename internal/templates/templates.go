// Package templates embeds the HTML pages and HTMX fragments.
package templates

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	// css marks trusted inline style values from the site content file.
	"css":   func(s string) template.CSS { return template.CSS(s) },
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"add":   func(a, b int) int { return a + b },
}

// Load parses every template. Each file is addressable by its base name,
// e.g. "index.html" or "showcase.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "html/*.html")
}

func MustLoad() *template.Template {
	return template.Must(Load())
}
