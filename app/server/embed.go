package server

import (
	"embed"
	"html/template"
)

//go:embed template/*.html
var templateFs embed.FS

//go:embed static
var staticFs embed.FS

func MustParseTemplates(funcMap template.FuncMap) *template.Template {
	return template.Must(template.New("").Funcs(funcMap).ParseFS(templateFs, "template/*.html"))
}
