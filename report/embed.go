package report

import (
	"embed"
	"html/template"
)

//go:embed templates
var templates embed.FS

//go:embed templates/main.css
var css string

var Template = template.Must(template.New("").ParseFS(templates, "templates/*.tmpl")).Lookup("main.tmpl")

type TemplateArguments struct {
	Title string
	Main  template.HTML
}
