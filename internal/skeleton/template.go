package skeleton

import (
	_ "embed"
	"text/template"
)

//go:embed templates/skeleton.html.tmpl
var pageTemplateSource string

// pageTemplate is filled with pre-escaped fragments, hence text/template.
var pageTemplate = template.Must(template.New("skeleton").Option("missingkey=error").Parse(pageTemplateSource))

// pageData holds the dynamic regions of the page template.
type pageData struct {
	Title           string
	HeaderStyleAttr string
	TitleStyleAttr  string
	IconsHTML       string
	NavHTML         string
	CardsHTML       string
	PaddingTop      string
	CardRatio       string
}
