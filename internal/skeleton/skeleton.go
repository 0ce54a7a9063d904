package skeleton

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/appshell/internal/layout"
)

const (
	// DefaultTitle is shown when the capture has no header title.
	DefaultTitle = "Headshot AI"
	// DefaultHeaderHeight applies when the header container has no measured height.
	DefaultHeaderHeight = 108.0
	// headerBreathingRoom is added below the fixed header.
	headerBreathingRoom = 14.0
)

// ResolveTitle returns the trimmed header title, or DefaultTitle when blank.
func ResolveTitle(header layout.Node) string {
	if title := strings.TrimSpace(header.Path("title", "text").Text()); title != "" {
		return title
	}
	return DefaultTitle
}

// ContentPadding returns the top padding of the content area in pixels.
func ContentPadding(header layout.Node) float64 {
	height, ok := header.Path("container", "rect", "height").Float()
	if !ok {
		height = DefaultHeaderHeight
	}
	return height + headerBreathingRoom
}

// Build renders the skeleton page for one layout document.
// The result is deterministic and ends with exactly one newline.
func Build(doc layout.Node) string {
	header := doc.Get("header")
	cardItems := doc.Path("cards", "items").Items()

	cardCount := len(cardItems)
	if cardCount == 0 {
		cardCount = DefaultCardCount
	}

	data := pageData{
		Title:           html.EscapeString(ResolveTitle(header)),
		HeaderStyleAttr: styleAttr(StyleFragment(header.Path("container", "styles"), headerStyleKeys)),
		TitleStyleAttr:  styleAttr(StyleFragment(header.Path("title", "styles"), titleStyleKeys)),
		IconsHTML:       RenderIcons(header.Get("icons").Items()),
		NavHTML:         RenderNav(ExtractNavMetadata(header.Get("navItems").Items())),
		CardsHTML:       RenderCards(cardCount),
		PaddingTop:      strconv.FormatFloat(ContentPadding(header), 'f', 0, 64),
		CardRatio:       strconv.FormatFloat(AverageCardRatio(cardItems), 'f', 3, 64),
	}

	return renderPage(pageTemplate, data)
}

// renderPage executes tpl and normalises the trailing newline. An execution error means
// pageData and the embedded template are out of sync, so it panics like template.Must.
func renderPage(tpl *template.Template, data pageData) string {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("skeleton: execute page template: %v", err))
	}
	return strings.TrimSpace(buf.String()) + "\n"
}
