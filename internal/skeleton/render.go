package skeleton

import (
	"fmt"
	"html"
	"strings"

	"git.home.luguber.info/inful/appshell/internal/layout"
)

// Indentation of each fragment inside the page template.
const (
	navIndent  = "          "
	iconIndent = "            "
	cardIndent = "          "
)

// styleAttr renders ` style="..."`, or nothing for an empty fragment.
func styleAttr(style string) string {
	if style == "" {
		return ""
	}
	return ` style="` + html.EscapeString(style) + `"`
}

// RenderNav renders one chip per item; inactive chips carry the "inactive" class.
func RenderNav(items []NavItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		class := "app-shell-chip"
		if !item.Active {
			class += " inactive"
		}
		lines = append(lines, fmt.Sprintf(`%s<div class="%s" data-index="%d"%s>%s</div>`,
			navIndent, class, item.Index, styleAttr(item.Style), html.EscapeString(item.Text)))
	}
	return strings.Join(lines, "\n")
}

// RenderIcons renders the header icon slots, falling back to two placeholders.
func RenderIcons(icons []layout.Node) string {
	lines := make([]string, 0, max(len(icons), 2))
	for idx, icon := range icons {
		base := StyleFragment(icon.Get("styles"), iconStyleKeys)
		extra := sizeDecls(icon.Get("rect"), "width", "height")
		style := joinStyle(append([]string{base}, extra...)...)
		lines = append(lines, fmt.Sprintf(`%s<div class="app-shell-icon" data-icon-index="%d"%s></div>`,
			iconIndent, idx, styleAttr(style)))
	}
	if len(lines) == 0 {
		for idx := range 2 {
			lines = append(lines, fmt.Sprintf(`%s<div class="app-shell-icon" data-icon-index="%d"></div>`, iconIndent, idx))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderCards renders count card placeholders.
func RenderCards(count int) string {
	lines := make([]string, count)
	for i := range count {
		lines[i] = fmt.Sprintf(`%s<div class="app-shell-card" data-card-index="%d"></div>`, cardIndent, i)
	}
	return strings.Join(lines, "\n")
}
