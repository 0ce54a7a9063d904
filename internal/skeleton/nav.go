package skeleton

import (
	"strings"

	"git.home.luguber.info/inful/appshell/internal/layout"
)

// NavItem is one header navigation chip.
type NavItem struct {
	// Index is the item's position in the captured navItems list.
	Index  int
	Text   string
	Active bool
	Style  string
}

// DefaultNavItem stands in for a capture without usable nav entries.
var DefaultNavItem = NavItem{Index: 0, Text: "Primary", Active: true}

// ExtractNavMetadata turns captured nav records into chips, dropping entries with blank text.
// The result is never empty.
func ExtractNavMetadata(raw []layout.Node) []NavItem {
	items := make([]NavItem, 0, len(raw))
	for idx, node := range raw {
		text := strings.TrimSpace(node.Get("text").Text())
		if text == "" {
			continue
		}
		base := StyleFragment(node.Get("styles"), navStyleKeys)
		extra := sizeDecls(node.Get("rect"), "min-width", "min-height")

		items = append(items, NavItem{
			Index:  idx,
			Text:   text,
			Active: node.Get("classes").Contains("active"),
			Style:  joinStyle(append([]string{base}, extra...)...),
		})
	}
	if len(items) == 0 {
		return []NavItem{DefaultNavItem}
	}
	return items
}
