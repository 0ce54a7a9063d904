package skeleton

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/appshell/internal/layout"
)

// Style whitelists, in emission order.
var (
	headerStyleKeys = []string{"background", "backgroundColor", "boxShadow", "border", "margin", "marginTop", "marginBottom"}
	titleStyleKeys  = []string{"fontSize", "fontWeight", "color"}
	navStyleKeys    = []string{
		"padding", "paddingTop", "paddingBottom", "paddingLeft", "paddingRight",
		"fontSize", "fontWeight", "color",
		"background", "backgroundColor",
		"border", "borderRadius", "boxShadow",
	}
	iconStyleKeys = []string{"margin", "marginLeft", "marginRight", "background", "backgroundColor", "border", "borderRadius", "boxShadow"}
)

// CamelToKebab converts a captured style property name (fontSize, background_color) to CSS form.
func CamelToKebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		switch {
		case r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StyleFragment builds "prop: value;" declarations for keys found in styles, in keys order.
// Absent, null, non-scalar, empty and "auto" values are skipped.
func StyleFragment(styles layout.Node, keys []string) string {
	decls := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := styles.Get(key).Scalar()
		if !ok || value == "" || value == "auto" {
			continue
		}
		decls = append(decls, CamelToKebab(key)+": "+value+";")
	}
	return strings.Join(decls, " ")
}

// joinStyle joins non-empty declaration groups with single spaces.
func joinStyle(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// sizeDecls emits pixel declarations for rect dimensions that are present and non-zero.
func sizeDecls(rect layout.Node, widthProp, heightProp string) []string {
	var decls []string
	if w := rect.Get("width"); w.Present() {
		if s, ok := w.Scalar(); ok {
			decls = append(decls, widthProp+": "+s+"px;")
		}
	}
	if h := rect.Get("height"); h.Present() {
		if s, ok := h.Scalar(); ok {
			decls = append(decls, heightProp+": "+s+"px;")
		}
	}
	return decls
}
