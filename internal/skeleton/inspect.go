package skeleton

import (
	"io"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
)

var aspectRatioRe = regexp.MustCompile(`aspect-ratio:\s*([0-9.]+)`)

// Summary describes a rendered skeleton page.
type Summary struct {
	Title        string
	Chips        int
	ActiveChips  int
	Icons        int
	Cards        int
	AspectRatio  string
	ChipLabels   []string
	HeaderStyled bool
}

// Inspect parses a skeleton page and counts its placeholder elements.
func Inspect(r io.Reader) (*Summary, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "parse skeleton html").Build()
	}

	s := &Summary{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			classes := strings.Fields(attr(n, "class"))
			switch {
			case n.Data == "style":
				if m := aspectRatioRe.FindStringSubmatch(textContent(n)); m != nil {
					s.AspectRatio = m[1]
				}
			case slices.Contains(classes, "app-shell-header"):
				s.HeaderStyled = attr(n, "style") != ""
			case slices.Contains(classes, "app-shell-title"):
				s.Title = strings.TrimSpace(textContent(n))
			case slices.Contains(classes, "app-shell-chip"):
				s.Chips++
				if !slices.Contains(classes, "inactive") {
					s.ActiveChips++
				}
				s.ChipLabels = append(s.ChipLabels, strings.TrimSpace(textContent(n)))
			case slices.Contains(classes, "app-shell-icon"):
				s.Icons++
			case slices.Contains(classes, "app-shell-card"):
				s.Cards++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return s, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
