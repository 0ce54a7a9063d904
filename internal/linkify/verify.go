package linkify

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CountCommitLinks parses markdown and counts the inline links that point at a commit
// page below base.
func CountCommitLinks(markdown []byte, base string) int {
	prefix := base + "/commit/"
	root := goldmark.New().Parser().Parse(text.NewReader(markdown))

	count := 0
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok && strings.HasPrefix(string(link.Destination), prefix) {
			count++
		}
		return gmast.WalkContinue, nil
	})
	return count
}
