// Package linkify turns "- summary // <commit>" list lines of a changelog into markdown
// links to the commit page.
package linkify

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

const (
	// DefaultOwner and DefaultRepo name the repository used when nothing else is configured.
	DefaultOwner = "hiowenluke"
	DefaultRepo  = "headshot-ai"
)

// ws is Unicode whitespace: full-width and no-break spaces separate list markers in
// notes written with CJK input methods.
const ws = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// Pattern matches a list line whose text ends in "// <7-40 hex digits>".
var Pattern = regexp.MustCompile(`^(` + ws + `*[-*]` + ws + `+)(.*?)` + ws + `*//` + ws + `*([0-9a-fA-F]{7,40})` + ws + `*$`)

// BaseURL returns the GitHub URL of owner/repo.
func BaseURL(owner, repo string) string {
	return "https://github.com/" + owner + "/" + repo
}

// CommitURL returns the commit page below base.
func CommitURL(base, commit string) string {
	return base + "/commit/" + commit
}

// TransformLine rewrites a single line, including its line terminator. Lines that do not
// match Pattern are returned unchanged; rewritten lines always end in "\n".
func TransformLine(line, base string) (string, bool) {
	m := Pattern.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	prefix, label, commit := m[1], strings.TrimRightFunc(m[2], isSpace), m[3]
	return prefix + "[" + label + "](" + CommitURL(base, commit) + ")\n", true
}

// Process rewrites every line of content and reports how many lines were linked.
func Process(content []byte, base string) ([]byte, int) {
	var out bytes.Buffer
	out.Grow(len(content))
	linked := 0
	for _, line := range bytes.SplitAfter(content, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		rewritten, ok := TransformLine(string(line), base)
		if ok {
			linked++
		}
		out.WriteString(rewritten)
	}
	return out.Bytes(), linked
}

// isSpace matches the runes of ws.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
