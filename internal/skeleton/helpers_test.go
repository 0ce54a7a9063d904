package skeleton

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/appshell/internal/layout"
)

func decode(t *testing.T, src string) layout.Node {
	t.Helper()
	doc, err := layout.Decode(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func items(t *testing.T, src string) []layout.Node {
	t.Helper()
	return decode(t, `{"items": `+src+`}`).Get("items").Items()
}
