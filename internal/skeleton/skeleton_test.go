package skeleton

import (
	"strings"
	"testing"
	"text/template"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooLayout = `{
  "header": {
    "title": {"text": "Foo"},
    "navItems": [
      {"text": "Styles", "classes": ["active"]},
      {"text": "Sizes", "classes": []}
    ]
  },
  "cards": {
    "items": [
      {"rect": {"width": 100, "height": 150}},
      {"rect": {"width": 100, "height": 150}},
      {"rect": {"width": 100, "height": 150}}
    ]
  }
}`

func TestResolveTitle(t *testing.T) {
	assert.Equal(t, "Foo", ResolveTitle(decode(t, `{"title": {"text": "  Foo \n"}}`)))
	assert.Equal(t, DefaultTitle, ResolveTitle(decode(t, `{"title": {"text": "   "}}`)))
	assert.Equal(t, DefaultTitle, ResolveTitle(decode(t, `{"title": {"text": 12}}`)))
	assert.Equal(t, DefaultTitle, ResolveTitle(decode(t, `{}`)))
}

func TestContentPadding(t *testing.T) {
	assert.InDelta(t, 122.0, ContentPadding(decode(t, `{}`)), 1e-9)
	assert.InDelta(t, 110.5, ContentPadding(decode(t, `{"container": {"rect": {"height": 96.5}}}`)), 1e-9)
	assert.InDelta(t, 122.0, ContentPadding(decode(t, `{"container": {"rect": {"height": null}}}`)), 1e-9)
}

func TestBuild_MinimalDocument(t *testing.T) {
	page := Build(decode(t, `{}`))

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>\n"))
	assert.True(t, strings.HasSuffix(page, "</html>\n"))
	assert.False(t, strings.HasSuffix(page, "\n\n"))
	assert.Contains(t, page, "<title>Headshot AI · Skeleton</title>")
	assert.Contains(t, page, `<div class="app-shell-title">Headshot AI</div>`)
	assert.Contains(t, page, `<div class="app-shell-header">`)
	assert.Contains(t, page, "padding: 122px 0 48px;")
	assert.Contains(t, page, "aspect-ratio: 0.800;")

	summary, err := Inspect(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 8, summary.Cards)
	assert.Equal(t, 2, summary.Icons)
	assert.Equal(t, 1, summary.Chips)
	assert.Equal(t, 1, summary.ActiveChips)
	assert.Equal(t, []string{"Primary"}, summary.ChipLabels)
}

func TestBuild_EndToEnd(t *testing.T) {
	page := Build(decode(t, fooLayout))

	assert.Contains(t, page, `<div class="app-shell-title">Foo</div>`)
	assert.Contains(t, page, `<div class="app-shell-chip" data-index="0">Styles</div>`)
	assert.Contains(t, page, `<div class="app-shell-chip inactive" data-index="1">Sizes</div>`)
	assert.Equal(t, 3, strings.Count(page, `<div class="app-shell-card"`))
	assert.Contains(t, page, "aspect-ratio: 0.667;")

	summary, err := Inspect(strings.NewReader(page))
	require.NoError(t, err)
	want := &Summary{
		Title:       "Foo",
		Chips:       2,
		ActiveChips: 1,
		Icons:       2,
		Cards:       3,
		AspectRatio: "0.667",
		ChipLabels:  []string{"Styles", "Sizes"},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_HeaderAndTitleStyles(t *testing.T) {
	page := Build(decode(t, `{
		"header": {
			"container": {
				"rect": {"height": 120},
				"styles": {"marginTop": "0px", "backgroundColor": "rgba(0, 0, 0, 0.5)", "color": "red"}
			},
			"title": {"text": "Studio", "styles": {"color": "#fff", "fontWeight": "700"}}
		}
	}`))

	assert.Contains(t, page, `<div class="app-shell-header" style="background-color: rgba(0, 0, 0, 0.5); margin-top: 0px;">`)
	assert.Contains(t, page, `<div class="app-shell-title" style="font-weight: 700; color: #fff;">Studio</div>`)
	assert.Contains(t, page, "padding: 134px 0 48px;")
}

func TestBuild_EscapesCapturedText(t *testing.T) {
	page := Build(decode(t, `{"header": {"title": {"text": "<b>AI</b>"}, "navItems": [{"text": "A & B"}]}}`))

	assert.Contains(t, page, `<div class="app-shell-title">&lt;b&gt;AI&lt;/b&gt;</div>`)
	assert.Contains(t, page, `>A &amp; B</div>`)
}

func TestBuild_Deterministic(t *testing.T) {
	first := Build(decode(t, fooLayout))
	for range 5 {
		if diff := cmp.Diff(first, Build(decode(t, fooLayout))); diff != "" {
			t.Fatalf("Build is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestBuild_CardCountUsesAllItems(t *testing.T) {
	page := Build(decode(t, `{"cards": {"items": [{}, {"rect": {"width": 0}}, {"rect": {"width": 120, "height": 160}}]}}`))

	assert.Equal(t, 3, strings.Count(page, `class="app-shell-card"`))
	assert.Contains(t, page, "aspect-ratio: 0.750;")
}

func TestPageTemplateReferencesEveryRegion(t *testing.T) {
	for _, field := range []string{".Title", ".HeaderStyleAttr", ".TitleStyleAttr", ".IconsHTML", ".NavHTML", ".CardsHTML", ".PaddingTop", ".CardRatio"} {
		assert.Contains(t, pageTemplateSource, "{{"+field+"}}", "template should reference %s", field)
	}
}

func TestRenderPage_PanicsOnTemplateMismatch(t *testing.T) {
	stale := template.Must(template.New("stale").Option("missingkey=error").Parse("{{.Subtitle}}"))
	assert.Panics(t, func() { renderPage(stale, pageData{}) })

	ok := template.Must(template.New("ok").Parse("  <h1>{{.Title}}</h1>\n\n"))
	assert.Equal(t, "<h1>Foo</h1>\n", renderPage(ok, pageData{Title: "Foo"}))
}
