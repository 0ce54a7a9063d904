package skeleton

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/metrics"
)

type countingRecorder struct {
	results map[metrics.ResultLabel]int
	runs    int
}

func (c *countingRecorder) IncFileResult(_ string, r metrics.ResultLabel) {
	if c.results == nil {
		c.results = map[metrics.ResultLabel]int{}
	}
	c.results[r]++
}

func (c *countingRecorder) ObserveRunDuration(string, time.Duration) { c.runs++ }

func newTestGenerator(dir string) (*Generator, *bytes.Buffer, *countingRecorder) {
	var out bytes.Buffer
	rec := &countingRecorder{}
	g := NewGenerator(dir)
	g.Out = &out
	g.Recorder = rec
	g.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return g, &out, rec
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestGenerator_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b-broken.json"), `{"header": `)
	writeFile(t, filepath.Join(dir, "a-home.json"), fooLayout)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.json"), 0o750))

	g, out, rec := newTestGenerator(dir)
	report, err := g.Run(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Skeleton written to: a-home.html", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Failed to process b-broken.json: decode layout document"), lines[1])

	assert.Equal(t, []string{filepath.Join(dir, "a-home.html")}, report.Written)
	require.Contains(t, report.Failed, "b-broken.json")
	assert.True(t, errors.HasCategory(report.Failed["b-broken.json"], errors.CategoryParse))

	page, err := os.ReadFile(filepath.Join(dir, "a-home.html"))
	require.NoError(t, err)
	assert.Equal(t, Build(decode(t, fooLayout)), string(page))
	assert.NoFileExists(t, filepath.Join(dir, "b-broken.html"))

	assert.Equal(t, 1, rec.results[metrics.ResultSuccess])
	assert.Equal(t, 1, rec.results[metrics.ResultFailed])
	assert.Equal(t, 1, rec.runs)
}

func TestGenerator_TrailingDataIsReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.json"), `{"header": {"title": {"text": "Foo"}}} trailing`)

	g, out, _ := newTestGenerator(dir)
	report, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "Failed to process x.json: "), out.String())
	assert.Empty(t, report.Written)
	assert.True(t, errors.HasCategory(report.Failed["x.json"], errors.CategoryParse))
	assert.NoFileExists(t, filepath.Join(dir, "x.html"))
}

func TestGenerator_OverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "home.json"), `{}`)
	writeFile(t, filepath.Join(dir, "home.html"), "stale")

	g, _, _ := newTestGenerator(dir)
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "home.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Headshot AI")
}

func TestGenerator_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	g, out, _ := newTestGenerator(dir)

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Written)
	assert.Equal(t, "No JSON layout files found in "+dir+"\n", out.String())
}

func TestGenerator_MissingDirectoryIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	g, out, _ := newTestGenerator(missing)

	_, err := g.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	assert.True(t, errors.IsFatal(err))
	assert.Contains(t, err.Error(), missing)
	assert.Empty(t, out.String())
}

func TestGenerator_CanceledContextStopsBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "home.json"), `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, _, _ := newTestGenerator(dir)
	_, err := g.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "home.html"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "home.html"), OutputPath(filepath.Join("a", "home.json")))
	assert.Equal(t, "v1.2.html", OutputPath("v1.2.json"))
}
