package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/appshell/internal/config"
	"git.home.luguber.info/inful/appshell/internal/version"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI inside a fresh working directory so no stray appshell.yaml or
// .env file is picked up.
func run(t *testing.T, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.LayoutDirEnv, "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const fooLayout = `{
  "header": {
    "title": {"text": "Foo"},
    "navItems": [
      {"text": "Home", "classes": ["chip", "active"]},
      {"text": "Style"}
    ]
  },
  "cards": {"items": [{"rect": {"width": 200, "height": 300}}]}
}`

func TestSkeletonCommand(t *testing.T) {
	work := isolate(t)
	layouts := filepath.Join(work, "layouts")
	writeFile(t, filepath.Join(layouts, "home.json"), fooLayout)
	writeFile(t, filepath.Join(layouts, "broken.json"), "{")

	res := run(t, "skeleton", "--input-dir", layouts)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Skeleton written to: home.html\n")
	assert.Contains(t, res.stdout, "Failed to process broken.json: ")
	assert.FileExists(t, filepath.Join(layouts, "home.html"))
}

func TestSkeletonIsDefaultCommand(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "layouts", "home.json"), fooLayout)

	res := run(t, "--input-dir", filepath.Join(work, "layouts"))
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Skeleton written to: home.html")
}

func TestSkeletonCommand_LayoutDirFromEnvironment(t *testing.T) {
	work := isolate(t)
	layouts := filepath.Join(work, "from-env")
	writeFile(t, filepath.Join(layouts, "home.json"), "{}")
	t.Setenv(config.LayoutDirEnv, layouts)

	res := run(t, "skeleton")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(layouts, "home.html"))
}

func TestSkeletonCommand_MissingInputDir(t *testing.T) {
	work := isolate(t)

	res := run(t, "skeleton", "--input-dir", filepath.Join(work, "missing"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "input directory not found")
}

func TestSkeletonCommand_EmptyInputDir(t *testing.T) {
	work := isolate(t)

	res := run(t, "skeleton", "-i", work)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "No JSON layout files found in "+work+"\n", res.stdout)
}

func TestSkeletonCommand_MetricsFile(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "home.json"), "{}")
	metricsPath := filepath.Join(work, "appshell.prom")

	res := run(t, "--metrics-file", metricsPath, "skeleton", "-i", work)
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `appshell_file_results_total{command="skeleton",result="success"} 1`)
	assert.Contains(t, string(data), "appshell_run_duration_seconds")
}

func TestInspectCommand(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "home.json"), fooLayout)
	require.Equal(t, 0, run(t, "skeleton", "-i", work).code)

	res := run(t, "inspect", filepath.Join(work, "home.html"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Title: Foo\nHeader styled: no\n")
	assert.Contains(t, res.stdout, "Chips: 2 (1 active) [Home, Style]\n")
	assert.Contains(t, res.stdout, "Icons: 2\n")
	assert.Contains(t, res.stdout, "Cards: 1\n")
	assert.Contains(t, res.stdout, "Aspect ratio: 0.667\n")
}

func TestInspectCommand_StyledHeader(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "home.json"),
		`{"header": {"container": {"styles": {"backgroundColor": "#fff"}}}}`)
	require.Equal(t, 0, run(t, "skeleton", "-i", work).code)

	res := run(t, "inspect", filepath.Join(work, "home.html"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Header styled: yes\n")
}

func TestInspectCommand_MissingFile(t *testing.T) {
	work := isolate(t)
	res := run(t, "inspect", filepath.Join(work, "nope.html"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "skeleton page not found")
}

func TestStampCommand_DefaultDirectory(t *testing.T) {
	work := isolate(t)
	note := filepath.Join(work, "__changes", "login.md")
	writeFile(t, note, "# login\n")
	mtime := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	require.NoError(t, os.Chtimes(note, mtime, mtime))

	res := run(t, "stamp")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Renamed: login.md -> 20240305140709_login.md\n", res.stdout)
	assert.FileExists(t, filepath.Join(work, "__changes", "20240305140709_login.md"))
}

func TestStampCommand_DryRunAndMissingDir(t *testing.T) {
	work := isolate(t)
	notes := filepath.Join(work, "notes")
	writeFile(t, filepath.Join(notes, "login.md"), "# login\n")

	res := run(t, "stamp", notes, "--dry-run")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Renamed: login.md -> ")
	assert.FileExists(t, filepath.Join(notes, "login.md"))

	res = run(t, "stamp", filepath.Join(work, "missing"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "changes directory not found")
}

func TestLinkifyCommand(t *testing.T) {
	work := isolate(t)
	input := filepath.Join(work, "CHANGES.md")
	writeFile(t, input, "- Fix crash // abcdef1\n")

	res := run(t, "linkify", input, "--owner", "acme", "--repo", "widgets")
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "- [Fix crash](https://github.com/acme/widgets/commit/abcdef1)\n", string(data))
	assert.FileExists(t, input+".bak")
}

func TestLinkifyCommand_DryRunUsesConfig(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "appshell.yaml"), "linkify:\n  owner: cfgowner\n  repo: cfgrepo\n")
	input := filepath.Join(work, "CHANGES.md")
	writeFile(t, input, "- Fix crash // abcdef1\n")

	res := run(t, "linkify", "--dry-run", input)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "- [Fix crash](https://github.com/cfgowner/cfgrepo/commit/abcdef1)\n", res.stdout)
	assert.NoFileExists(t, input+".bak")
}

func TestLinkifyCommand_MissingInput(t *testing.T) {
	work := isolate(t)
	res := run(t, "linkify", filepath.Join(work, "missing.md"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "input file does not exist")
}

func TestInitCommand(t *testing.T) {
	work := isolate(t)

	res := run(t, "init")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Writing configuration to appshell.yaml")
	assert.FileExists(t, filepath.Join(work, "appshell.yaml"))

	res = run(t, "init")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "already exists")

	res = run(t, "init", "--force")
	assert.Equal(t, 0, res.code, res.stderr)
}

func TestConfigErrors(t *testing.T) {
	work := isolate(t)

	res := run(t, "-c", filepath.Join(work, "nope.yaml"), "stamp")
	assert.Equal(t, 7, res.code)
	assert.Contains(t, res.stderr, "configuration file not found")
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	res := run(t, "--version")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, version.String()+"\n", res.stdout)
}

func TestUnknownFlag(t *testing.T) {
	isolate(t)
	res := run(t, "stamp", "--bogus")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "appshell: error:")
}

func TestResolveInputDir(t *testing.T) {
	dir, err := ResolveInputDir("/flag", &config.Config{Skeleton: config.SkeletonConfig{InputDir: "/cfg"}})
	require.NoError(t, err)
	assert.Equal(t, "/flag", dir)

	dir, err = ResolveInputDir("", &config.Config{Skeleton: config.SkeletonConfig{InputDir: "/cfg"}})
	require.NoError(t, err)
	assert.Equal(t, "/cfg", dir)

	dir, err = ResolveInputDir("", config.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir))
}
