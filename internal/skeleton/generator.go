package skeleton

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/layout"
	"git.home.luguber.info/inful/appshell/internal/logfields"
	"git.home.luguber.info/inful/appshell/internal/metrics"
	"git.home.luguber.info/inful/appshell/internal/retry"
)

const commandName = "skeleton"

// Generator writes a skeleton page next to every layout document in InputDir.
type Generator struct {
	InputDir string
	// Out receives the per-file report lines.
	Out      io.Writer
	Recorder metrics.Recorder
	Logger   *slog.Logger
	// Retry governs regeneration in watch mode, where a file may still be half written.
	Retry retry.Policy
}

// Report summarises one batch run.
type Report struct {
	Written []string
	Failed  map[string]error
}

// NewGenerator returns a Generator reporting to stdout with metrics disabled.
func NewGenerator(inputDir string) *Generator {
	return &Generator{
		InputDir: inputDir,
		Out:      os.Stdout,
		Recorder: metrics.NoopRecorder{},
		Logger:   slog.Default(),
		Retry:    retry.DefaultPolicy(),
	}
}

// Run processes every *.json file in InputDir in sorted order. Per-file failures are
// reported and recorded in the Report; only a missing InputDir fails the run.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	defer func() { g.recorder().ObserveRunDuration(commandName, time.Since(start)) }()

	files, err := g.layoutFiles()
	if err != nil {
		return nil, err
	}

	report := &Report{Failed: map[string]error{}}
	if len(files) == 0 {
		g.printf("No JSON layout files found in %s\n", g.InputDir)
		return report, nil
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if out, err := g.ProcessFile(path); err != nil {
			report.Failed[filepath.Base(path)] = err
		} else {
			report.Written = append(report.Written, out)
		}
	}

	g.logger().Info("Skeleton generation finished",
		logfields.Path(g.InputDir),
		logfields.Count(len(report.Written)),
		slog.Int("failed", len(report.Failed)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return report, nil
}

// ProcessFile renders the skeleton for one layout document and reports the outcome.
func (g *Generator) ProcessFile(path string) (string, error) {
	out, err := g.generate(path)
	return g.report(path, out, err)
}

func (g *Generator) report(path, out string, err error) (string, error) {
	if err != nil {
		g.recorder().IncFileResult(commandName, metrics.ResultFailed)
		g.logger().Debug("Skeleton generation failed", logfields.File(path), logfields.Error(err))
		g.printf("Failed to process %s: %v\n", filepath.Base(path), err)
		return "", err
	}
	g.recorder().IncFileResult(commandName, metrics.ResultSuccess)
	g.printf("Skeleton written to: %s\n", g.relative(out))
	return out, nil
}

func (g *Generator) generate(path string) (string, error) {
	doc, err := layout.Load(path)
	if err != nil {
		return "", err
	}
	page := Build(doc)

	out := OutputPath(path)
	if err := atomic.WriteFile(out, strings.NewReader(page)); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "write skeleton").
			WithContext("path", out).
			Build()
	}
	// #nosec G302 -- generated pages are public static assets
	if err := os.Chmod(out, 0o644); err != nil {
		g.logger().Warn("Failed to set skeleton permissions", logfields.Output(out), logfields.Error(err))
	}
	return out, nil
}

// OutputPath maps name.json to its sibling name.html.
func OutputPath(layoutPath string) string {
	return strings.TrimSuffix(layoutPath, filepath.Ext(layoutPath)) + ".html"
}

// layoutFiles lists regular *.json files in InputDir, sorted by name.
func (g *Generator) layoutFiles() ([]string, error) {
	info, err := os.Stat(g.InputDir)
	if err != nil || !info.IsDir() {
		return nil, errors.NotFoundError(fmt.Sprintf("input directory not found: %s", g.InputDir)).
			WithContext("path", g.InputDir).
			Build()
	}

	entries, err := os.ReadDir(g.InputDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read input directory").
			Fatal().
			WithContext("path", g.InputDir).
			Build()
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isLayoutFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(g.InputDir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}

func isLayoutFile(name string) bool {
	return filepath.Ext(name) == ".json"
}

func (g *Generator) relative(path string) string {
	if rel, err := filepath.Rel(g.InputDir, path); err == nil {
		return rel
	}
	return path
}

func (g *Generator) printf(format string, args ...any) {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, format, args...)
}

func (g *Generator) recorder() metrics.Recorder {
	return metrics.OrNoop(g.Recorder)
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
