package linkify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/logfields"
	"git.home.luguber.info/inful/appshell/internal/metrics"
)

const commandName = "linkify"

// BackupSuffix is appended to the input path when it is rewritten in place.
const BackupSuffix = ".bak"

// Options controls where the rewritten document goes.
type Options struct {
	// Output receives the result; empty means rewrite the input after backing it up.
	Output string
	// DryRun writes the result to Linkifier.Out and leaves every file untouched.
	DryRun bool
}

// Result describes one rewrite.
type Result struct {
	OutputPath string
	BackupPath string
	// Linked is the number of lines rewritten into links.
	Linked int
	// Links is the number of commit links the resulting markdown contains.
	Links int
	// Unparsed is the number of linked lines whose rewrite markdown does not read as a
	// link, for example a label with an unbalanced "]".
	Unparsed int
}

// Linkifier rewrites changelog files against one repository base URL.
type Linkifier struct {
	BaseURL  string
	Out      io.Writer
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// New returns a Linkifier for github.com/owner/repo.
func New(owner, repo string) *Linkifier {
	return &Linkifier{
		BaseURL:  BaseURL(owner, repo),
		Out:      os.Stdout,
		Recorder: metrics.NoopRecorder{},
		Logger:   slog.Default(),
	}
}

// Run rewrites input according to opts.
func (l *Linkifier) Run(ctx context.Context, input string, opts Options) (*Result, error) {
	start := time.Now()
	defer func() { metrics.OrNoop(l.Recorder).ObserveRunDuration(commandName, time.Since(start)) }()

	info, err := os.Stat(input)
	if err != nil {
		l.record(metrics.ResultFailed)
		return nil, errors.NotFoundError(fmt.Sprintf("input file does not exist: %s", input)).
			WithContext("path", input).
			Build()
	}
	if info.IsDir() {
		l.record(metrics.ResultFailed)
		return nil, errors.FileSystemError(fmt.Sprintf("input is a directory: %s", input)).
			WithContext("path", input).
			Build()
	}
	original, err := os.ReadFile(input) // #nosec G304 -- user-selected input file
	if err != nil {
		l.record(metrics.ResultFailed)
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read input file").
			WithContext("path", input).
			Build()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rewritten, linked := Process(original, l.BaseURL)
	result := &Result{Linked: linked, Links: CountCommitLinks(rewritten, l.BaseURL)}
	if missing := linked - (result.Links - CountCommitLinks(original, l.BaseURL)); missing > 0 {
		result.Unparsed = missing
		l.logger().Warn("Rewritten lines do not parse as markdown links",
			logfields.File(input),
			logfields.Count(linked),
			slog.Int("unparsed", missing))
	}

	if opts.DryRun {
		out := l.Out
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(rewritten); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "write dry-run output").Build()
		}
		l.record(metrics.ResultSkipped)
		l.logResult(input, result, true)
		return result, nil
	}

	result.OutputPath = opts.Output
	if result.OutputPath == "" {
		result.OutputPath = input
		result.BackupPath = input + BackupSuffix
		if err := writeFile(result.BackupPath, original, info.Mode().Perm()); err != nil {
			l.record(metrics.ResultFailed)
			return nil, err
		}
	}
	if err := writeFile(result.OutputPath, rewritten, info.Mode().Perm()); err != nil {
		l.record(metrics.ResultFailed)
		return nil, err
	}

	l.record(metrics.ResultSuccess)
	l.logResult(input, result, false)
	return result, nil
}

func (l *Linkifier) logResult(input string, result *Result, dryRun bool) {
	l.logger().Info("Commit links rewritten",
		logfields.File(input),
		logfields.Output(result.OutputPath),
		logfields.Count(result.Linked),
		slog.Int("links", result.Links),
		slog.Bool("dry_run", dryRun))
}

func (l *Linkifier) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *Linkifier) record(result metrics.ResultLabel) {
	metrics.OrNoop(l.Recorder).IncFileResult(commandName, result)
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write file").
			WithContext("path", path).
			Build()
	}
	if err := os.Chmod(path, perm); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "set file mode").
			WithContext("path", path).
			Build()
	}
	return nil
}
