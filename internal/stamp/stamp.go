// Package stamp prefixes markdown change notes with their modification timestamp so
// that a plain directory listing sorts them chronologically.
package stamp

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/logfields"
	"git.home.luguber.info/inful/appshell/internal/metrics"
)

const (
	// TimestampLayout is the prefix format: 14 digits, local time.
	TimestampLayout = "20060102150405"
	prefixLen       = len(TimestampLayout)
	commandName     = "stamp"
)

// Options controls a stamping run.
type Options struct {
	// DryRun reports renames without touching the filesystem.
	DryRun bool
	// Git moves tracked files through the repository index instead of a plain rename.
	Git bool
}

// Operation is one planned or performed rename.
type Operation struct {
	OldPath string
	NewPath string
	Skipped bool
	Error   error
}

// Result collects the operations of a run.
type Result struct {
	Renamed []Operation
	Skipped []Operation
	Failed  []Operation
}

// Stamper renames change notes below a root directory.
type Stamper struct {
	root     string
	opts     Options
	gitRepo  *git.Repository
	Out      io.Writer
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// New prepares a Stamper for root. With Options.Git the enclosing repository is opened;
// a root outside any repository silently falls back to plain renames.
func New(root string, opts Options) (*Stamper, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.NotFoundError(fmt.Sprintf("changes directory not found: %s", root)).
			WithContext("path", root).
			Build()
	}

	s := &Stamper{
		root:     root,
		opts:     opts,
		Out:      os.Stdout,
		Recorder: metrics.NoopRecorder{},
		Logger:   slog.Default(),
	}
	if opts.Git {
		repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			s.Logger.Debug("Not a git repository, using plain renames", logfields.Path(root), logfields.Error(err))
		} else {
			s.gitRepo = repo
		}
	}
	return s, nil
}

// HasTimestampPrefix reports whether name already starts with 14 ASCII digits.
func HasTimestampPrefix(name string) bool {
	if len(name) < prefixLen {
		return false
	}
	for i := range prefixLen {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// StampedName returns name prefixed with mtime in local time.
func StampedName(name string, mtime time.Time) string {
	return mtime.Local().Format(TimestampLayout) + "_" + name
}

// Run walks the root directory and stamps every unprefixed *.md file.
func (s *Stamper) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer func() { metrics.OrNoop(s.Recorder).ObserveRunDuration(commandName, time.Since(start)) }()

	candidates, err := s.collect()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		op := s.rename(path)
		switch {
		case op.Error != nil:
			result.Failed = append(result.Failed, op)
			s.record(metrics.ResultFailed)
			s.printf("Failed: %s: %v\n", filepath.Base(op.OldPath), op.Error)
		case op.Skipped:
			result.Skipped = append(result.Skipped, op)
			s.record(metrics.ResultSkipped)
			s.printf("Skipped: %s already exists\n", filepath.Base(op.NewPath))
		default:
			result.Renamed = append(result.Renamed, op)
			s.record(metrics.ResultSuccess)
			s.printf("Renamed: %s -> %s\n", filepath.Base(op.OldPath), filepath.Base(op.NewPath))
		}
	}

	s.logger().Info("Stamping finished",
		logfields.Path(s.root),
		logfields.Count(len(result.Renamed)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failed", len(result.Failed)),
		slog.Bool("dry_run", s.opts.DryRun))
	return result, nil
}

// collect gathers unprefixed markdown files before any rename happens.
func (s *Stamper) collect() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger().Warn("Skipping unreadable path", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") && !HasTimestampPrefix(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "walk changes directory").
			WithContext("path", s.root).
			Build()
	}
	return files, nil
}

func (s *Stamper) rename(oldPath string) Operation {
	op := Operation{OldPath: oldPath}

	info, err := os.Stat(oldPath)
	if err != nil {
		op.Error = errors.WrapError(err, errors.CategoryFileSystem, "stat failed").Warning().Build()
		return op
	}
	op.NewPath = filepath.Join(filepath.Dir(oldPath), StampedName(filepath.Base(oldPath), info.ModTime()))

	if _, err := os.Stat(op.NewPath); err == nil {
		op.Skipped = true
		return op
	}

	if s.opts.DryRun {
		return op
	}

	if s.shouldUseGitMv(oldPath) {
		if err := s.gitMv(oldPath, op.NewPath); err != nil {
			op.Error = err
		}
		return op
	}

	if err := os.Rename(oldPath, op.NewPath); err != nil {
		op.Error = errors.WrapError(err, errors.CategoryFileSystem, "rename failed").Warning().Build()
	}
	return op
}

func (s *Stamper) record(result metrics.ResultLabel) {
	metrics.OrNoop(s.Recorder).IncFileResult(commandName, result)
}

func (s *Stamper) printf(format string, args ...any) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, format, args...)
}

func (s *Stamper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
