package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/appshell/internal/config"
	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/logfields"
	"git.home.luguber.info/inful/appshell/internal/metrics"
	"git.home.luguber.info/inful/appshell/internal/version"
)

// Global carries state shared by every subcommand.
type Global struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Stdout   io.Writer
	Recorder metrics.Recorder
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: appshell.yaml when present)"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus textfile metrics to this path when the command finishes"`

	Skeleton SkeletonCmd `cmd:"" default:"withargs" help:"Generate skeleton HTML pages from layout JSON files (default)"`
	Stamp    StampCmd    `cmd:"" help:"Prefix markdown change notes with their modification timestamp"`
	Linkify  LinkifyCmd  `cmd:"" help:"Turn '- text // <hash>' lines into commit links"`
	Inspect  InspectCmd  `cmd:"" help:"Summarise a generated skeleton page"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`

	stderr io.Writer
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(c.errWriter(), level, config.LogFormatText))
	return nil
}

// loadConfig reads the configuration file and reconfigures logging from it.
// -v always wins over the configured level.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = newLogger(c.errWriter(), level, cfg.Logging.Format)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func (c *CLI) errWriter() io.Writer {
	if c.stderr == nil {
		return os.Stderr
	}
	return c.stderr
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type exitSignal int

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			code = int(sig)
		}
	}()

	cli := &CLI{stderr: stderr}
	parser, err := kong.New(cli,
		kong.Name("appshell"),
		kong.Description("Skeleton pages, change-note stamps and commit links for the app repository."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitSignal(c)) }),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "appshell: %v\n", err)
		return 10
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "appshell: error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &Global{
		Ctx:      ctx,
		Logger:   slog.Default(),
		Stdout:   stdout,
		Recorder: metrics.NoopRecorder{},
	}
	var reg *prom.Registry
	if cli.MetricsFile != "" {
		reg = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	runErr := kctx.Run(g, cli)

	if reg != nil {
		if err := metrics.WriteTextfile(cli.MetricsFile, reg); err != nil {
			g.Logger.Warn("Failed to write metrics file", logfields.Output(cli.MetricsFile), logfields.Error(err))
		}
	}

	if runErr != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, g.Logger).
			WithStderr(stderr).
			WithExit(func(c int) { code = c }).
			HandleError(runErr)
	}
	return code
}
