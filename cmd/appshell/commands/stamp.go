package commands

import (
	"git.home.luguber.info/inful/appshell/internal/stamp"
)

// StampCmd implements the 'stamp' command.
type StampCmd struct {
	Dir    string `arg:"" optional:"" help:"Directory of change notes (default: ./__changes)"`
	DryRun bool   `name:"dry-run" help:"Show what would be renamed without renaming"`
	Git    bool   `help:"Use git mv for files tracked in the enclosing repository"`
}

func (s *StampCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = cfg.Stamp.Dir
	}

	stamper, err := stamp.New(dir, stamp.Options{DryRun: s.DryRun, Git: s.Git || cfg.Stamp.Git})
	if err != nil {
		return err
	}
	stamper.Out = g.Stdout
	stamper.Recorder = g.Recorder
	stamper.Logger = g.Logger

	_, err = stamper.Run(g.Ctx)
	return err
}
