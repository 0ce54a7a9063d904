package commands

import (
	"os"

	"git.home.luguber.info/inful/appshell/internal/linkify"
	"git.home.luguber.info/inful/appshell/internal/logfields"
)

// LinkifyCmd implements the 'linkify' command.
type LinkifyCmd struct {
	Input      string `arg:"" help:"Markdown file to rewrite"`
	Output     string `short:"o" help:"Write the result here; without it INPUT is rewritten in place and INPUT.bak keeps the original"`
	Owner      string `help:"GitHub owner (default: hiowenluke)"`
	Repo       string `help:"GitHub repository (default: headshot-ai)"`
	FromRemote bool   `name:"from-remote" help:"Take owner and repository from the origin remote of the repository containing INPUT"`
	DryRun     bool   `name:"dry-run" help:"Print the result instead of writing files"`
}

func (l *LinkifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	owner, repo := cfg.Linkify.Owner, cfg.Linkify.Repo
	if l.FromRemote {
		// A missing input is reported by the linkifier itself.
		if _, statErr := os.Stat(l.Input); statErr == nil {
			remoteOwner, remoteRepo, err := linkify.RepoFromRemote(l.Input)
			if err != nil {
				return err
			}
			owner, repo = remoteOwner, remoteRepo
			g.Logger.Debug("Using origin remote", logfields.Path(l.Input), "owner", owner, "repo", repo)
		}
	}
	if l.Owner != "" {
		owner = l.Owner
	}
	if l.Repo != "" {
		repo = l.Repo
	}

	lk := linkify.New(owner, repo)
	lk.Out = g.Stdout
	lk.Recorder = g.Recorder
	lk.Logger = g.Logger

	_, err = lk.Run(g.Ctx, l.Input, linkify.Options{Output: l.Output, DryRun: l.DryRun})
	return err
}
