package commands

import (
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/skeleton"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	File string `arg:"" help:"Generated skeleton HTML file"`
}

func (i *InspectCmd) Run(g *Global, _ *CLI) error {
	f, err := os.Open(i.File)
	if err != nil {
		return errors.NotFoundError("skeleton page not found: "+i.File).
			WithContext("path", i.File).
			Build()
	}
	defer func() { _ = f.Close() }()

	summary, err := skeleton.Inspect(f)
	if err != nil {
		return err
	}

	out := g.Stdout
	_, _ = fmt.Fprintf(out, "Title: %s\n", summary.Title)
	_, _ = fmt.Fprintf(out, "Header styled: %s\n", yesNo(summary.HeaderStyled))
	_, _ = fmt.Fprintf(out, "Chips: %d (%d active)", summary.Chips, summary.ActiveChips)
	if len(summary.ChipLabels) > 0 {
		_, _ = fmt.Fprintf(out, " [%s]", strings.Join(summary.ChipLabels, ", "))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "Icons: %d\n", summary.Icons)
	_, _ = fmt.Fprintf(out, "Cards: %d\n", summary.Cards)
	_, _ = fmt.Fprintf(out, "Aspect ratio: %s\n", summary.AspectRatio)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
