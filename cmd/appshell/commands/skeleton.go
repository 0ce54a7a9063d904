package commands

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/appshell/internal/config"
	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/skeleton"
)

// SkeletonCmd implements the 'skeleton' command.
type SkeletonCmd struct {
	InputDir string `short:"i" name:"input-dir" help:"Directory holding layout JSON files (default: the directory of the appshell executable)"`
	Watch    bool   `short:"w" help:"Keep running and regenerate skeletons when layout files change"`
}

func (s *SkeletonCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	dir, err := ResolveInputDir(s.InputDir, cfg)
	if err != nil {
		return err
	}

	policy, err := cfg.Skeleton.Watch.RetryPolicy()
	if err != nil {
		return err
	}

	gen := skeleton.NewGenerator(dir)
	gen.Retry = policy
	gen.Out = g.Stdout
	gen.Recorder = g.Recorder
	gen.Logger = g.Logger

	if _, err := gen.Run(g.Ctx); err != nil {
		return err
	}
	if s.Watch {
		return gen.Watch(g.Ctx)
	}
	return nil
}

// ResolveInputDir picks the layout directory.
// Priority: --input-dir > APPSHELL_LAYOUT_DIR / skeleton.input_dir > executable directory.
func ResolveInputDir(flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg != nil && cfg.Skeleton.InputDir != "" {
		return cfg.Skeleton.InputDir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "locate executable").Build()
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
