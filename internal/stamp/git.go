package stamp

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
)

// repoRelative converts path to a slash-separated path relative to the worktree root.
func (s *Stamper) repoRelative(path string) (string, bool) {
	if s.gitRepo == nil {
		return "", false
	}
	w, err := s.gitRepo.Worktree()
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	// Resolve symlinks on both sides so temp dirs like /var -> /private/var still match.
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	root := w.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// shouldUseGitMv checks if a file is tracked in the repository index.
func (s *Stamper) shouldUseGitMv(path string) bool {
	rel, ok := s.repoRelative(path)
	if !ok {
		return false
	}
	idx, err := s.gitRepo.Storer.Index()
	if err != nil {
		return false
	}
	_, err = idx.Entry(rel)
	return err == nil
}

// gitMv moves a tracked file and stages the move.
func (s *Stamper) gitMv(oldPath, newPath string) error {
	w, err := s.gitRepo.Worktree()
	if err != nil {
		return errors.WrapError(err, errors.CategoryGit, "failed to get git worktree").Build()
	}
	relOld, ok := s.repoRelative(oldPath)
	if !ok {
		return errors.GitError("file is outside the repository").WithContext("path", oldPath).Build()
	}
	relNew, ok := s.repoRelative(newPath)
	if !ok {
		return errors.GitError("target is outside the repository").WithContext("path", newPath).Build()
	}
	if _, err := w.Move(relOld, relNew); err != nil {
		return errors.WrapError(err, errors.CategoryGit, "failed to move file in git").Build()
	}
	return nil
}
