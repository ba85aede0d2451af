// Package gitops snapshots a dataset project in git.
package gitops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned by CommitAll when the work tree is clean.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who a snapshot commit is attributed to. It is used for
// both the author and the committer so commits work without a global git
// identity.
type Author struct {
	Name  string
	Email string
}

func (a Author) env() []string {
	return []string{
		"GIT_AUTHOR_NAME=" + a.Name,
		"GIT_AUTHOR_EMAIL=" + a.Email,
		"GIT_COMMITTER_NAME=" + a.Name,
		"GIT_COMMITTER_EMAIL=" + a.Email,
	}
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := git(dir, nil, "init", "-q"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// Dirty reports whether dir has uncommitted or untracked changes.
func Dirty(dir string) (bool, error) {
	out, err := git(dir, nil, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// CommitAll stages all files and creates a commit. Returns the short commit
// hash, or ErrNothingToCommit if there was nothing to stage.
func CommitAll(dir, message string, author Author) (string, error) {
	if _, err := git(dir, nil, "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	dirty, err := Dirty(dir)
	if err != nil {
		return "", err
	}
	if !dirty {
		return "", ErrNothingToCommit
	}

	if _, err := git(dir, &author, "commit", "-q", "-m", message); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	out, err := git(dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func git(dir string, author *Author, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if author != nil {
		cmd.Env = append(os.Environ(), author.env()...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(string(out)), err)
	}
	return out, nil
}
