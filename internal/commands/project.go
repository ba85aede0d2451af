package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/config"
	"github.com/cleared-dev/synthbooks/internal/export"
	"github.com/cleared-dev/synthbooks/internal/gitops"
	"github.com/cleared-dev/synthbooks/internal/manifest"
	"github.com/cleared-dev/synthbooks/internal/tables"
)

// project is an initialized synthbooks directory with its config loaded.
type project struct {
	root string
	cfg  *config.Config
	log  *slog.Logger
}

func openProject(repoDir string, logOut io.Writer) (*project, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &project{root: root, cfg: cfg, log: newLogger(logOut, cfg.Output.LogFormat)}, nil
}

func newLogger(w io.Writer, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func (p *project) outputDir() string {
	if filepath.IsAbs(p.cfg.Output.Dir) {
		return p.cfg.Output.Dir
	}
	return filepath.Join(p.root, p.cfg.Output.Dir)
}

func (p *project) chart() (*accounts.Service, error) {
	return accounts.Load(p.root)
}

// publish exports ts in every configured format and rewrites the manifest.
func (p *project) publish(ctx context.Context, datasetID string, ts []tables.Table) error {
	dir := p.outputDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	files, err := export.DefaultRegistry().Run(ctx, dir, p.cfg.Output.Formats, ts)
	if err != nil {
		return err
	}
	for _, f := range files {
		p.log.Info("saved table", "table", f.Table, "rows", f.Rows, "file", f.Name)
	}

	entries, err := manifest.Build(dir, datasetID, files)
	if err != nil {
		return err
	}
	if err := manifest.Write(dir, entries); err != nil {
		return err
	}
	p.log.Info("wrote manifest", "dataset_id", datasetID, "files", len(files))
	return nil
}

// snapshot commits the project when auto_commit is on and the project is a
// git repository.
func (p *project) snapshot(message string) error {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return nil
	}
	author := gitops.Author{Name: p.cfg.Git.AuthorName, Email: p.cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(p.root, message, author)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		p.log.Info("dataset unchanged, nothing to commit")
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing dataset: %w", err)
	}
	p.log.Info("committed dataset", "commit", hash)
	return nil
}
