package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/synthbooks/internal/dataset"
	"github.com/cleared-dev/synthbooks/internal/manifest"
)

func newDeriveCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Rebuild the journal and ledger from the tables in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runDerive(cmd, p)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runDerive(cmd *cobra.Command, p *project) error {
	h, err := p.cfg.Horizon()
	if err != nil {
		return err
	}
	dir := p.outputDir()

	id, err := datasetID(dir)
	if err != nil {
		return err
	}

	d, err := dataset.LoadInputs(dir, h)
	if err != nil {
		return err
	}
	if err := d.Derive(cmd.Context(), p.cfg.Accounts.Roles, p.cfg.JournalOptions()); err != nil {
		return err
	}
	if err := p.publish(cmd.Context(), id, d.Tables()); err != nil {
		return err
	}
	if err := p.snapshot("derive: dataset " + id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Derived dataset %s: %d journal lines, %d ledger rows in %s\n",
		id, len(d.Journal), len(d.Ledger), dir)
	return nil
}

// datasetID keeps the id of an existing manifest. Tables without one get an
// id derived from the content of their input files.
func datasetID(dir string) (string, error) {
	entries, err := manifest.Read(dir)
	if err != nil {
		return "", err
	}
	if len(entries) > 0 {
		return entries[0].DatasetID, nil
	}

	var hashes []string
	for _, name := range dataset.InputFiles() {
		sum, err := manifest.FileHash(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		hashes = append(hashes, name+"="+sum)
	}
	return manifest.ContentID(hashes), nil
}
