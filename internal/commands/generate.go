package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/synthbooks/internal/dataset"
)

func newGenerateCommand() *cobra.Command {
	var repoDir string
	var seed int64
	var formats []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset and derive its journal and ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				p.cfg.Dataset.Seed = seed
			}
			if cmd.Flags().Changed("format") {
				p.cfg.Output.Formats = formats
			}
			if err := p.cfg.Validate(); err != nil {
				return err
			}
			return runGenerate(cmd, p)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (overrides dataset.seed)")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "export formats, e.g. csv,xlsx (overrides output.formats)")

	return cmd
}

func runGenerate(cmd *cobra.Command, p *project) error {
	chart, err := p.chart()
	if err != nil {
		return err
	}

	p.log.Info("generating dataset", "name", p.cfg.Dataset.Name, "seed", p.cfg.Dataset.Seed,
		"start", p.cfg.Dataset.StartDate, "end", p.cfg.Dataset.EndDate)

	d, err := dataset.Build(cmd.Context(), p.cfg, chart)
	if err != nil {
		return err
	}
	if err := p.publish(cmd.Context(), d.ID, d.Tables()); err != nil {
		return err
	}
	if err := p.snapshot("generate: dataset " + d.ID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated dataset %s: %d journal lines, %d ledger rows in %s\n",
		d.ID, len(d.Journal), len(d.Ledger), p.outputDir())
	return nil
}
