package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/synthbooks/internal/dataset"
	"github.com/cleared-dev/synthbooks/internal/journal"
	"github.com/cleared-dev/synthbooks/internal/ledger"
	"github.com/cleared-dev/synthbooks/internal/manifest"
)

func newCheckCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the journal, ledger and manifest in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runCheck(w io.Writer, p *project) error {
	dir := p.outputDir()
	d, err := dataset.LoadBooks(dir)
	if err != nil {
		return err
	}

	problems := 0
	report := func(err error) {
		problems++
		fmt.Fprintf(w, "  %v\n", err)
	}

	for _, v := range journal.ValidateLegs(d.Journal, d.Chart) {
		report(v)
	}
	for _, v := range ledger.Verify(d.Chart, d.Ledger) {
		report(v)
	}

	entries, err := manifest.Read(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		if err := manifest.Verify(dir, entries); err != nil {
			report(err)
		}
	}

	tb, err := ledger.TrialBalance(d.Chart, d.Ledger, time.Time{})
	switch {
	case err != nil:
		report(err)
	case !tb.Balanced():
		report(fmt.Errorf("trial balance at %s is off by %s",
			tb.PeriodEnd.Format("2006-01-02"), tb.DebitNormal.Sub(tb.CreditNormal).StringFixed(2)))
	default:
		fmt.Fprintf(w, "Trial balance at %s: debit-normal %s, credit-normal %s\n",
			tb.PeriodEnd.Format("2006-01-02"), tb.DebitNormal.StringFixed(2), tb.CreditNormal.StringFixed(2))
		for _, t := range ledger.AccountTypes {
			fmt.Fprintf(w, "  %-9s %s\n", t, tb.ByType[t].StringFixed(2))
		}
	}

	p.log.Info("checked books", "journal_lines", len(d.Journal), "ledger_rows", len(d.Ledger), "problems", problems)
	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	fmt.Fprintln(w, "OK")
	return nil
}
