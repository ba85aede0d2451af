package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/synthbooks/internal/importer"
	"github.com/cleared-dev/synthbooks/internal/model"
	"github.com/cleared-dev/synthbooks/internal/tables"
)

func newImportCommand() *cobra.Command {
	var repoDir string
	var format string
	var bankAccount int

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Append bank statements from import/ to the bank movements table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(repoDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runImport(cmd, p, format, bankAccount)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().StringVar(&format, "format", "chase", "statement format (chase, cargo-abono)")
	cmd.Flags().IntVar(&bankAccount, "bank-account", 1, "bank account id the statements belong to")

	return cmd
}

func runImport(cmd *cobra.Command, p *project, format string, bankAccount int) error {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	files, err := importer.Scan(p.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No statements to import")
		return nil
	}

	dir := p.outputDir()
	if err := checkBankAccount(dir, bankAccount); err != nil {
		return err
	}

	path := filepath.Join(dir, tables.BankMovements.File())
	movements, err := tables.BankMovements.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading bank movements: %w", err)
	}

	imported := 0
	var names []string
	for _, f := range files {
		lines, err := importer.ParseFile(parser, f.Path)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.Name, err)
		}
		ms := importer.Movements(lines, bankAccount, importer.NextID(movements))
		movements = append(movements, ms...)
		imported += len(ms)
		names = append(names, f.Name)
		p.log.Info("imported statement", "file", f.Name, "format", parser.Format(), "movements", len(ms))
	}

	if err := writeTable(path, tables.BankMovements.Table(movements)); err != nil {
		return err
	}
	for _, name := range names {
		if err := importer.MarkProcessed(p.root, name); err != nil {
			return err
		}
	}
	if err := p.snapshot(fmt.Sprintf("import: %d bank movements from %s", imported, strings.Join(names, ", "))); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bank movements from %d statements; run derive to post them\n", imported, len(names))
	return nil
}

func checkBankAccount(dir string, id int) error {
	accts, err := tables.BankAccounts.ReadFile(filepath.Join(dir, tables.BankAccounts.File()))
	if err != nil {
		return fmt.Errorf("loading bank accounts: %w", err)
	}
	if !slices.ContainsFunc(accts, func(a model.BankAccount) bool { return a.ID == id }) {
		return fmt.Errorf("bank account %d not found in %s", id, tables.BankAccounts.File())
	}
	return nil
}

func writeTable(path string, t tables.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := tables.WriteCSV(f, t); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
