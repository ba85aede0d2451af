package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/synthbooks/internal/tables"
)

// CSVExporter writes one <table>.csv per table.
type CSVExporter struct{}

func (e *CSVExporter) Format() string { return "csv" }

// Export writes the tables concurrently.
func (e *CSVExporter) Export(ctx context.Context, dir string, ts []tables.Table) ([]File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	files := make([]File, len(ts))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range ts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(filepath.Join(dir, t.File()), t); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
			files[i] = File{Table: t.Name, Format: e.Format(), Name: t.File(), Rows: len(t.Rows)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func writeFile(path string, t tables.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tables.WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
