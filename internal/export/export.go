// Package export writes dataset tables to disk in one or more formats.
package export

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/synthbooks/internal/tables"
)

// File describes one written table.
type File struct {
	Table  string
	Format string
	Name   string // file name relative to the output dir
	Rows   int
}

// Exporter writes tables into dir.
type Exporter interface {
	Format() string
	Export(ctx context.Context, dir string, ts []tables.Table) ([]File, error)
}

// Registry holds exporters by format name.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter. Panics on duplicate format.
func (r *Registry) Register(e Exporter) {
	key := strings.ToLower(e.Format())
	if _, ok := r.exporters[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.exporters[key] = e
}

// Get returns the exporter for format, or nil.
func (r *Registry) Get(format string) Exporter {
	return r.exporters[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.exporters))
	for k := range r.exporters {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry returns a registry with all built-in exporters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVExporter{})
	r.Register(&XLSXExporter{})
	return r
}

// Run exports ts in every requested format concurrently. Files come back
// grouped by format, in the order formats were given.
func (r *Registry) Run(ctx context.Context, dir string, formats []string, ts []tables.Table) ([]File, error) {
	exporters := make([]Exporter, len(formats))
	for i, f := range formats {
		e := r.Get(f)
		if e == nil {
			return nil, fmt.Errorf("unknown export format %q (have %s)", f, strings.Join(r.Formats(), ", "))
		}
		exporters[i] = e
	}

	results := make([][]File, len(exporters))
	g, ctx := errgroup.WithContext(ctx)
	for i, e := range exporters {
		g.Go(func() error {
			files, err := e.Export(ctx, dir, ts)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", e.Format(), err)
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []File
	for _, files := range results {
		all = append(all, files...)
	}
	return all, nil
}
