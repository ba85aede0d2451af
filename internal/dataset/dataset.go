// Package dataset ties the generators, the journal engine and the ledger
// engine into one pipeline and loads tables back from disk.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/config"
	"github.com/cleared-dev/synthbooks/internal/generate"
	"github.com/cleared-dev/synthbooks/internal/journal"
	"github.com/cleared-dev/synthbooks/internal/ledger"
	"github.com/cleared-dev/synthbooks/internal/manifest"
	"github.com/cleared-dev/synthbooks/internal/model"
	"github.com/cleared-dev/synthbooks/internal/tables"
)

// Dataset is every table of one synthetic set of books.
type Dataset struct {
	// ID is empty for datasets loaded from disk.
	ID      string
	Horizon model.Horizon
	Chart   *accounts.Service

	Clients         []model.Client
	Products        []model.Product
	Assets          []model.Asset
	AssetValuations []model.AssetValuation
	BankAccounts    []model.BankAccount
	Sales           []model.Sale
	Purchases       []model.Purchase
	Movements       []model.BankMovement

	Journal []model.Leg
	Ledger  []model.LedgerEntry
}

// Build generates every reference and transaction table from cfg, then
// derives the journal and the ledger against chart.
func Build(ctx context.Context, cfg *config.Config, chart *accounts.Service) (*Dataset, error) {
	h, err := cfg.Horizon()
	if err != nil {
		return nil, err
	}
	n := cfg.GenerateCounts()
	d := &Dataset{
		ID:      manifest.GenerationID(cfg.Dataset.Seed, h, n.Clients, n.Products, n.Assets, n.BankAccounts, n.Sales, n.Purchases, n.ExtraMovements),
		Horizon: h,
		Chart:   chart,
	}
	d.generate(generate.New(cfg.Dataset.Seed, h), n)

	if err := d.Derive(ctx, cfg.Accounts.Roles, cfg.JournalOptions()); err != nil {
		return nil, err
	}
	return d, nil
}

// generate draws the tables in a fixed order so one seed always yields the
// same dataset.
func (d *Dataset) generate(g *generate.Generator, n generate.Counts) {
	d.Clients = g.Clients(n.Clients)
	d.Products = g.Products(n.Products)
	d.Assets = g.Assets(n.Assets)
	d.AssetValuations = g.AssetValuations(d.Assets)
	d.BankAccounts = g.BankAccounts(n.BankAccounts)
	d.Sales = g.Sales(d.Clients, d.Products, n.Sales)
	d.Purchases = g.Purchases(d.Products, n.Purchases)
	d.Movements = g.BankMovements(d.BankAccounts, d.Sales, d.Purchases, n.ExtraMovements)
}

// Input returns the tables the journal engine reads.
func (d *Dataset) Input() journal.Input {
	return journal.Input{
		Products:     d.Products,
		Clients:      d.Clients,
		BankAccounts: d.BankAccounts,
		Sales:        d.Sales,
		Purchases:    d.Purchases,
		Movements:    d.Movements,
	}
}

// Derive replaces the journal and ledger with ones computed from the
// transaction tables.
func (d *Dataset) Derive(ctx context.Context, roleOverrides map[string]string, opts journal.Options) error {
	eng, err := journal.NewEngine(d.Chart, roleOverrides, opts)
	if err != nil {
		return err
	}
	legs, err := eng.Derive(d.Input())
	if err != nil {
		return fmt.Errorf("deriving journal: %w", err)
	}
	entries, err := ledger.Aggregate(ctx, d.Chart, legs, d.Horizon)
	if err != nil {
		return fmt.Errorf("aggregating ledger: %w", err)
	}
	d.Journal = legs
	d.Ledger = entries
	return nil
}

// Tables renders every table in export order.
func (d *Dataset) Tables() []tables.Table {
	return []tables.Table{
		tables.Chart.Table(d.Chart.All()),
		tables.Clients.Table(d.Clients),
		tables.Products.Table(d.Products),
		tables.Assets.Table(d.Assets),
		tables.AssetValuations.Table(d.AssetValuations),
		tables.BankAccounts.Table(d.BankAccounts),
		tables.Sales.Table(d.Sales),
		tables.Purchases.Table(d.Purchases),
		tables.BankMovements.Table(d.Movements),
		tables.Journal.Table(d.Journal),
		tables.Ledger.Table(d.Ledger),
	}
}

// InputFiles lists the CSV files LoadInputs reads, in a fixed order.
func InputFiles() []string {
	return []string{
		tables.Chart.File(),
		tables.Clients.File(),
		tables.Products.File(),
		tables.Assets.File(),
		tables.AssetValuations.File(),
		tables.BankAccounts.File(),
		tables.Sales.File(),
		tables.Purchases.File(),
		tables.BankMovements.File(),
	}
}

// LoadInputs reads the chart, reference and transaction tables from CSV
// files in dir. Assets and asset valuations are optional since the journal
// does not post them.
func LoadInputs(dir string, h model.Horizon) (*Dataset, error) {
	d := &Dataset{Horizon: h}

	chart, err := read(dir, tables.Chart, true)
	if err != nil {
		return nil, err
	}
	d.Chart = accounts.NewService(chart)
	if err := d.Chart.Validate(); err != nil {
		return nil, err
	}

	if d.Clients, err = read(dir, tables.Clients, true); err != nil {
		return nil, err
	}
	if d.Products, err = read(dir, tables.Products, true); err != nil {
		return nil, err
	}
	if d.Assets, err = read(dir, tables.Assets, false); err != nil {
		return nil, err
	}
	if d.AssetValuations, err = read(dir, tables.AssetValuations, false); err != nil {
		return nil, err
	}
	if d.BankAccounts, err = read(dir, tables.BankAccounts, true); err != nil {
		return nil, err
	}
	if d.Sales, err = read(dir, tables.Sales, true); err != nil {
		return nil, err
	}
	if d.Purchases, err = read(dir, tables.Purchases, true); err != nil {
		return nil, err
	}
	if d.Movements, err = read(dir, tables.BankMovements, true); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadBooks reads the chart, journal and ledger tables from dir.
func LoadBooks(dir string) (*Dataset, error) {
	chart, err := read(dir, tables.Chart, true)
	if err != nil {
		return nil, err
	}
	d := &Dataset{Chart: accounts.NewService(chart)}
	if err := d.Chart.Validate(); err != nil {
		return nil, err
	}
	if d.Journal, err = read(dir, tables.Journal, true); err != nil {
		return nil, err
	}
	if d.Ledger, err = read(dir, tables.Ledger, true); err != nil {
		return nil, err
	}
	return d, nil
}

func read[T any](dir string, c tables.Codec[T], required bool) ([]T, error) {
	rows, err := c.ReadFile(filepath.Join(dir, c.File()))
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s: %w", c.Name, err)
	}
	return rows, nil
}
