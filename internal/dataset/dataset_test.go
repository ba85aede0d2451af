package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/config"
	"github.com/cleared-dev/synthbooks/internal/export"
	"github.com/cleared-dev/synthbooks/internal/journal"
	"github.com/cleared-dev/synthbooks/internal/ledger"
	"github.com/cleared-dev/synthbooks/internal/model"
	"github.com/cleared-dev/synthbooks/internal/tables"
)

const fixtures = "../../testdata/inputs"

func quarter(t *testing.T) model.Horizon {
	t.Helper()
	h, err := model.NewHorizon(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return h
}

func smallConfig() *config.Config {
	cfg := config.Default("test")
	cfg.Dataset.Seed = 7
	cfg.Dataset.EndDate = "2020-12-31"
	cfg.Counts = config.CountsConfig{
		Clients:        10,
		Products:       8,
		Assets:         3,
		BankAccounts:   2,
		Sales:          60,
		Purchases:      25,
		ExtraMovements: 20,
	}
	return cfg
}

func closing(entries []model.LedgerEntry, accountID string) decimal.Decimal {
	var last decimal.Decimal
	for _, e := range entries {
		if e.AccountID == accountID {
			last = e.Closing
		}
	}
	return last
}

func TestLoadInputs_Fixtures(t *testing.T) {
	d, err := LoadInputs(fixtures, quarter(t))
	require.NoError(t, err)

	assert.Len(t, d.Chart.All(), 44)
	assert.Len(t, d.Clients, 2)
	assert.Len(t, d.Products, 2)
	assert.Len(t, d.BankAccounts, 1)
	assert.Len(t, d.Sales, 3)
	assert.Len(t, d.Purchases, 2)
	assert.Len(t, d.Movements, 3)
	assert.Empty(t, d.Assets, "assets are optional")
	assert.Empty(t, d.AssetValuations)
}

func TestLoadInputs_MissingRequired(t *testing.T) {
	_, err := LoadInputs(t.TempDir(), quarter(t))
	assert.ErrorContains(t, err, "loading chart_of_accounts")
}

func TestLoadInputs_BadRow(t *testing.T) {
	dir := t.TempDir()
	for _, name := range InputFiles() {
		data, err := os.ReadFile(filepath.Join(fixtures, name))
		if os.IsNotExist(err) {
			continue
		}
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	bad := "sale_id,date,client_id,product_id,quantity,unit_price,total\n1,2020-13-10,1,1,2,1200.00,2400.00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales.csv"), []byte(bad), 0o644))

	_, err := LoadInputs(dir, quarter(t))
	assert.ErrorContains(t, err, "loading sales")
	assert.ErrorContains(t, err, "row 2")
}

func TestDerive_Fixtures(t *testing.T) {
	d, err := LoadInputs(fixtures, quarter(t))
	require.NoError(t, err)
	require.NoError(t, d.Derive(context.Background(), nil, journal.DefaultOptions()))

	assert.Len(t, d.Journal, 29)
	groups := make(map[int]bool)
	for _, leg := range d.Journal {
		groups[leg.EntryID] = true
	}
	assert.Len(t, groups, 14)

	assert.Len(t, d.Ledger, 44*3)
	assert.Empty(t, ledger.Verify(d.Chart, d.Ledger))

	assert.Equal(t, "17400", closing(d.Ledger, "1002").String(), "bank")
	assert.Equal(t, "3150", closing(d.Ledger, "1004").String(), "receivables")
	assert.Equal(t, "5550", closing(d.Ledger, "4001").String(), "revenue")

	tb, err := ledger.TrialBalance(d.Chart, d.Ledger, time.Time{})
	require.NoError(t, err)
	assert.True(t, tb.Balanced(), "debit-normal %s != credit-normal %s", tb.DebitNormal, tb.CreditNormal)
}

func TestDerive_MissingRole(t *testing.T) {
	d, err := LoadInputs(fixtures, quarter(t))
	require.NoError(t, err)

	err = d.Derive(context.Background(), map[string]string{"bank": "Petty Cash Drawer"}, journal.DefaultOptions())
	assert.ErrorIs(t, err, accounts.ErrMissingAccount)
	assert.Empty(t, d.Journal)
}

func TestBuild_Deterministic(t *testing.T) {
	ctx := context.Background()
	chart := accounts.NewService(accounts.DefaultChart())

	a, err := Build(ctx, smallConfig(), chart)
	require.NoError(t, err)
	b, err := Build(ctx, smallConfig(), chart)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEmpty(t, a.ID)
	at, bt := a.Tables(), b.Tables()
	require.Len(t, at, 11)
	for i := range at {
		assert.Equal(t, at[i].Rows, bt[i].Rows, at[i].Name)
	}

	other := smallConfig()
	other.Dataset.Seed = 8
	c, err := Build(ctx, other, chart)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestBuild_Books(t *testing.T) {
	d, err := Build(context.Background(), smallConfig(), accounts.NewService(accounts.DefaultChart()))
	require.NoError(t, err)

	assert.Len(t, d.Sales, 60)
	assert.Len(t, d.Purchases, 25)
	assert.Len(t, d.Movements, 60+25+20)
	assert.Len(t, d.AssetValuations, 3)
	assert.Empty(t, journal.ValidateLegs(d.Journal, d.Chart))
	assert.Len(t, d.Ledger, 44*12)
	assert.Empty(t, ledger.Verify(d.Chart, d.Ledger))

	tb, err := ledger.TrialBalance(d.Chart, d.Ledger, time.Time{})
	require.NoError(t, err)
	assert.True(t, tb.Balanced())
}

func TestBuild_BadHorizon(t *testing.T) {
	cfg := smallConfig()
	cfg.Dataset.EndDate = "2019-12-31"
	_, err := Build(context.Background(), cfg, accounts.NewService(accounts.DefaultChart()))
	assert.Error(t, err)
}

func TestTables_RoundTrip(t *testing.T) {
	ctx := context.Background()
	d, err := Build(ctx, smallConfig(), accounts.NewService(accounts.DefaultChart()))
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = export.DefaultRegistry().Run(ctx, dir, []string{"csv"}, d.Tables())
	require.NoError(t, err)

	in, err := LoadInputs(dir, d.Horizon)
	require.NoError(t, err)
	assert.Len(t, in.Assets, 3)
	require.NoError(t, in.Derive(ctx, nil, journal.DefaultOptions()))
	assert.Equal(t, tables.Journal.Table(d.Journal).Rows, tables.Journal.Table(in.Journal).Rows)
	assert.Equal(t, tables.Ledger.Table(d.Ledger).Rows, tables.Ledger.Table(in.Ledger).Rows)

	books, err := LoadBooks(dir)
	require.NoError(t, err)
	assert.Len(t, books.Journal, len(d.Journal))
	assert.Len(t, books.Ledger, len(d.Ledger))
	assert.Empty(t, ledger.Verify(books.Chart, books.Ledger))
}
