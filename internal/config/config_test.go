package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Dataset")
	cfg.Accounts.Roles = map[string]string{"bank": "Cash"}
	cfg.Output.Formats = []string{"csv", "xlsx"}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Dataset, got.Dataset)
	assert.Equal(t, cfg.Counts, got.Counts)
	assert.InDelta(t, cfg.Posting.TaxRate, got.Posting.TaxRate, 0.0001)
	assert.InDelta(t, cfg.Posting.COGSCostFactor, got.Posting.COGSCostFactor, 0.0001)
	assert.Equal(t, map[string]string{"bank": "Cash"}, got.Accounts.Roles)
	assert.Equal(t, []string{"csv", "xlsx"}, got.Output.Formats)
	assert.Equal(t, cfg.Git, got.Git)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Dataset")

	assert.Equal(t, "My Dataset", cfg.Dataset.Name)
	assert.Equal(t, int64(42), cfg.Dataset.Seed)
	assert.Equal(t, 1000, cfg.Counts.Sales)
	assert.Equal(t, 200, cfg.Counts.ExtraMovements)
	assert.InDelta(t, 0.16, cfg.Posting.TaxRate, 0.0001)
	assert.Equal(t, "data", cfg.Output.Dir)
	assert.True(t, cfg.Git.AutoCommit)
	assert.NoError(t, cfg.Validate())

	h, err := cfg.Horizon()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), h.Start)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), h.End)

	opts := cfg.JournalOptions()
	assert.Equal(t, "0.16", opts.TaxRate.String())
	assert.Equal(t, "0.25", opts.COGSCostFactor.String())
	assert.Equal(t, "100", opts.PurchaseMinimum.String())
	assert.Equal(t, cfg.Counts.Clients, cfg.GenerateCounts().Clients)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("dataset:\n  name: Small\n  seed: 7\n  start_date: \"2021-01-01\"\n  end_date: \"2021-06-30\"\ncounts:\n  sales: 20\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Dataset.Seed)
	assert.Equal(t, 20, cfg.Counts.Sales)
	// counts.clients was not in the file.
	assert.Equal(t, 100, cfg.Counts.Clients)
	assert.InDelta(t, 0.15, cfg.Posting.SellingExpenseRate, 0.0001)
	assert.NoError(t, cfg.Validate())
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Dataset")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Dataset")
	assert.Contains(t, contents, "start_date: \"2020-01-01\"")
	assert.Contains(t, contents, "tax_rate: 0.16")
	assert.Contains(t, contents, "auto_commit: true")
	assert.NotContains(t, contents, "roles")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing name", func(c *Config) { c.Dataset.Name = "" }, "Config.Dataset.Name"},
		{"bad date", func(c *Config) { c.Dataset.StartDate = "01/01/2020" }, "Config.Dataset.StartDate"},
		{"end before start", func(c *Config) { c.Dataset.EndDate = "2019-12-31" }, "before start"},
		{"start mid-month", func(c *Config) { c.Dataset.StartDate = "2020-01-15" }, "start_date 2020-01-15 must be the first day of a month"},
		{"no clients", func(c *Config) { c.Counts.Clients = 0 }, "Config.Counts.Clients"},
		{"rate too high", func(c *Config) { c.Posting.TaxRate = 1.5 }, "Config.Posting.TaxRate"},
		{"unknown format", func(c *Config) { c.Output.Formats = []string{"parquet"} }, "Config.Output.Formats[0]"},
		{"no formats", func(c *Config) { c.Output.Formats = nil }, "Config.Output.Formats"},
		{"repeated format", func(c *Config) { c.Output.Formats = []string{"csv", "csv"} }, `Config.Output.Formats failed "unique"`},
		{"bad log format", func(c *Config) { c.Output.LogFormat = "xml" }, "Config.Output.LogFormat"},
		{"bad email", func(c *Config) { c.Git.AuthorEmail = "nobody" }, "Config.Git.AuthorEmail"},
		{"unknown role", func(c *Config) { c.Accounts.Roles = map[string]string{"petty_cash": "Cash"} }, `unknown account role "petty_cash"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("X")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SYNTHBOOKS_SEED", "0")
	t.Setenv("SYNTHBOOKS_OUTPUT_DIR", "out")
	t.Setenv("SYNTHBOOKS_LOG_FORMAT", "json")
	t.Setenv("SYNTHBOOKS_END_DATE", "2020-12-31")

	cfg := Default("X")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, int64(0), cfg.Dataset.Seed)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "json", cfg.Output.LogFormat)
	assert.Equal(t, "2020-01-01", cfg.Dataset.StartDate)
	assert.Equal(t, "2020-12-31", cfg.Dataset.EndDate)
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Default("X")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, Default("X"), cfg)
}

func TestApplyEnv_BadSeed(t *testing.T) {
	t.Setenv("SYNTHBOOKS_SEED", "forty-two")
	cfg := Default("X")
	assert.Error(t, cfg.ApplyEnv())
}
