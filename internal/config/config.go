package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/generate"
	"github.com/cleared-dev/synthbooks/internal/journal"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// FileName is the project configuration file at the project root.
const FileName = "synthbooks.yaml"

// EnvPrefix prefixes every environment override, e.g. SYNTHBOOKS_SEED.
const EnvPrefix = "SYNTHBOOKS"

const dateFormat = "2006-01-02"

// Config represents the top-level synthbooks.yaml configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Counts   CountsConfig   `yaml:"counts"`
	Posting  PostingConfig  `yaml:"posting"`
	Accounts AccountsConfig `yaml:"accounts,omitempty"`
	Output   OutputConfig   `yaml:"output"`
	Git      GitConfig      `yaml:"git"`
}

// DatasetConfig identifies the dataset and fixes its randomness and dates.
type DatasetConfig struct {
	Name      string `yaml:"name" validate:"required"`
	Seed      int64  `yaml:"seed"`
	StartDate string `yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `yaml:"end_date" validate:"required,datetime=2006-01-02"`
}

// CountsConfig sets table sizes.
type CountsConfig struct {
	Clients        int `yaml:"clients" validate:"gte=1"`
	Products       int `yaml:"products" validate:"gte=1"`
	Assets         int `yaml:"assets" validate:"gte=0"`
	BankAccounts   int `yaml:"bank_accounts" validate:"gte=1"`
	Sales          int `yaml:"sales" validate:"gte=0"`
	Purchases      int `yaml:"purchases" validate:"gte=0"`
	ExtraMovements int `yaml:"extra_movements" validate:"gte=0"`
}

// PostingConfig holds the journal posting constants.
type PostingConfig struct {
	TaxRate            float64 `yaml:"tax_rate" validate:"gte=0,lt=1"`
	COGSCostFactor     float64 `yaml:"cogs_cost_factor" validate:"gt=0,lte=1"`
	COGSMinimum        float64 `yaml:"cogs_minimum" validate:"gte=0"`
	PurchaseMinimum    float64 `yaml:"purchase_minimum" validate:"gte=0"`
	AdminExpenseRate   float64 `yaml:"admin_expense_rate" validate:"gte=0,lt=1"`
	SellingExpenseRate float64 `yaml:"selling_expense_rate" validate:"gte=0,lt=1"`
}

// AccountsConfig overrides the account names roles resolve to, keyed by
// role, e.g. bank: "Cash".
type AccountsConfig struct {
	Roles map[string]string `yaml:"roles,omitempty"`
}

// OutputConfig controls where and how tables are written.
type OutputConfig struct {
	Dir       string   `yaml:"dir" validate:"required"`
	Formats   []string `yaml:"formats" validate:"min=1,unique,dive,oneof=csv xlsx"`
	LogFormat string   `yaml:"log_format" validate:"oneof=text json"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email" validate:"omitempty,email"`
}

// Load reads a synthbooks.yaml file from disk. Sections missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(name string) *Config {
	counts := generate.DefaultCounts()
	return &Config{
		Dataset: DatasetConfig{
			Name:      name,
			Seed:      42,
			StartDate: "2020-01-01",
			EndDate:   "2023-12-31",
		},
		Counts: CountsConfig{
			Clients:        counts.Clients,
			Products:       counts.Products,
			Assets:         counts.Assets,
			BankAccounts:   counts.BankAccounts,
			Sales:          counts.Sales,
			Purchases:      counts.Purchases,
			ExtraMovements: counts.ExtraMovements,
		},
		Posting: PostingConfig{
			TaxRate:            0.16,
			COGSCostFactor:     0.25,
			COGSMinimum:        10,
			PurchaseMinimum:    100,
			AdminExpenseRate:   0.10,
			SellingExpenseRate: 0.15,
		},
		Output: OutputConfig{
			Dir:       "data",
			Formats:   []string{"csv"},
			LogFormat: "text",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Synthbooks",
			AuthorEmail: "generator@synthbooks.dev",
		},
	}
}

// env lists the overrides read from SYNTHBOOKS_* variables. Unset
// variables leave the file's values alone.
type env struct {
	Seed      *int64 `envconfig:"SEED"`
	OutputDir string `envconfig:"OUTPUT_DIR"`
	LogFormat string `envconfig:"LOG_FORMAT"`
	StartDate string `envconfig:"START_DATE"`
	EndDate   string `envconfig:"END_DATE"`
}

// ApplyEnv overlays environment overrides onto cfg.
func (c *Config) ApplyEnv() error {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if e.Seed != nil {
		c.Dataset.Seed = *e.Seed
	}
	if e.OutputDir != "" {
		c.Output.Dir = e.OutputDir
	}
	if e.LogFormat != "" {
		c.Output.LogFormat = e.LogFormat
	}
	if e.StartDate != "" {
		c.Dataset.StartDate = e.StartDate
	}
	if e.EndDate != "" {
		c.Dataset.EndDate = e.EndDate
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints, then the date order and role keys.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Horizon(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for key := range c.Accounts.Roles {
		if _, err := accounts.ParseRole(key); err != nil {
			return fmt.Errorf("invalid config: accounts.roles: %w", err)
		}
	}
	return nil
}

// Horizon parses the dataset dates. The start must be the first day of a
// month: monthly expense groups are dated the 1st, and the ledger would drop
// any dated before the horizon.
func (c *Config) Horizon() (model.Horizon, error) {
	start, err := time.Parse(dateFormat, c.Dataset.StartDate)
	if err != nil {
		return model.Horizon{}, fmt.Errorf("parsing start_date: %w", err)
	}
	if start.Day() != 1 {
		return model.Horizon{}, fmt.Errorf("start_date %s must be the first day of a month", c.Dataset.StartDate)
	}
	end, err := time.Parse(dateFormat, c.Dataset.EndDate)
	if err != nil {
		return model.Horizon{}, fmt.Errorf("parsing end_date: %w", err)
	}
	return model.NewHorizon(start, end)
}

// GenerateCounts converts the counts section.
func (c *Config) GenerateCounts() generate.Counts {
	return generate.Counts{
		Clients:        c.Counts.Clients,
		Products:       c.Counts.Products,
		Assets:         c.Counts.Assets,
		BankAccounts:   c.Counts.BankAccounts,
		Sales:          c.Counts.Sales,
		Purchases:      c.Counts.Purchases,
		ExtraMovements: c.Counts.ExtraMovements,
	}
}

// JournalOptions converts the posting section. Bank rules keep their defaults.
func (c *Config) JournalOptions() journal.Options {
	p := c.Posting
	return journal.Options{
		TaxRate:            decimal.NewFromFloat(p.TaxRate),
		COGSCostFactor:     decimal.NewFromFloat(p.COGSCostFactor),
		COGSMinimum:        decimal.NewFromFloat(p.COGSMinimum),
		PurchaseMinimum:    decimal.NewFromFloat(p.PurchaseMinimum),
		AdminExpenseRate:   decimal.NewFromFloat(p.AdminExpenseRate),
		SellingExpenseRate: decimal.NewFromFloat(p.SellingExpenseRate),
	}
}
