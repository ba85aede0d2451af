package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// ChartFile is the chart of accounts path relative to a project root.
var ChartFile = filepath.Join("accounts", "chart-of-accounts.csv")

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
	byName   map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	byName := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
		byName[a.Name] = a
	}
	return &Service{accounts: accounts, byID: byID, byName: byName}
}

// Load reads accounts/chart-of-accounts.csv from a project root and returns a
// validated Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, ChartFile))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	svc := NewService(accts)
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Validate checks that account ids and names are unique and types are known.
func (s *Service) Validate() error {
	if len(s.accounts) == 0 {
		return fmt.Errorf("chart of accounts is empty")
	}
	if len(s.byID) != len(s.accounts) {
		return fmt.Errorf("chart of accounts: %w", duplicate(s.accounts, func(a model.Account) string { return a.ID }, "account id"))
	}
	if len(s.byName) != len(s.accounts) {
		return fmt.Errorf("chart of accounts: %w", duplicate(s.accounts, func(a model.Account) string { return a.Name }, "account name"))
	}
	for _, a := range s.accounts {
		if !a.Type.Valid() {
			return fmt.Errorf("chart of accounts: account %s has unknown type %q", a.ID, a.Type)
		}
	}
	return nil
}

func duplicate(accounts []model.Account, key func(model.Account) string, what string) error {
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		k := key(a)
		if seen[k] {
			return fmt.Errorf("duplicate %s %q", what, k)
		}
		seen[k] = true
	}
	return nil
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByName returns the account with exactly this display name (case-sensitive).
func (s *Service) ByName(name string) (model.Account, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, ChartFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
