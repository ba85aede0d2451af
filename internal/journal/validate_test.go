package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids map[string]bool
}

func (m *mockAccounts) Exists(id string) bool {
	return m.ids[id]
}

func newMockAccounts(ids ...string) *mockAccounts {
	m := &mockAccounts{ids: make(map[string]bool)}
	for _, id := range ids {
		m.ids[id] = true
	}
	return m
}

func balancedEntry(entryID int, debitAcct, creditAcct string, amount string) []model.Leg {
	d := decimal.RequireFromString(amount)
	date := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
	return []model.Leg{
		{EntryID: entryID, Date: date, AccountID: debitAcct, Debit: d},
		{EntryID: entryID, Date: date, AccountID: creditAcct, Credit: d},
	}
}

var defaultAccounts = newMockAccounts("1002", "1004", "2001", "4001", "5005")

func invariants(errs []ValidationError) []int {
	var out []int
	for _, e := range errs {
		out = append(out, e.Invariant)
	}
	return out
}

func TestValidate_Balanced(t *testing.T) {
	legs := balancedEntry(1, "5005", "1002", "100.00")
	assert.Empty(t, ValidateLegs(legs, defaultAccounts))
}

func TestValidate_Unbalanced(t *testing.T) {
	legs := balancedEntry(1, "5005", "1002", "100.00")
	legs[1].Credit = decimal.RequireFromString("99.99")

	errs := ValidateLegs(legs, defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Invariant)
	assert.Equal(t, 1, errs[0].EntryID)
	assert.Contains(t, errs[0].Error(), "debits (100.00) != credits (99.99)")
}

func TestValidate_BothSides(t *testing.T) {
	legs := balancedEntry(1, "5005", "1002", "100.00")
	legs[0].Credit = decimal.NewFromInt(5)
	legs[1].Debit = decimal.NewFromInt(5)

	assert.Contains(t, invariants(ValidateLegs(legs, defaultAccounts)), 2)
}

func TestValidate_NeitherSide(t *testing.T) {
	legs := balancedEntry(1, "5005", "1002", "0")
	assert.Equal(t, []int{2, 2}, invariants(ValidateLegs(legs, defaultAccounts)))
}

func TestValidate_UnknownAccount(t *testing.T) {
	legs := balancedEntry(1, "9999", "1002", "10.00")
	errs := ValidateLegs(legs, defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Invariant)
	assert.Contains(t, errs[0].Description, `"9999"`)
}

func TestValidate_MissingDate(t *testing.T) {
	legs := balancedEntry(1, "5005", "1002", "10.00")
	legs[0].Date = time.Time{}
	assert.Equal(t, []int{4}, invariants(ValidateLegs(legs, defaultAccounts)))
}

func TestValidate_NonPositiveEntryID(t *testing.T) {
	legs := balancedEntry(0, "5005", "1002", "10.00")
	assert.Equal(t, []int{5, 5}, invariants(ValidateLegs(legs, defaultAccounts)))
}

func TestValidate_TooManyDecimals(t *testing.T) {
	legs := balancedEntry(1, "5005", "1002", "10.005")
	assert.Equal(t, []int{6, 6}, invariants(ValidateLegs(legs, defaultAccounts)))
}

func TestValidate_Negative(t *testing.T) {
	date := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
	legs := []model.Leg{
		{EntryID: 1, Date: date, AccountID: "5005", Debit: decimal.NewFromInt(-10)},
		{EntryID: 1, Date: date, AccountID: "1002", Credit: decimal.NewFromInt(-10)},
	}
	assert.Equal(t, []int{7, 7}, invariants(ValidateLegs(legs, defaultAccounts)))
}

func TestValidate_MultipleGroups(t *testing.T) {
	legs := append(balancedEntry(1, "5005", "1002", "10.00"), balancedEntry(2, "1004", "4001", "25.50")...)
	legs[3].Credit = decimal.NewFromInt(25)

	errs := ValidateLegs(legs, defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].EntryID)
}
