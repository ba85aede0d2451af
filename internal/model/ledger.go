package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one account's balance for one reporting period.
type LedgerEntry struct {
	AccountID string
	PeriodEnd time.Time
	Opening   decimal.Decimal
	Debits    decimal.Decimal
	Credits   decimal.Decimal
	Closing   decimal.Decimal
}

// SignedChange returns the period movement under the account type's sign convention.
func SignedChange(t AccountType, debits, credits decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}
