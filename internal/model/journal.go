package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leg is a single row in journal.csv (one side of a double-entry).
type Leg struct {
	EntryID     int             // entry-group id shared by every leg of one transaction
	Date        time.Time       //nolint:revive // plain field name is clearest
	AccountID   string          //nolint:revive
	Description string          //nolint:revive
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
}

// IsDebit reports whether the leg posts to the debit side.
func (l Leg) IsDebit() bool {
	return !l.Debit.IsZero()
}

// Net returns debit minus credit.
func (l Leg) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
