package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// Violation describes a ledger row that breaks the balance chain.
type Violation struct {
	AccountID   string
	PeriodEnd   time.Time
	Description string
}

func (v Violation) Error() string {
	return fmt.Sprintf("account %s [%s]: %s", v.AccountID, v.PeriodEnd.Format(dateFormat), v.Description)
}

// Verify checks ordering by (account, period end), a zero opening balance for
// each account's first period, carry-forward of closing into the next
// opening, and closing = opening + signed change under the account's type.
func Verify(chart *accounts.Service, entries []model.LedgerEntry) []Violation {
	var vs []Violation
	add := func(e model.LedgerEntry, format string, args ...any) {
		vs = append(vs, Violation{AccountID: e.AccountID, PeriodEnd: e.PeriodEnd, Description: fmt.Sprintf(format, args...)})
	}

	for i, e := range entries {
		acct, ok := chart.Get(e.AccountID)
		if !ok {
			add(e, "unknown account")
			continue
		}

		if e.Debits.IsNegative() || e.Credits.IsNegative() {
			add(e, "negative period totals")
		}

		want := e.Opening.Add(model.SignedChange(acct.Type, e.Debits, e.Credits))
		if !want.Equal(e.Closing) {
			add(e, "closing %s != opening %s + change %s", e.Closing.StringFixed(2), e.Opening.StringFixed(2), signed(acct.Type, e))
		}

		if i == 0 || entries[i-1].AccountID != e.AccountID {
			if i > 0 && entries[i-1].AccountID > e.AccountID {
				add(e, "out of order after account %s", entries[i-1].AccountID)
			}
			if !e.Opening.IsZero() {
				add(e, "first period opens at %s, want 0", e.Opening.StringFixed(2))
			}
			continue
		}

		prev := entries[i-1]
		if !prev.PeriodEnd.Before(e.PeriodEnd) {
			add(e, "period does not follow %s", prev.PeriodEnd.Format(dateFormat))
		}
		if !prev.Closing.Equal(e.Opening) {
			add(e, "opening %s != previous closing %s", e.Opening.StringFixed(2), prev.Closing.StringFixed(2))
		}
	}
	return vs
}

func signed(t model.AccountType, e model.LedgerEntry) string {
	return model.SignedChange(t, e.Debits, e.Credits).StringFixed(2)
}

// Balance is the trial balance at one period end.
type Balance struct {
	PeriodEnd    time.Time
	ByType       map[model.AccountType]decimal.Decimal
	DebitNormal  decimal.Decimal // sum of Asset and Expense closings
	CreditNormal decimal.Decimal // sum of Liability, Equity and Income closings
}

// Balanced reports whether both sides agree.
func (b Balance) Balanced() bool {
	return b.DebitNormal.Equal(b.CreditNormal)
}

// AccountTypes lists the account types in trial balance order.
var AccountTypes = []model.AccountType{
	model.AccountTypeAsset,
	model.AccountTypeLiability,
	model.AccountTypeEquity,
	model.AccountTypeIncome,
	model.AccountTypeExpense,
}

// TrialBalance totals closing balances at periodEnd per account type. A zero
// periodEnd means the latest period in entries.
func TrialBalance(chart *accounts.Service, entries []model.LedgerEntry, periodEnd time.Time) (Balance, error) {
	if periodEnd.IsZero() {
		for _, e := range entries {
			if e.PeriodEnd.After(periodEnd) {
				periodEnd = e.PeriodEnd
			}
		}
	}

	closing := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if !e.PeriodEnd.Equal(periodEnd) {
			continue
		}
		if !chart.Exists(e.AccountID) {
			return Balance{}, fmt.Errorf("trial balance: unknown account %q", e.AccountID)
		}
		closing[e.AccountID] = closing[e.AccountID].Add(e.Closing)
	}
	if len(closing) == 0 {
		return Balance{}, fmt.Errorf("trial balance: no ledger rows for %s", periodEnd.Format(dateFormat))
	}

	b := Balance{PeriodEnd: periodEnd, ByType: make(map[model.AccountType]decimal.Decimal, len(AccountTypes))}
	for _, t := range AccountTypes {
		var total decimal.Decimal
		for _, acct := range chart.ByType(t) {
			total = total.Add(closing[acct.ID])
		}
		b.ByType[t] = total
		if t.DebitNormal() {
			b.DebitNormal = b.DebitNormal.Add(total)
		} else {
			b.CreditNormal = b.CreditNormal.Add(total)
		}
	}
	return b, nil
}
