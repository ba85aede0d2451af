package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [entry %d]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id string) bool
}

// ValidateLegs enforces the journal invariants:
//
//  1. every entry group balances (sum of debits == sum of credits)
//  2. every leg has exactly one of debit or credit
//  3. every leg references a known account
//  4. every leg has a date
//  5. entry ids are positive
//  6. amounts have at most 2 decimal places
//  7. amounts are non-negative
func ValidateLegs(legs []model.Leg, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	// Group legs by entry.
	totals := make(map[int][2]decimal.Decimal)
	var groupOrder []int
	for _, leg := range legs {
		t, seen := totals[leg.EntryID]
		if !seen {
			groupOrder = append(groupOrder, leg.EntryID)
		}
		totals[leg.EntryID] = [2]decimal.Decimal{t[0].Add(leg.Debit), t[1].Add(leg.Credit)}
	}

	for _, g := range groupOrder {
		t := totals[g]
		if !t[0].Equal(t[1]) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", t[0].StringFixed(2), t[1].StringFixed(2)),
			})
		}
	}

	for _, leg := range legs {
		hasDebit := !leg.Debit.IsZero()
		hasCredit := !leg.Credit.IsZero()
		if hasDebit == hasCredit {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     leg.EntryID,
				Description: "leg must have exactly one of debit or credit",
			})
		}

		if !accounts.Exists(leg.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("unknown account %q", leg.AccountID),
			})
		}

		if leg.Date.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     leg.EntryID,
				Description: "missing date",
			})
		}

		if leg.EntryID < 1 {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     leg.EntryID,
				Description: "entry id must be positive",
			})
		}

		for _, side := range []struct {
			name   string
			amount decimal.Decimal
		}{{"debit", leg.Debit}, {"credit", leg.Credit}} {
			if !side.amount.Equal(side.amount.Round(2)) {
				errs = append(errs, ValidationError{
					Invariant:   6,
					EntryID:     leg.EntryID,
					Description: fmt.Sprintf("%s %s has more than 2 decimal places", side.name, side.amount),
				})
			}
			if side.amount.IsNegative() {
				errs = append(errs, ValidationError{
					Invariant:   7,
					EntryID:     leg.EntryID,
					Description: fmt.Sprintf("%s %s is negative", side.name, side.amount),
				})
			}
		}
	}

	return errs
}
