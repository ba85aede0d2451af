// Package ledger rolls journal legs up into month-end balances per account.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// ErrInvalidJournal is returned when a journal leg cannot be aggregated.
var ErrInvalidJournal = errors.New("invalid journal")

// Period is one reporting interval, both ends inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// Periods splits the horizon into calendar months. The first period starts
// at the horizon start; each later one starts the day after the previous
// end. The last period is cut at the horizon end when that is not a month end.
func Periods(h model.Horizon) []Period {
	var periods []Period
	start := h.Start
	for !start.After(h.End) {
		// Day 0 of next month is the last day of this one.
		end := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		if end.After(h.End) {
			end = h.End
		}
		periods = append(periods, Period{Start: start, End: end})
		start = end.AddDate(0, 0, 1)
	}
	return periods
}

// Aggregate produces one ledger entry per account per period, sorted by
// (account id, period end). Each account's chain runs in period order,
// carrying the closing balance into the next opening; chains for different
// accounts run concurrently. Legs dated outside the horizon are not counted.
func Aggregate(ctx context.Context, chart *accounts.Service, legs []model.Leg, h model.Horizon) ([]model.LedgerEntry, error) {
	byAccount := make(map[string][]model.Leg)
	for i, leg := range legs {
		if leg.Date.IsZero() {
			return nil, fmt.Errorf("%w: leg %d (entry %d): missing date", ErrInvalidJournal, i+1, leg.EntryID)
		}
		if !chart.Exists(leg.AccountID) {
			return nil, fmt.Errorf("%w: leg %d (entry %d): unknown account %q", ErrInvalidJournal, i+1, leg.EntryID, leg.AccountID)
		}
		byAccount[leg.AccountID] = append(byAccount[leg.AccountID], leg)
	}

	accts := slices.Clone(chart.All())
	sort.Slice(accts, func(i, j int) bool { return accts[i].ID < accts[j].ID })

	periods := Periods(h)
	chains := make([][]model.LedgerEntry, len(accts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, acct := range accts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chains[i] = chain(acct, byAccount[acct.ID], periods)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]model.LedgerEntry, 0, len(accts)*len(periods))
	for _, c := range chains {
		entries = append(entries, c...)
	}
	return entries, nil
}

// chain computes one account's balances across periods. legs may be in any order.
func chain(acct model.Account, legs []model.Leg, periods []Period) []model.LedgerEntry {
	sorted := make([]model.Leg, len(legs))
	copy(sorted, legs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := make([]model.LedgerEntry, 0, len(periods))
	balance := decimal.Zero
	next := 0
	for _, p := range periods {
		var debits, credits decimal.Decimal
		for next < len(sorted) && !model.Day(sorted[next].Date).After(p.End) {
			if !model.Day(sorted[next].Date).Before(p.Start) {
				debits = debits.Add(sorted[next].Debit)
				credits = credits.Add(sorted[next].Credit)
			}
			next++
		}
		closing := balance.Add(model.SignedChange(acct.Type, debits, credits))
		out = append(out, model.LedgerEntry{
			AccountID: acct.ID,
			PeriodEnd: p.End,
			Opening:   balance,
			Debits:    debits,
			Credits:   credits,
			Closing:   closing,
		})
		balance = closing
	}
	return out
}
