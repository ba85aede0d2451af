package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "account_id,period_end,opening_balance,debits,credits,closing_balance"

const (
	numFields    = 6
	dateFormat   = "2006-01-02"
	colAcctID    = 0
	colPeriodEnd = 1
	colOpening   = 2
	colDebits    = 3
	colCredits   = 4
	colClosing   = 5
)

// MarshalEntry converts a LedgerEntry to a CSV row.
func MarshalEntry(e model.LedgerEntry) []string {
	row := make([]string, numFields)
	row[colAcctID] = e.AccountID
	row[colPeriodEnd] = e.PeriodEnd.Format(dateFormat)
	row[colOpening] = e.Opening.StringFixed(2)
	row[colDebits] = e.Debits.StringFixed(2)
	row[colCredits] = e.Credits.StringFixed(2)
	row[colClosing] = e.Closing.StringFixed(2)
	return row
}

// UnmarshalEntry converts a CSV row to a LedgerEntry.
func UnmarshalEntry(record []string) (model.LedgerEntry, error) {
	if len(record) != numFields {
		return model.LedgerEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colAcctID] == "" {
		return model.LedgerEntry{}, fmt.Errorf("empty account_id")
	}

	end, err := time.Parse(dateFormat, record[colPeriodEnd])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing period_end %q: %w", record[colPeriodEnd], err)
	}

	var amounts [4]decimal.Decimal
	for i, col := range []int{colOpening, colDebits, colCredits, colClosing} {
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return model.LedgerEntry{}, fmt.Errorf("parsing %s %q: %w", strings.Split(Header, ",")[col], record[col], err)
		}
		amounts[i] = d
	}

	return model.LedgerEntry{
		AccountID: record[colAcctID],
		PeriodEnd: end,
		Opening:   amounts[0],
		Debits:    amounts[1],
		Credits:   amounts[2],
		Closing:   amounts[3],
	}, nil
}
