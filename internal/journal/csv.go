package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/id"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account_id,description,debit,credit"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
)

// MarshalLeg converts a Leg to a CSV row ([]string). Amounts are always
// written with two decimals, the empty side as 0.00.
func MarshalLeg(leg model.Leg) []string {
	row := make([]string, numFields)
	row[colEntryID] = id.FormatEntryID(leg.EntryID)
	row[colDate] = leg.Date.Format(dateFormat)
	row[colAcctID] = leg.AccountID
	row[colDesc] = leg.Description
	row[colDebit] = leg.Debit.StringFixed(2)
	row[colCredit] = leg.Credit.StringFixed(2)
	return row
}

// UnmarshalLeg converts a CSV row to a Leg. Empty amount fields read as zero.
func UnmarshalLeg(record []string) (model.Leg, error) {
	if len(record) != numFields {
		return model.Leg{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	entryID, err := id.ParseEntryID(record[colEntryID])
	if err != nil {
		return model.Leg{}, err
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Leg{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	if record[colAcctID] == "" {
		return model.Leg{}, fmt.Errorf("empty account_id")
	}

	debit, err := parseAmount("debit", record[colDebit])
	if err != nil {
		return model.Leg{}, err
	}
	credit, err := parseAmount("credit", record[colCredit])
	if err != nil {
		return model.Leg{}, err
	}

	return model.Leg{
		EntryID:     entryID,
		Date:        date,
		AccountID:   record[colAcctID],
		Description: record[colDesc],
		Debit:       debit,
		Credit:      credit,
	}, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
