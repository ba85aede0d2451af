package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/synthbooks/internal/model"
)

const (
	numFields         = 4
	colID             = 0
	colName           = 1
	colType           = 2
	colClassification = 3
)

// Header lists the chart_of_accounts.csv columns in order.
var Header = []string{"account_id", "account_name", "account_type", "classification"}

// ReadAccounts reads chart_of_accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart_of_accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colClassification] = acct.Classification
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	t := model.AccountType(record[colType])
	if !t.Valid() {
		return model.Account{}, fmt.Errorf("account %s: unknown account_type %q", record[colID], record[colType])
	}

	return model.Account{
		ID:             record[colID],
		Name:           record[colName],
		Type:           t,
		Classification: record[colClassification],
	}, nil
}
