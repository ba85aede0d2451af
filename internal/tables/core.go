package tables

import (
	"strings"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/journal"
	"github.com/cleared-dev/synthbooks/internal/ledger"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// The chart, journal and ledger keep their own row codecs next to their
// engines; these wrap them so every table exports the same way.

// Chart is the codec for the chart of accounts, one row per account.
var Chart = Codec[model.Account]{
	Name:      NameChart,
	Columns:   columns(accounts.Header, nil),
	Marshal:   accounts.MarshalAccount,
	Unmarshal: accounts.UnmarshalAccount,
}

// Journal is the codec for journal.csv, one row per leg.
var Journal = Codec[model.Leg]{
	Name: NameJournal,
	Columns: columns(strings.Split(journal.Header, ","), map[string]Kind{
		"entry_id": Int, "date": Date, "debit": Decimal, "credit": Decimal,
	}),
	Marshal:   journal.MarshalLeg,
	Unmarshal: journal.UnmarshalLeg,
}

// Ledger is the codec for ledger.csv, one row per account and period end.
var Ledger = Codec[model.LedgerEntry]{
	Name: NameLedger,
	Columns: columns(strings.Split(ledger.Header, ","), map[string]Kind{
		"period_end": Date, "opening_balance": Decimal, "debits": Decimal,
		"credits": Decimal, "closing_balance": Decimal,
	}),
	Marshal:   ledger.MarshalEntry,
	Unmarshal: ledger.UnmarshalEntry,
}

func columns(names []string, kinds map[string]Kind) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Kind: kinds[n]}
	}
	return cols
}
