package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CargoAbonoParser parses the statement layout common to Mexican banks:
// fecha (DD/MM/YYYY), descripcion, cargo (withdrawal), abono (deposit),
// saldo. Each row fills exactly one of cargo or abono.
type CargoAbonoParser struct{}

const (
	cargoAbonoDateFormat = "02/01/2006"
	cargoAbonoNumFields  = 5
	cargoAbonoColDate    = 0
	cargoAbonoColDesc    = 1
	cargoAbonoColCargo   = 2
	cargoAbonoColAbono   = 3
)

// Format returns the parser name.
func (p *CargoAbonoParser) Format() string { return "cargo-abono" }

// Parse reads the statement and returns its lines.
func (p *CargoAbonoParser) Parse(r io.Reader) ([]Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = cargoAbonoNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cargo-abono CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var lines []Line
	for i, rec := range records[1:] {
		l, err := parseCargoAbonoRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func parseCargoAbonoRow(rec []string) (Line, error) {
	date, err := time.Parse(cargoAbonoDateFormat, strings.TrimSpace(rec[cargoAbonoColDate]))
	if err != nil {
		return Line{}, fmt.Errorf("parsing fecha %q: %w", rec[cargoAbonoColDate], err)
	}

	cargo, err := optionalAmount(rec[cargoAbonoColCargo])
	if err != nil {
		return Line{}, fmt.Errorf("parsing cargo %q: %w", rec[cargoAbonoColCargo], err)
	}
	abono, err := optionalAmount(rec[cargoAbonoColAbono])
	if err != nil {
		return Line{}, fmt.Errorf("parsing abono %q: %w", rec[cargoAbonoColAbono], err)
	}
	if cargo.IsZero() == abono.IsZero() {
		return Line{}, fmt.Errorf("expected exactly one of cargo and abono, got %q and %q",
			rec[cargoAbonoColCargo], rec[cargoAbonoColAbono])
	}

	return Line{
		Date:        date,
		Description: strings.TrimSpace(rec[cargoAbonoColDesc]),
		Amount:      abono.Sub(cargo),
	}, nil
}

// optionalAmount parses a blank cell as zero and drops thousands separators.
func optionalAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
