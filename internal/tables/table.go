// Package tables holds the CSV form of every dataset table.
package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// Kind tells exporters how to type a column's cells.
type Kind int

const (
	Text Kind = iota
	Int
	Decimal
	Date
)

// Column is a named, typed table column.
type Column struct {
	Name string
	Kind Kind
}

// Table is a rendered table: a header and rows of already formatted cells.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// Header returns the column names.
func (t Table) Header() []string {
	h := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Name
	}
	return h
}

// File returns the CSV file name for the table.
func (t Table) File() string {
	return t.Name + ".csv"
}

// WriteCSV writes the header and all rows.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Codec converts between typed rows and CSV records for one table.
type Codec[T any] struct {
	Name      string
	Columns   []Column
	Marshal   func(T) []string
	Unmarshal func([]string) (T, error)
}

// Table renders rows.
func (c Codec[T]) Table(rows []T) Table {
	t := Table{Name: c.Name, Columns: c.Columns, Rows: make([][]string, len(rows))}
	for i, r := range rows {
		t.Rows[i] = c.Marshal(r)
	}
	return t
}

// File is the CSV file name of the codec's table.
func (c Codec[T]) File() string {
	return c.Name + ".csv"
}

// Write renders rows and writes them as CSV.
func (c Codec[T]) Write(w io.Writer, rows []T) error {
	return WriteCSV(w, c.Table(rows))
}

// Read parses a CSV stream. The header must match the codec's columns.
func (c Codec[T]) Read(r io.Reader) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(c.Columns)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", c.Name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	want := c.Table(nil).Header()
	if !slices.Equal(records[0], want) {
		return nil, fmt.Errorf("%s: unexpected header %v, want %v", c.Name, records[0], want)
	}

	rows := make([]T, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := c.Unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", c.Name, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile parses the CSV file at path.
func (c Codec[T]) ReadFile(path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Read(f)
}

// fields parses cells of one record, keeping the first error.
type fields struct {
	rec  []string
	cols []Column
	err  error
}

func (f *fields) fail(i int, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("parsing %s %q: %w", f.cols[i].Name, f.rec[i], err)
	}
}

func (f *fields) str(i int) string {
	return f.rec[i]
}

func (f *fields) num(i int) int {
	n, err := strconv.Atoi(f.rec[i])
	if err != nil {
		f.fail(i, err)
	}
	return n
}

func (f *fields) amount(i int) decimal.Decimal {
	d, err := decimal.NewFromString(f.rec[i])
	if err != nil {
		f.fail(i, err)
	}
	return d
}

func (f *fields) date(i int) time.Time {
	t, err := time.Parse(dateFormat, f.rec[i])
	if err != nil {
		f.fail(i, err)
	}
	return t
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func day(t time.Time) string {
	return t.Format(dateFormat)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
