// Package manifest records which table files a dataset consists of, with
// row counts and content hashes.
package manifest

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cleared-dev/synthbooks/internal/export"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// FileName is the manifest file inside the output dir.
const FileName = "manifest.csv"

// Header is the CSV header for manifest.csv.
const Header = "dataset_id,table,file,rows,sha256"

const (
	numFields    = 5
	colDatasetID = 0
	colTable     = 1
	colFile      = 2
	colRows      = 3
	colSHA256    = 4
)

// namespace scopes dataset ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://synthbooks.dev/dataset"))

// Entry is one row in the manifest.
type Entry struct {
	DatasetID string
	Table     string
	File      string
	Rows      int
	SHA256    string
}

// GenerationID is the dataset id of a generated dataset. The same seed,
// horizon and sizes always give the same id.
func GenerationID(seed int64, h model.Horizon, sizes ...int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "seed=%d;start=%s;end=%s", seed, h.Start.Format("2006-01-02"), h.End.Format("2006-01-02"))
	for _, n := range sizes {
		fmt.Fprintf(&b, ";%d", n)
	}
	return uuid.NewSHA1(namespace, []byte(b.String())).String()
}

// ContentID is the dataset id of tables that were not generated here,
// derived from their hashes.
func ContentID(hashes []string) string {
	return uuid.NewSHA1(namespace, []byte(strings.Join(hashes, ";"))).String()
}

// Build hashes every exported file in dir and returns one entry per file.
func Build(dir, datasetID string, files []export.File) ([]Entry, error) {
	sums := make(map[string]string)
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		sum, ok := sums[f.Name]
		if !ok {
			var err error
			sum, err = FileHash(filepath.Join(dir, f.Name))
			if err != nil {
				return nil, err
			}
			sums[f.Name] = sum
		}
		entries = append(entries, Entry{
			DatasetID: datasetID,
			Table:     f.Table,
			File:      f.Name,
			Rows:      f.Rows,
			SHA256:    sum,
		})
	}
	return entries, nil
}

// FileHash returns the hex sha256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", filepath.Base(path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify re-hashes every file listed in entries and reports files whose
// content changed or that are missing.
func Verify(dir string, entries []Entry) error {
	var bad []string
	checked := make(map[string]bool)
	for _, e := range entries {
		if checked[e.File] {
			continue
		}
		checked[e.File] = true
		sum, err := FileHash(filepath.Join(dir, e.File))
		if err != nil {
			bad = append(bad, e.File+" (missing)")
			continue
		}
		if sum != e.SHA256 {
			bad = append(bad, e.File+" (changed)")
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("manifest mismatch: %s", strings.Join(bad, ", "))
	}
	return nil
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colDatasetID] = e.DatasetID
	row[colTable] = e.Table
	row[colFile] = e.File
	row[colRows] = strconv.Itoa(e.Rows)
	row[colSHA256] = e.SHA256
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}
	if _, err := uuid.Parse(record[colDatasetID]); err != nil {
		return Entry{}, fmt.Errorf("parsing dataset_id %q: %w", record[colDatasetID], err)
	}
	return Entry{
		DatasetID: record[colDatasetID],
		Table:     record[colTable],
		File:      record[colFile],
		Rows:      rows,
		SHA256:    record[colSHA256],
	}, nil
}

// Write replaces <dir>/manifest.csv with entries.
func Write(dir string, entries []Entry) error {
	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}

// Read returns all entries from <dir>/manifest.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading manifest CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
