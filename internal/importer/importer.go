// Package importer turns bank statement exports into bank movements so real
// statements can be posted alongside or instead of generated ones.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// Line is one statement line. Amount is positive for deposits and negative
// for withdrawals.
type Line struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// Parser converts a bank statement CSV into Lines.
type Parser interface {
	Parse(r io.Reader) ([]Line, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&CargoAbonoParser{})
	return r
}

// Movements converts statement lines into bank movements on bankAccountID,
// numbered from firstID. Zero-amount lines carry no money and are skipped.
func Movements(lines []Line, bankAccountID, firstID int) []model.BankMovement {
	out := make([]model.BankMovement, 0, len(lines))
	next := firstID
	for _, l := range lines {
		if l.Amount.IsZero() {
			continue
		}
		dir := model.DirectionIncome
		if l.Amount.IsNegative() {
			dir = model.DirectionExpense
		}
		out = append(out, model.BankMovement{
			ID:            next,
			BankAccountID: bankAccountID,
			Date:          l.Date,
			Direction:     dir,
			Amount:        l.Amount.Abs(),
			Description:   l.Description,
		})
		next++
	}
	return out
}

// NextID returns the id after the largest one in movements.
func NextID(movements []model.BankMovement) int {
	last := 0
	for _, m := range movements {
		last = max(last, m.ID)
	}
	return last + 1
}

// importDir is the subdirectory for statement CSVs.
const importDir = "import"

// processedDir is the subdirectory for imported statements.
const processedDir = "import/processed"

// Scan returns CSV files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// ParseFile opens path and runs p over it.
func ParseFile(p Parser, path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
