package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/synthbooks/internal/config"
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

// initWithInputs initializes a project whose output dir holds the fixture
// tables for Q1 2020.
func initWithInputs(t *testing.T) string {
	t.Helper()
	dir := initSmall(t, func(c *config.Config) {
		c.Dataset.StartDate = "2020-01-01"
		c.Dataset.EndDate = "2020-03-31"
	})
	src := filepath.Join("..", "..", "testdata", "inputs")
	files, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, f := range files {
		copyFile(t, filepath.Join(src, f.Name()), filepath.Join(dir, "data", f.Name()))
	}
	return dir
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return len(strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestImport_Chase(t *testing.T) {
	dir := initWithInputs(t)
	copyFile(t, filepath.Join("..", "..", "testdata", "statements", "chase_checking.csv"),
		filepath.Join(dir, "import", "chase_checking.csv"))

	out, err := runSynthbooks(t, "import", "--repo", dir, "--format", "chase")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 5 bank movements from 1 statements")

	assert.Equal(t, 1+3+5, countLines(t, filepath.Join(dir, "data", "bank_movements.csv")))

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "chase_checking.csv"))
	require.NoError(t, err, "statement should move to processed/")
	_, err = os.Stat(filepath.Join(dir, "import", "chase_checking.csv"))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, gitLog(t, dir, "%s"), "import: 5 bank movements from chase_checking.csv")

	out, err = runSynthbooks(t, "derive", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "39 journal lines")

	out, err = runSynthbooks(t, "check", "--repo", dir)
	require.NoError(t, err, out)
}

func TestImport_CargoAbono(t *testing.T) {
	dir := initWithInputs(t)
	copyFile(t, filepath.Join("..", "..", "testdata", "statements", "banco_cargo_abono.csv"),
		filepath.Join(dir, "import", "banco.csv"))

	out, err := runSynthbooks(t, "import", "--repo", dir, "--format", "cargo-abono")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 3 bank movements")

	data, err := os.ReadFile(filepath.Join(dir, "data", "bank_movements.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "4,1,2020-02-05,Expense,4800.00,PAGO NÓMINA FEBRERO")
}

func TestImport_NothingToDo(t *testing.T) {
	dir := initWithInputs(t)
	out, err := runSynthbooks(t, "import", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No statements to import")
}

func TestImport_UnknownBankAccount(t *testing.T) {
	dir := initWithInputs(t)
	copyFile(t, filepath.Join("..", "..", "testdata", "statements", "chase_checking.csv"),
		filepath.Join(dir, "import", "chase_checking.csv"))

	out, err := runSynthbooks(t, "import", "--repo", dir, "--bank-account", "9")
	require.Error(t, err)
	assert.Contains(t, out, "bank account 9 not found")

	_, err = os.Stat(filepath.Join(dir, "import", "chase_checking.csv"))
	assert.NoError(t, err, "statement stays in import/ on failure")
}

func TestImport_UnknownFormat(t *testing.T) {
	dir := initWithInputs(t)
	out, err := runSynthbooks(t, "import", "--repo", dir, "--format", "ofx")
	require.Error(t, err)
	assert.Contains(t, out, `unknown statement format "ofx"`)
}
