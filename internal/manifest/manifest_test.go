package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/synthbooks/internal/export"
	"github.com/cleared-dev/synthbooks/internal/model"
)

func horizon(t *testing.T) model.Horizon {
	t.Helper()
	h, err := model.NewHorizon(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return h
}

func writeFiles(t *testing.T, dir string) []export.File {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clients.csv"), []byte("a,b\n1,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dataset.xlsx"), []byte("workbook"), 0o644))
	return []export.File{
		{Table: "clients", Format: "csv", Name: "clients.csv", Rows: 1},
		{Table: "clients", Format: "xlsx", Name: "dataset.xlsx", Rows: 1},
		{Table: "sales", Format: "xlsx", Name: "dataset.xlsx", Rows: 0},
	}
}

func TestGenerationID(t *testing.T) {
	h := horizon(t)
	a := GenerationID(42, h, 10, 20)
	b := GenerationID(42, h, 10, 20)
	assert.Equal(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())

	assert.NotEqual(t, a, GenerationID(43, h, 10, 20))
	assert.NotEqual(t, a, GenerationID(42, h, 10, 21))
}

func TestContentID(t *testing.T) {
	assert.Equal(t, ContentID([]string{"x", "y"}), ContentID([]string{"x", "y"}))
	assert.NotEqual(t, ContentID([]string{"x", "y"}), ContentID([]string{"y", "x"}))
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir)
	id := GenerationID(1, horizon(t))

	entries, err := Build(dir, id, files)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	sum, err := FileHash(filepath.Join(dir, "clients.csv"))
	require.NoError(t, err)
	assert.Len(t, sum, 64)
	assert.Equal(t, sum, entries[0].SHA256)
	assert.Equal(t, id, entries[0].DatasetID)
	assert.Equal(t, entries[1].SHA256, entries[2].SHA256)
	assert.Equal(t, "sales", entries[2].Table)
}

func TestBuild_MissingFile(t *testing.T) {
	_, err := Build(t.TempDir(), "x", []export.File{{Table: "sales", Name: "sales.csv"}})
	assert.ErrorContains(t, err, "hashing sales.csv")
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir)
	entries, err := Build(dir, GenerationID(1, horizon(t)), files)
	require.NoError(t, err)

	require.NoError(t, Write(dir, entries))
	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))
}

func TestWrite_Replaces(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir)
	entries, err := Build(dir, GenerationID(1, horizon(t)), files)
	require.NoError(t, err)

	require.NoError(t, Write(dir, entries))
	require.NoError(t, Write(dir, entries[:1]))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRead_BadRow(t *testing.T) {
	dir := t.TempDir()
	content := Header + "\nnot-a-uuid,clients,clients.csv,1,abc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	_, err := Read(dir)
	assert.ErrorContains(t, err, "row 2")
	assert.ErrorContains(t, err, "parsing dataset_id")
}

func TestUnmarshalEntry_BadRows(t *testing.T) {
	id := uuid.NewString()
	_, err := UnmarshalEntry([]string{id, "clients", "clients.csv", "many", "abc"})
	assert.ErrorContains(t, err, `parsing rows "many"`)

	_, err = UnmarshalEntry([]string{id, "clients"})
	assert.ErrorContains(t, err, "expected 5 fields, got 2")
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir)
	entries, err := Build(dir, GenerationID(1, horizon(t)), files)
	require.NoError(t, err)

	require.NoError(t, Verify(dir, entries))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "clients.csv"), []byte("a,b\n1,3\n"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(dir, "dataset.xlsx")))

	err = Verify(dir, entries)
	require.Error(t, err)
	assert.Equal(t, "manifest mismatch: clients.csv (changed), dataset.xlsx (missing)", err.Error())
}
