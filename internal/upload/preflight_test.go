package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAccepted(t *testing.T) {
	assert.True(t, Accepted("leads.csv", ""))
	assert.True(t, Accepted("LEADS.XLSX", ""))
	assert.True(t, Accepted("old.xls", ""))
	assert.True(t, Accepted("export", MIMECSV))
	assert.True(t, Accepted("export.bin", MIMEXLS))
	assert.False(t, Accepted("notes.txt", "text/plain"))
	assert.False(t, Accepted("image.png", "image/png"))
}

func TestInspect_CSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "leads.csv", "first_name,last_name,email\nAda,Lovelace,ada@example.com\nAlan,Turing,alan@example.com\n")

	f, err := Inspect(path, DefaultMaxBytes)
	require.NoError(t, err)
	assert.Equal(t, "leads.csv", f.Name)
	assert.True(t, f.RowsKnown)
	assert.Equal(t, 2, f.Rows)
	assert.Contains(t, f.Meta(), " KB • ")
}

func TestInspect_RejectsOtherTypes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "just some notes\n")

	_, err := Inspect(path, DefaultMaxBytes)
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Equal(t, "Please upload a valid CSV or Excel file", err.Error())
}

func TestInspect_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.csv", "email\nabcdefghijklmnopqrstuvwxyz@example.com\n")

	_, err := Inspect(path, 10)
	assert.True(t, errors.Is(err, ErrTooLarge))

	_, err = Inspect(path, 0)
	assert.NoError(t, err)
}

func TestInspect_Missing(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.csv"), 0)
	assert.Error(t, err)
}

func TestInspect_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leads.xlsx")

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]any{"first_name", "email"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]any{"Ada", "ada@example.com"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &[]any{"Alan", "alan@example.com"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A4", &[]any{"Grace", "grace@example.com"}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	f, err := Inspect(path, DefaultMaxBytes)
	require.NoError(t, err)
	assert.True(t, f.RowsKnown)
	assert.Equal(t, 3, f.Rows)
}

func TestFileMeta(t *testing.T) {
	assert.Equal(t, "2.00 KB • text/csv", File{Size: 2048, MIME: MIMECSV}.Meta())
	assert.Equal(t, "0.50 KB • Unknown", File{Size: 512}.Meta())
}

func TestValidateSource(t *testing.T) {
	assert.NoError(t, ValidateSource("seamless"))
	assert.NoError(t, ValidateSource("skrapp"))
	assert.EqualError(t, ValidateSource(""), "Please select a source type!")
	assert.Error(t, ValidateSource("all"))
}
