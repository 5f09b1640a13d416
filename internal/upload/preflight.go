// Package upload checks contact files before they are sent to the backend
// and watches a drop folder for new files.
package upload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"

	"datahunt/internal/filters"
)

// MIME types accepted without looking at the extension.
const (
	MIMECSV  = "text/csv"
	MIMEXLS  = "application/vnd.ms-excel"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Messages shown by the upload view.
const (
	MsgInvalidType = "Please upload a valid CSV or Excel file"
	MsgNoFile      = "Please select a file first!"
	MsgNoSource    = "Please select a source type!"
)

// DefaultMaxBytes is the advertised 10MB limit.
const DefaultMaxBytes int64 = 10 << 20

var (
	// ErrInvalidType is returned for files that are neither CSV nor Excel.
	ErrInvalidType = errors.New(MsgInvalidType)
	// ErrTooLarge is returned for files over the size limit.
	ErrTooLarge = errors.New("file exceeds the upload size limit")
)

var acceptedMIME = []string{MIMECSV, MIMEXLS, MIMEXLSX}
var acceptedExt = []string{".csv", ".xlsx", ".xls"}

// File describes a contacts file that passed preflight.
type File struct {
	Path string
	Name string
	Size int64
	// MIME is the sniffed content type, "" when detection gave nothing useful.
	MIME string
	// Rows is the number of data rows (header excluded) when RowsKnown.
	Rows      int
	RowsKnown bool
}

// Meta is the "<size> KB • <type>" line shown under the file name.
func (f File) Meta() string {
	mt := f.MIME
	if mt == "" {
		mt = "Unknown"
	}
	return fmt.Sprintf("%.2f KB • %s", float64(f.Size)/1024, mt)
}

// Accepted reports whether a file with this name and detected MIME type may
// be uploaded: either the type is a CSV/Excel type or the name ends in
// .csv, .xlsx or .xls.
func Accepted(name, mime string) bool {
	if slices.Contains(acceptedMIME, mime) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(acceptedExt, ext)
}

// Inspect validates path and gathers what the upload view displays.
// maxBytes <= 0 disables the size check.
func Inspect(path string, maxBytes int64) (*File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	f := &File{Path: path, Name: filepath.Base(path), Size: st.Size()}
	if mt, err := mimetype.DetectFile(path); err == nil {
		f.MIME = normalizeMIME(mt)
	}
	if !Accepted(f.Name, f.MIME) {
		return nil, ErrInvalidType
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s is %.2f MB (limit %.0f MB)", ErrTooLarge, f.Name,
			float64(f.Size)/(1<<20), float64(maxBytes)/(1<<20))
	}

	if n, err := CountRows(path, f.MIME); err == nil {
		f.Rows, f.RowsKnown = n, true
	}
	return f, nil
}

// normalizeMIME strips parameters and walks up to a CSV/Excel parent when
// the sniffer picked a more specific subtype.
func normalizeMIME(mt *mimetype.MIME) string {
	for m := mt; m != nil; m = m.Parent() {
		if slices.Contains(acceptedMIME, baseType(m.String())) {
			return baseType(m.String())
		}
	}
	base := baseType(mt.String())
	if base == "application/octet-stream" {
		return ""
	}
	return base
}

func baseType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// CountRows counts data rows of a CSV or XLSX file, excluding the header.
// Legacy .xls files are not readable and return an error.
func CountRows(path, mime string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case mime == MIMEXLSX || ext == ".xlsx":
		return countXLSX(path)
	case mime == MIMECSV || ext == ".csv":
		return countCSV(path)
	}
	return 0, fmt.Errorf("row count not supported for %s", filepath.Base(path))
}

func countCSV(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse csv: %w", err)
		}
		rows++
	}
	return max(rows-1, 0), nil
}

func countXLSX(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return max(len(rows)-1, 0), nil
}

// ValidateSource checks the source type chosen for an upload.
func ValidateSource(source string) error {
	if source == "" {
		return errors.New(MsgNoSource)
	}
	if !slices.Contains(filters.UploadSourceTypes, source) {
		return fmt.Errorf("unknown source type %q (want one of %s)", source, strings.Join(filters.UploadSourceTypes, ", "))
	}
	return nil
}
