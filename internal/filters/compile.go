package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ResultsPerPage is the fixed page size used by the contacts view.
const ResultsPerPage = 50

// Pagination is the window of results requested from the backend.
type Pagination struct {
	Limit  int
	Offset int
}

// Format is the file type produced by an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Mode selects how many columns an export carries.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeFull     Mode = "full"
)

// ExportOptions are the extra parameters sent on the export path.
type ExportOptions struct {
	Format Format
	Mode   Mode
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want csv or xlsx)", s)
}

// ParseMode validates an export mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStandard, ModeFull:
		return m, nil
	}
	return "", fmt.Errorf("unsupported export mode %q (want standard or full)", s)
}

// Compile serializes filters, the date range and the page window into an
// encoded query string. Scalars are set once when non-blank, list values are
// appended one key per non-blank element in order, limit and offset are
// always present, and opts (when non-nil) adds format and mode.
//
// Compilation never fails: blank values are dropped.
func Compile(fs FilterSet, dr DateRange, page Pagination, opts *ExportOptions) string {
	q := values(fs, dr)
	q.Set("limit", strconv.Itoa(page.Limit))
	q.Set("offset", strconv.Itoa(page.Offset))
	applyExport(q, opts)
	return q.Encode()
}

// CompileExport builds the export query. It carries the same filter and date
// parameters as Compile but no page window, so the backend exports every
// matching contact rather than the visible page.
func CompileExport(fs FilterSet, dr DateRange, opts ExportOptions) string {
	q := values(fs, dr)
	applyExport(q, &opts)
	return q.Encode()
}

func values(fs FilterSet, dr DateRange) url.Values {
	q := url.Values{}
	for _, f := range ScalarFields {
		if v := strings.TrimSpace(fs.scalars[f]); v != "" {
			q.Set(string(f), v)
		}
	}
	for _, f := range ListFields {
		for _, v := range trimmedValues(fs.lists[f]) {
			q.Add(string(f), v)
		}
	}
	// One user-facing range drives both the created and updated windows.
	if dr.Start != nil {
		q.Set("created_date_from", dr.Start.String())
		q.Set("updated_at_from", dr.Start.String())
	}
	if dr.End != nil {
		q.Set("created_date_to", dr.End.String())
		q.Set("updated_at_to", dr.End.String())
	}
	return q
}

func applyExport(q url.Values, opts *ExportOptions) {
	if opts == nil {
		return
	}
	if opts.Format != "" {
		q.Set("format", string(opts.Format))
	}
	if opts.Mode != "" {
		q.Set("mode", string(opts.Mode))
	}
}
