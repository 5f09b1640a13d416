package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"datahunt/internal/filters"
)

// MIME types requested for each export format.
const (
	MIMECSV  = "text/csv"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportFile is a downloaded export.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Save writes the export into dir, creating it when needed, and returns the
// written path.
func (f *ExportFile) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// ExportFileName is contacts_export_<epoch millis>.<format>.
func ExportFileName(format filters.Format, millis int64) string {
	return fmt.Sprintf("contacts_export_%d.%s", millis, format)
}

// Export downloads every contact matching fs and dr in the requested format.
// Errors are classified like Search, with Op set to OpExport.
func (c *Client) Export(ctx context.Context, fs filters.FilterSet, dr filters.DateRange, opts filters.ExportOptions) (*ExportFile, error) {
	if opts.Format == "" {
		opts.Format = filters.FormatCSV
	}
	if opts.Mode == "" {
		opts.Mode = filters.ModeStandard
	}

	url := c.Endpoints().Export + "?" + filters.CompileExport(fs, dr, opts)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Op: OpExport, Kind: KindNetworkFailure, Err: err}
	}
	accept := MIMECSV
	if opts.Format == filters.FormatXLSX {
		accept = MIMEXLSX
	}
	req.Header.Set("Accept", accept)

	resp, log, err := c.do(ctx, OpExport, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: OpExport, Kind: KindNetworkFailure, Err: fmt.Errorf("failed to read export body: %w", err)}
	}

	file := &ExportFile{
		Name:        ExportFileName(opts.Format, c.now().UnixMilli()),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	log.Debug("export: %s, %d bytes", file.Name, len(data))
	return file, nil
}
