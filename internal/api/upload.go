package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// UploadSummary is the backend's report on an imported file.
type UploadSummary struct {
	TotalRows               int
	ImportedRows            int
	SkippedExistingInDB     int
	SkippedInFileDuplicates int
}

type uploadResponse struct {
	TotalRows               *int `json:"total_rows" validate:"required"`
	ImportedRows            *int `json:"imported_rows" validate:"required"`
	SkippedExistingInDB     *int `json:"skipped_existing_in_db" validate:"required"`
	SkippedInFileDuplicates *int `json:"skipped_in_file_duplicates" validate:"required"`
}

// Message renders the summary sentence shown after an upload.
//
// The backend reports no invalid-email count; the figure shown for invalid
// emails is skipped_in_file_duplicates, exactly as the web client always
// displayed it. Replace it once the backend exposes a dedicated field.
func (s UploadSummary) Message() string {
	return fmt.Sprintf(
		"Total records %d. Imported %d records. %d records already existed. %d records were duplicates in file. %d Invalid emails.",
		s.TotalRows, s.ImportedRows, s.SkippedExistingInDB, s.SkippedInFileDuplicates, s.SkippedInFileDuplicates,
	)
}

// Upload posts a contacts file as multipart form data with fields "file" and
// "source_type". contentType may be empty.
func (c *Client) Upload(ctx context.Context, filename, contentType string, file io.Reader, sourceType string) (*UploadSummary, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, &Error{Op: OpUpload, Kind: KindNetworkFailure, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Op: OpUpload, Kind: KindNetworkFailure, Err: fmt.Errorf("failed to read %s: %w", filename, err)}
	}
	if err := mw.WriteField("source_type", sourceType); err != nil {
		return nil, &Error{Op: OpUpload, Kind: KindNetworkFailure, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Op: OpUpload, Kind: KindNetworkFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoints().Upload, &body)
	if err != nil {
		return nil, &Error{Op: OpUpload, Kind: KindNetworkFailure, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, log, err := c.do(ctx, OpUpload, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := c.decode(OpUpload, resp.Body, &out); err != nil {
		log.Warn("upload: %v", err)
		return nil, err
	}
	summary := &UploadSummary{
		TotalRows:               *out.TotalRows,
		ImportedRows:            *out.ImportedRows,
		SkippedExistingInDB:     *out.SkippedExistingInDB,
		SkippedInFileDuplicates: *out.SkippedInFileDuplicates,
	}
	log.Debug("upload %s: %+v", filename, *summary)
	return summary, nil
}
