package api

import (
	"errors"
	"fmt"
)

// Op names the operation an error came from.
type Op string

const (
	OpSearch Op = "search"
	OpExport Op = "export"
	OpUpload Op = "upload"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindNetworkFailure means the request never produced a response.
	KindNetworkFailure Kind = iota
	// KindInvalidParameters is an HTTP 422 from the backend.
	KindInvalidParameters
	// KindServerError is any other non-2xx status.
	KindServerError
	// KindMalformedResponse is a 2xx whose body breaks the response contract.
	KindMalformedResponse
	// KindEmptyResult is not a failure; it marks a search with zero matches
	// so callers can show it as information rather than as an error.
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindInvalidParameters:
		return "invalid_parameters"
	case KindServerError:
		return "server_error"
	case KindMalformedResponse:
		return "malformed_response"
	case KindEmptyResult:
		return "empty_result"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every Client method.
type Error struct {
	Op         Op
	Kind       Kind
	StatusCode int
	// Status is the reason phrase, e.g. "Internal Server Error".
	Status string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s (%d %s): %v", e.Op, e.Kind, e.StatusCode, e.Status, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s (%d %s)", e.Op, e.Kind, e.StatusCode, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind of err. ok is false when err is not an *Error.
func KindOf(err error) (kind Kind, ok bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// User facing messages.
const (
	MsgInvalidSearch   = "Invalid search parameters. Please check your filters."
	MsgInvalidExport   = "Invalid export parameters. Please check your filters."
	MsgMalformed       = "Invalid response format from server"
	MsgSearchFailed    = "Failed to fetch contacts. Please try again."
	MsgExportFailed    = "Failed to export contacts. Please try again."
	MsgNoContacts      = "No contacts found matching your search criteria."
	MsgNothingToExport = "No contacts to export. Please search first."
	MsgUploadFailed    = "Upload failed. Please try again."
)

// UserMessage converts an error from op into the single line shown to the
// user. Upload failures all collapse to MsgUploadFailed.
func UserMessage(op Op, err error) string {
	if op == OpUpload {
		return MsgUploadFailed
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallbackMessage(op)
	}
	switch apiErr.Kind {
	case KindInvalidParameters:
		if op == OpExport {
			return MsgInvalidExport
		}
		return MsgInvalidSearch
	case KindServerError:
		if op == OpExport {
			return fmt.Sprintf("Export failed: %d %s", apiErr.StatusCode, apiErr.Status)
		}
		return fmt.Sprintf("Server error: %d %s", apiErr.StatusCode, apiErr.Status)
	case KindMalformedResponse:
		return MsgMalformed
	case KindEmptyResult:
		return MsgNoContacts
	}
	return fallbackMessage(op)
}

func fallbackMessage(op Op) string {
	if op == OpExport {
		return MsgExportFailed
	}
	return MsgSearchFailed
}
