package api

import (
	"context"
	"net/http"

	"datahunt/internal/contacts"
	"datahunt/internal/filters"
)

// SearchResult is one page of contacts.
type SearchResult struct {
	Items []contacts.Contact
	// Total is the backend's total when reported, otherwise len(Items).
	Total         int
	TotalReported bool
}

// Empty reports a successful search with no matches.
func (r *SearchResult) Empty() bool {
	return len(r.Items) == 0
}

type searchResponse struct {
	Items []contacts.Contact `json:"items" validate:"required"`
	Total *int               `json:"total"`
}

// Search fetches one page of contacts matching fs and dr.
//
// A 422 is KindInvalidParameters, other non-2xx statuses are KindServerError,
// and a body without an items array is KindMalformedResponse. An empty items
// array is a successful result; see SearchResult.Empty.
func (c *Client) Search(ctx context.Context, fs filters.FilterSet, dr filters.DateRange, page filters.Pagination) (*SearchResult, error) {
	url := c.Endpoints().Leads + "?" + filters.Compile(fs, dr, page, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Op: OpSearch, Kind: KindNetworkFailure, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, log, err := c.do(ctx, OpSearch, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body searchResponse
	if err := c.decode(OpSearch, resp.Body, &body); err != nil {
		log.Warn("search: %v", err)
		return nil, err
	}

	result := &SearchResult{Items: body.Items, Total: len(body.Items)}
	if body.Total != nil {
		result.Total = *body.Total
		result.TotalReported = true
	}
	log.Debug("search: %d items, total=%d reported=%v", len(result.Items), result.Total, result.TotalReported)
	return result, nil
}
