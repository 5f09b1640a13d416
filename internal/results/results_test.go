package results

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datahunt/internal/filters"
)

func TestPageState_Derived(t *testing.T) {
	tests := []struct {
		total, page       int
		wantPages, offset int
	}{
		{total: 0, page: 1, wantPages: 0, offset: 0},
		{total: 1, page: 1, wantPages: 1, offset: 0},
		{total: 50, page: 1, wantPages: 1, offset: 0},
		{total: 51, page: 2, wantPages: 2, offset: 50},
		{total: 1234, page: 25, wantPages: 25, offset: 1200},
	}
	for _, tt := range tests {
		p := NewPageState()
		p.Total = tt.total
		p.CurrentPage = tt.page
		assert.Equal(t, tt.wantPages, p.TotalPages(), "total=%d", tt.total)
		assert.Equal(t, tt.offset, p.Offset(), "page=%d", tt.page)
		assert.Equal(t, filters.Pagination{Limit: 50, Offset: tt.offset}, p.Pagination())
	}
}

func TestPageState_CanGoTo(t *testing.T) {
	p := PageState{CurrentPage: 1, PerPage: 50, Total: 120}
	assert.False(t, p.CanGoTo(0))
	assert.True(t, p.CanGoTo(1))
	assert.True(t, p.CanGoTo(3))
	assert.False(t, p.CanGoTo(4))

	assert.False(t, NewPageState().CanGoTo(1), "no results means no pages")
}

func TestPageState_PagerButtons(t *testing.T) {
	p := PageState{CurrentPage: 1, PerPage: 50, Total: 120}
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p.CurrentPage = 3
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())

	empty := NewPageState()
	assert.False(t, empty.HasNext())
	assert.Equal(t, 1, empty.DisplayTotalPages())
}
