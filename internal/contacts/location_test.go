package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fields map[string]string

func (f fields) Field(name string) string { return f[name] }

func ptr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		src    fields
		prefix string
		want   Location
	}{
		{
			name:   "combined three parts",
			src:    fields{"contact_location": "Austin, TX, USA"},
			prefix: PrefixContact,
			want:   Location{City: ptr("Austin"), State: ptr("TX"), Country: ptr("USA")},
		},
		{
			name:   "combined two parts reads as city and country",
			src:    fields{"contact_location": "Austin, USA"},
			prefix: PrefixContact,
			want:   Location{City: ptr("Austin"), Country: ptr("USA")},
		},
		{
			name:   "combined one part is a country",
			src:    fields{"company_location": " Germany "},
			prefix: PrefixCompany,
			want:   Location{Country: ptr("Germany")},
		},
		{
			name:   "empty segments are dropped",
			src:    fields{"contact_location": "Paris,, ,France"},
			prefix: PrefixContact,
			want:   Location{City: ptr("Paris"), Country: ptr("France")},
		},
		{
			name:   "four parts resolve to nothing",
			src:    fields{"contact_location": "a, b, c, d"},
			prefix: PrefixContact,
			want:   Location{},
		},
		{
			name:   "structured fields win even when only one is set",
			src:    fields{"company_state": "CA", "company_location": "Austin, TX, USA"},
			prefix: PrefixCompany,
			want:   Location{State: ptr("CA")},
		},
		{
			name:   "prefix selects the field family",
			src:    fields{"contact_city": "Lyon", "company_city": "Nice"},
			prefix: PrefixCompany,
			want:   Location{City: ptr("Nice")},
		},
		{
			name:   "nothing",
			src:    fields{},
			prefix: PrefixContact,
			want:   Location{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.src, tt.prefix))
		})
	}
}

func TestLocationDisplay(t *testing.T) {
	assert.Equal(t, "Austin, TX\nUSA", Location{City: ptr("Austin"), State: ptr("TX"), Country: ptr("USA")}.Display())
	assert.Equal(t, "Austin", Location{City: ptr("Austin")}.Display())
	assert.Equal(t, "USA", Location{Country: ptr("USA")}.Display())
	assert.Equal(t, "N/A", Location{}.Display())

	primary, secondary := Location{State: ptr("TX"), Country: ptr("USA")}.Lines()
	assert.Equal(t, "TX", primary)
	assert.Equal(t, "USA", secondary)
}
