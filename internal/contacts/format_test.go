package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "N/A", FormatDate(""))
	assert.Equal(t, "Mar 7, 2024", FormatDate("2024-03-07"))
	assert.Equal(t, "Mar 7, 2024", FormatDate("2024-03-07T10:20:30Z"))
	assert.Equal(t, "Mar 7, 2024", FormatDate("2024-03-07T10:20:30.123456"))
	assert.Equal(t, "last tuesday", FormatDate("last tuesday"))
}

func TestFormatFieldName(t *testing.T) {
	assert.Equal(t, "Linkedin Url", FormatFieldName("linkedin_url"))
	assert.Equal(t, "Company", FormatFieldName("company"))
	assert.Equal(t, "Phone NUMBER", FormatFieldName("phone_NUMBER"))
}

func TestStaffLines(t *testing.T) {
	c := New(map[string]string{FieldCompanySize: "120", FieldCompanySizeRange: "51 - 200"}, nil)
	assert.Equal(t, "Staff: 120 employees", StaffLine(c))
	assert.Equal(t, "(51 - 200 range)", SizeRangeLine(c))

	empty := New(nil, nil)
	assert.Equal(t, "Staff: N/A", StaffLine(empty))
	assert.Empty(t, SizeRangeLine(empty))
}

func TestEmailBadge(t *testing.T) {
	tests := map[string]Badge{
		"Valid":      BadgeValid,
		"Invalid":    BadgeInvalid,
		"Accept all": BadgeAccept,
		"Risky":      BadgeInvalid,
		"Catch all":  BadgeDefault,
		"Unknown":    BadgeDefault,
		"":           BadgeDefault,
	}
	for in, want := range tests {
		assert.Equal(t, want, EmailBadge(in), in)
	}
}

func TestSourceBadge(t *testing.T) {
	assert.Equal(t, BadgeSeamless, SourceBadge("Seamless"))
	assert.Equal(t, BadgeSkrapp, SourceBadge("skrapp"))
	assert.Equal(t, BadgeDefault, SourceBadge("apollo"))
}
