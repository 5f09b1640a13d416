package contacts

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotAvailable is shown wherever a value is missing.
const NotAvailable = "N/A"

// NoExtraMessage is shown when a contact has no extra details.
const NoExtraMessage = "No additional information available for this contact."

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders a backend timestamp as "Jan 2, 2006". Empty input gives
// NotAvailable; input in an unknown layout is returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// FormatFieldName turns a snake_case key into words with their first letter
// upper-cased: "linkedin_url" -> "Linkedin Url".
func FormatFieldName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// OrNA substitutes NotAvailable for an empty value.
func OrNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// StaffLine is the company size summary shown in the details column.
func StaffLine(c Contact) string {
	if size := c.Field(FieldCompanySize); size != "" {
		return "Staff: " + size + " employees"
	}
	return "Staff: " + NotAvailable
}

// SizeRangeLine is "(<range> range)", or "" when the contact has no range.
func SizeRangeLine(c Contact) string {
	if r := c.Field(FieldCompanySizeRange); r != "" {
		return "(" + r + " range)"
	}
	return ""
}

// Badge classifies a value for colouring.
type Badge int

const (
	BadgeDefault Badge = iota
	BadgeValid
	BadgeAccept
	BadgeInvalid
	BadgeSeamless
	BadgeSkrapp
)

// EmailBadge classifies an email_validation value. Checks run in order, so
// "Invalid" never counts as valid and "Accept all" beats "risky".
func EmailBadge(validation string) Badge {
	v := strings.ToLower(validation)
	switch {
	case strings.Contains(v, "valid") && !strings.Contains(v, "invalid"):
		return BadgeValid
	case strings.Contains(v, "accept"):
		return BadgeAccept
	case strings.Contains(v, "invalid"), strings.Contains(v, "risky"):
		return BadgeInvalid
	}
	return BadgeDefault
}

// SourceBadge classifies a source_type value.
func SourceBadge(source string) Badge {
	switch strings.ToLower(source) {
	case "seamless":
		return BadgeSeamless
	case "skrapp":
		return BadgeSkrapp
	}
	return BadgeDefault
}
