package contacts

import "strings"

// Prefixes accepted by Resolve.
const (
	PrefixContact = "contact"
	PrefixCompany = "company"
)

// Source is anything that exposes named string fields, such as a Contact.
type Source interface {
	Field(name string) string
}

// Location is a normalised place. Nil means "unknown".
type Location struct {
	City    *string
	State   *string
	Country *string
}

// Resolve reconciles the structured <prefix>_city/_state/_country fields and
// the combined <prefix>_location string into one Location.
//
// Structured fields win whenever any of them is non-empty. Otherwise the
// combined string is split on commas: three parts map to city, state,
// country; two parts map to city and country (so "Austin, TX" yields country
// "TX"); one part is taken as the country. Any other count resolves to
// nothing.
func Resolve(src Source, prefix string) Location {
	city := src.Field(prefix + "_city")
	state := src.Field(prefix + "_state")
	country := src.Field(prefix + "_country")
	if city != "" || state != "" || country != "" {
		return Location{City: opt(city), State: opt(state), Country: opt(country)}
	}
	if combined := src.Field(prefix + "_location"); combined != "" {
		return ParseCombined(combined)
	}
	return Location{}
}

// ParseCombined splits a free-text "City, State, Country" string.
func ParseCombined(s string) Location {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 3:
		return Location{City: &parts[0], State: &parts[1], Country: &parts[2]}
	case 2:
		return Location{City: &parts[0], Country: &parts[1]}
	case 1:
		return Location{Country: &parts[0]}
	}
	return Location{}
}

// Lines returns the primary "City, State" line and the secondary country line.
// Either may be empty.
func (l Location) Lines() (primary, secondary string) {
	var cs []string
	if l.City != nil {
		cs = append(cs, *l.City)
	}
	if l.State != nil {
		cs = append(cs, *l.State)
	}
	primary = strings.Join(cs, ", ")
	if l.Country != nil {
		secondary = *l.Country
	}
	return primary, secondary
}

// Display renders the location as up to two newline separated lines, or
// NotAvailable when nothing resolved.
func (l Location) Display() string {
	primary, secondary := l.Lines()
	switch {
	case primary != "" && secondary != "":
		return primary + "\n" + secondary
	case primary != "":
		return primary
	case secondary != "":
		return secondary
	}
	return NotAvailable
}

func opt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
