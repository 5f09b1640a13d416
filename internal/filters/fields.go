// Package filters holds the search criteria edited in the contacts view and
// compiles them into the query strings understood by the contacts API.
package filters

import (
	"fmt"
	"strings"
)

// Field names a filter parameter as the backend spells it.
type Field string

// Kind distinguishes single-valued fields from repeated-key list fields.
type Kind int

const (
	KindScalar Kind = iota
	KindList
)

// Scalar fields.
const (
	SourceType      Field = "source_type"
	Search          Field = "search"
	FirstName       Field = "first_name"
	LastName        Field = "last_name"
	Email           Field = "email"
	CompanyName     Field = "company_name"
	CompanyCountry  Field = "company_country"
	CompanyCity     Field = "company_city"
	CompanySize     Field = "company_size"
	ContactCity     Field = "contact_city"
	ContactState    Field = "contact_state"
	ContactCountry  Field = "contact_country"
	ContactLocation Field = "contact_location"
	CompanyLocation Field = "company_location"
	CompanyState    Field = "company_state"
	EmailTotalAI    Field = "email_total_ai"
)

// List fields.
const (
	JobTitle         Field = "job_title"
	CompanyIndustry  Field = "company_industry"
	CompanySizeRange Field = "company_size_range"
	EmailValidation  Field = "email_validation"
)

// ScalarFields lists every scalar field in compile order.
var ScalarFields = []Field{
	SourceType, Search, FirstName, LastName, Email,
	CompanyName, CompanyCountry, CompanyCity, CompanySize,
	ContactCity, ContactState, ContactCountry, ContactLocation,
	CompanyLocation, CompanyState, EmailTotalAI,
}

// ListFields lists every multi-value field in compile order.
var ListFields = []Field{JobTitle, CompanyIndustry, CompanySizeRange, EmailValidation}

var fieldKinds = func() map[Field]Kind {
	m := make(map[Field]Kind, len(ScalarFields)+len(ListFields))
	for _, f := range ScalarFields {
		m[f] = KindScalar
	}
	for _, f := range ListFields {
		m[f] = KindList
	}
	return m
}()

// Kind reports whether f is scalar or list valued. Unknown fields report
// KindScalar; use ParseField to reject them.
func (f Field) Kind() Kind {
	return fieldKinds[f]
}

// Known reports whether f is one of the fields the backend accepts.
func (f Field) Known() bool {
	_, ok := fieldKinds[f]
	return ok
}

// Label is the human readable form, "company_size_range" -> "Company size range".
func (f Field) Label() string {
	s := strings.ReplaceAll(string(f), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseField accepts either the wire name or its dashed flag form.
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), "-", "_"))
	if !f.Known() {
		return "", fmt.Errorf("unknown filter field %q", s)
	}
	return f, nil
}
