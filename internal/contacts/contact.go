// Package contacts models the contact records returned by the backend and the
// read-only formatting applied to them before display.
package contacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Contact is an opaque backend record. Every top-level field is kept as a
// string so the display layer never has to care whether the backend sent
// "company_size": 120 or "company_size": "120". Unknown fields are retained.
type Contact struct {
	fields map[string]string
	extra  map[string]string
}

// Well known field names.
const (
	FieldID               = "id"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldJobTitle         = "job_title"
	FieldCompanyName      = "company_name"
	FieldCompanyIndustry  = "company_industry"
	FieldCompanySize      = "company_size"
	FieldCompanySizeRange = "company_size_range"
	FieldSourceType       = "source_type"
	FieldCreatedDate      = "created_date"
	FieldLastUploadSource = "last_upload_source"
	FieldEmailValidation  = "email_validation"
	FieldEmailTotalAI     = "email_total_ai"
)

// New builds a Contact from plain fields. Used by tests and by callers that
// decode records from other sources.
func New(fields map[string]string, extra map[string]string) Contact {
	c := Contact{fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		c.fields[k] = v
	}
	if len(extra) > 0 {
		c.extra = make(map[string]string, len(extra))
		for k, v := range extra {
			c.extra[k] = v
		}
	}
	return c
}

// Field returns the string form of a top-level field, "" when absent or null.
func (c Contact) Field(name string) string {
	return c.fields[name]
}

// ID returns the record identifier.
func (c Contact) ID() string { return c.fields[FieldID] }

// Email returns the contact's address.
func (c Contact) Email() string { return c.fields[FieldEmail] }

// FullName joins first and last name the way the table shows them.
func (c Contact) FullName() string {
	return c.fields[FieldFirstName] + " " + c.fields[FieldLastName]
}

// ExtraEntry is one key/value of the open-ended extra mapping.
type ExtraEntry struct {
	Key   string
	Value string
}

// Extra returns the extra details sorted by key.
func (c Contact) Extra() []ExtraEntry {
	if len(c.extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.extra))
	for k := range c.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]ExtraEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, ExtraEntry{Key: k, Value: c.extra[k]})
	}
	return out
}

// UnmarshalJSON accepts any JSON object. Scalars are stringified, nulls are
// dropped, nested values are kept as compact JSON text.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	c.fields = make(map[string]string, len(raw))
	c.extra = nil
	for k, v := range raw {
		if k == "extra" {
			extra, err := decodeExtra(v)
			if err != nil {
				return fmt.Errorf("contact extra: %w", err)
			}
			c.extra = extra
			continue
		}
		s, ok, err := stringify(v)
		if err != nil {
			return fmt.Errorf("contact field %q: %w", k, err)
		}
		if ok {
			c.fields[k] = s
		}
	}
	return nil
}

// MarshalJSON writes the record back in its wire shape.
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.fields)+1)
	for k, v := range c.fields {
		out[k] = v
	}
	if len(c.extra) > 0 {
		out["extra"] = c.extra
	}
	return json.Marshal(out)
}

func decodeExtra(v json.RawMessage) (map[string]string, error) {
	if isNull(v) {
		return nil, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(v, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, rv := range raw {
		s, _, err := stringify(rv)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

// stringify reports ok=false for JSON null.
func stringify(v json.RawMessage) (string, bool, error) {
	v = bytes.TrimSpace(v)
	if isNull(v) {
		return "", false, nil
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return "", false, err
		}
		return buf.String(), true, nil
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return "", false, err
		}
		return n.String(), true, nil
	}
}

func isNull(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) == 0 || string(v) == "null"
}
