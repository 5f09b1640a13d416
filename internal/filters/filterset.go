package filters

import (
	"slices"
	"strings"
)

// FilterSet is the collection of search criteria. The zero value has no
// filters at all; Defaults returns the state a fresh contacts view starts in.
//
// FilterSet is a value type: the With* methods return a modified copy and
// never touch the receiver, so snapshots taken by callers stay stable.
type FilterSet struct {
	scalars map[Field]string
	lists   map[Field][]string
}

// Defaults is the initial filter state: every source type, nothing else.
func Defaults() FilterSet {
	return FilterSet{}.WithScalar(SourceType, "all")
}

// Scalar returns the raw (untrimmed) value of a scalar field.
func (fs FilterSet) Scalar(f Field) string {
	return fs.scalars[f]
}

// List returns a copy of a list field's values in insertion order.
func (fs FilterSet) List(f Field) []string {
	return slices.Clone(fs.lists[f])
}

// WithScalar returns a copy with f set to v. Setting "" removes the filter.
func (fs FilterSet) WithScalar(f Field, v string) FilterSet {
	out := fs.clone()
	if v == "" {
		delete(out.scalars, f)
		return out
	}
	out.scalars[f] = v
	return out
}

// WithList returns a copy with f replaced by values. Repeated values keep
// their first occurrence; job titles compare case-insensitively like the
// chips input does.
func (fs FilterSet) WithList(f Field, values []string) FilterSet {
	out := fs.clone()
	values = dedupe(f, values)
	if len(values) == 0 {
		delete(out.lists, f)
		return out
	}
	out.lists[f] = values
	return out
}

func dedupe(f Field, values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		key := strings.TrimSpace(v)
		if f == JobTitle {
			key = strings.ToLower(key)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// IsZero reports whether no filter carries a value.
func (fs FilterSet) IsZero() bool {
	for _, v := range fs.scalars {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, vs := range fs.lists {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
	}
	return true
}

// Active returns the fields that would appear in a compiled query, scalars
// first, each group in compile order.
func (fs FilterSet) Active() []Field {
	var out []Field
	for _, f := range ScalarFields {
		if strings.TrimSpace(fs.scalars[f]) != "" {
			out = append(out, f)
		}
	}
	for _, f := range ListFields {
		if len(trimmedValues(fs.lists[f])) > 0 {
			out = append(out, f)
		}
	}
	return out
}

func (fs FilterSet) clone() FilterSet {
	out := FilterSet{
		scalars: make(map[Field]string, len(fs.scalars)),
		lists:   make(map[Field][]string, len(fs.lists)),
	}
	for k, v := range fs.scalars {
		out.scalars[k] = v
	}
	for k, v := range fs.lists {
		out.lists[k] = slices.Clone(v)
	}
	return out
}

func trimmedValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
