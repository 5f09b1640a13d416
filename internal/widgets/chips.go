// Package widgets holds the state machines behind the multi-value filter
// controls. They are plain values: every operation returns the next state,
// which keeps them trivially testable and lets the TUI layer own rendering.
package widgets

import (
	"slices"
	"strings"
)

// ChipInput is a free-text entry that collects distinct values as chips.
type ChipInput struct {
	Draft  string
	Values []string
}

// NewChipInput starts with the given values and an empty draft.
func NewChipInput(values []string) ChipInput {
	return ChipInput{Values: slices.Clone(values)}
}

// SetDraft replaces the text being typed.
func (c ChipInput) SetDraft(s string) ChipInput {
	c.Draft = s
	return c
}

// Commit appends the trimmed draft as a new chip. Blank drafts and
// case-insensitive duplicates are ignored; a duplicate leaves the draft in
// place so the user can see what was rejected. added reports whether a chip
// was appended.
func (c ChipInput) Commit() (next ChipInput, added bool) {
	v := strings.TrimSpace(c.Draft)
	if v == "" || c.Contains(v) {
		return c, false
	}
	c.Values = append(slices.Clone(c.Values), v)
	c.Draft = ""
	return c, true
}

// Contains reports whether v matches an existing chip ignoring case.
func (c ChipInput) Contains(v string) bool {
	return slices.ContainsFunc(c.Values, func(s string) bool {
		return strings.EqualFold(s, v)
	})
}

// Remove drops the chip at index i. Out of range indexes are ignored.
func (c ChipInput) Remove(i int) ChipInput {
	c.Values = removeAt(c.Values, i)
	return c
}

// Pop removes the last chip, as backspace on an empty draft does.
func (c ChipInput) Pop() ChipInput {
	return c.Remove(len(c.Values) - 1)
}

// Clear drops every chip and the draft.
func (c ChipInput) Clear() ChipInput {
	return ChipInput{}
}

func removeAt(values []string, i int) []string {
	if i < 0 || i >= len(values) {
		return values
	}
	return slices.Delete(slices.Clone(values), i, i+1)
}
