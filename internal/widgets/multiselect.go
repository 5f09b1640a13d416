package widgets

import "slices"

// MultiSelect is a dropdown over a fixed option list where each option is
// toggled in or out of the selection.
type MultiSelect struct {
	Options  []string
	Selected []string
	Open     bool
	Cursor   int
}

// NewMultiSelect builds a closed dropdown.
func NewMultiSelect(options, selected []string) MultiSelect {
	return MultiSelect{Options: options, Selected: slices.Clone(selected)}
}

// Toggle adds option when unselected and removes it when selected.
// Options outside the list are ignored.
func (m MultiSelect) Toggle(option string) MultiSelect {
	if !slices.Contains(m.Options, option) {
		return m
	}
	if i := slices.Index(m.Selected, option); i >= 0 {
		m.Selected = removeAt(m.Selected, i)
		return m
	}
	m.Selected = append(slices.Clone(m.Selected), option)
	return m
}

// ToggleCursor toggles the option under the cursor.
func (m MultiSelect) ToggleCursor() MultiSelect {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return m
	}
	return m.Toggle(m.Options[m.Cursor])
}

// IsSelected reports whether option is in the selection.
func (m MultiSelect) IsSelected(option string) bool {
	return slices.Contains(m.Selected, option)
}

// RemoveAt drops the i-th selected chip.
func (m MultiSelect) RemoveAt(i int) MultiSelect {
	m.Selected = removeAt(m.Selected, i)
	return m
}

// Clear empties the selection without closing the dropdown.
func (m MultiSelect) Clear() MultiSelect {
	m.Selected = nil
	return m
}

// ToggleOpen opens a closed dropdown and closes an open one.
func (m MultiSelect) ToggleOpen() MultiSelect {
	m.Open = !m.Open
	return m
}

// Escape closes the dropdown.
func (m MultiSelect) Escape() MultiSelect {
	m.Open = false
	return m
}

// Blur closes the dropdown when focus moves elsewhere.
func (m MultiSelect) Blur() MultiSelect {
	return m.Escape()
}

// Move shifts the cursor by delta, clamped to the option list.
func (m MultiSelect) Move(delta int) MultiSelect {
	m.Cursor = clamp(m.Cursor+delta, 0, len(m.Options)-1)
	return m
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
