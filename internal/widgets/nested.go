package widgets

import (
	"slices"

	"datahunt/internal/filters"
)

// GroupStatus is the tri-state indicator of a top-level group.
type GroupStatus int

const (
	StatusNone GroupStatus = iota
	StatusPartial
	StatusAll
)

// Mark is the checkbox glyph for a status.
func (s GroupStatus) Mark() string {
	switch s {
	case StatusAll:
		return "✓"
	case StatusPartial:
		return "−"
	}
	return " "
}

// NestedMultiSelect picks leaves from a two-level taxonomy. Selected holds
// leaf values only; groups are never stored.
type NestedMultiSelect struct {
	Groups   []filters.Group
	Selected []string
	Open     bool
	// Hovered is the group whose children are shown, -1 for none.
	Hovered int
	// Cursor indexes Groups; ChildCursor indexes the hovered group's
	// children and is -1 while focus is on the group column.
	Cursor      int
	ChildCursor int
}

// NewNestedMultiSelect builds a closed picker.
func NewNestedMultiSelect(groups []filters.Group, selected []string) NestedMultiSelect {
	return NestedMultiSelect{
		Groups:      groups,
		Selected:    slices.Clone(selected),
		Hovered:     -1,
		ChildCursor: -1,
	}
}

// ToggleLeaf adds or removes a single leaf value.
func (n NestedMultiSelect) ToggleLeaf(v string) NestedMultiSelect {
	if i := slices.Index(n.Selected, v); i >= 0 {
		n.Selected = removeAt(n.Selected, i)
		return n
	}
	n.Selected = append(slices.Clone(n.Selected), v)
	return n
}

// ToggleGroup deselects every child of group g when all are selected and
// otherwise selects the missing ones, so a partial group is completed.
func (n NestedMultiSelect) ToggleGroup(g int) NestedMultiSelect {
	if g < 0 || g >= len(n.Groups) {
		return n
	}
	children := n.Groups[g].Children
	if n.Status(g) == StatusAll {
		n.Selected = slices.DeleteFunc(slices.Clone(n.Selected), func(s string) bool {
			return slices.Contains(children, s)
		})
		return n
	}
	next := slices.Clone(n.Selected)
	for _, c := range children {
		if !slices.Contains(next, c) {
			next = append(next, c)
		}
	}
	n.Selected = next
	return n
}

// Status derives the indicator of group g from the selection.
func (n NestedMultiSelect) Status(g int) GroupStatus {
	if g < 0 || g >= len(n.Groups) {
		return StatusNone
	}
	children := n.Groups[g].Children
	count := 0
	for _, c := range children {
		if slices.Contains(n.Selected, c) {
			count++
		}
	}
	switch {
	case count == 0:
		return StatusNone
	case count == len(children):
		return StatusAll
	}
	return StatusPartial
}

// IsSelected reports whether leaf v is selected.
func (n NestedMultiSelect) IsSelected(v string) bool {
	return slices.Contains(n.Selected, v)
}

// RemoveChip drops leaf v from the selection.
func (n NestedMultiSelect) RemoveChip(v string) NestedMultiSelect {
	n.Selected = slices.DeleteFunc(slices.Clone(n.Selected), func(s string) bool { return s == v })
	return n
}

// Clear empties the selection.
func (n NestedMultiSelect) Clear() NestedMultiSelect {
	n.Selected = nil
	return n
}

// ToggleOpen opens or closes the picker.
func (n NestedMultiSelect) ToggleOpen() NestedMultiSelect {
	if n.Open {
		return n.Escape()
	}
	n.Open = true
	return n
}

// Escape closes the picker and forgets the hovered group.
func (n NestedMultiSelect) Escape() NestedMultiSelect {
	n.Open = false
	n.Hovered = -1
	n.ChildCursor = -1
	return n
}

// Blur closes the picker when focus moves elsewhere.
func (n NestedMultiSelect) Blur() NestedMultiSelect {
	return n.Escape()
}

// Hover shows the children of group g.
func (n NestedMultiSelect) Hover(g int) NestedMultiSelect {
	if g < 0 || g >= len(n.Groups) {
		return n
	}
	n.Hovered = g
	return n
}

// Move shifts whichever cursor has focus. Moving between groups also hovers
// the new group.
func (n NestedMultiSelect) Move(delta int) NestedMultiSelect {
	if n.ChildCursor >= 0 && n.Hovered >= 0 {
		n.ChildCursor = clamp(n.ChildCursor+delta, 0, len(n.Groups[n.Hovered].Children)-1)
		return n
	}
	n.Cursor = clamp(n.Cursor+delta, 0, len(n.Groups)-1)
	return n.Hover(n.Cursor)
}

// EnterChildren moves focus into the hovered group's children.
func (n NestedMultiSelect) EnterChildren() NestedMultiSelect {
	n = n.Hover(n.Cursor)
	if n.Hovered >= 0 && len(n.Groups[n.Hovered].Children) > 0 {
		n.ChildCursor = 0
	}
	return n
}

// LeaveChildren returns focus to the group column.
func (n NestedMultiSelect) LeaveChildren() NestedMultiSelect {
	n.ChildCursor = -1
	return n
}

// Activate toggles what the cursor points at: a leaf when focus is on the
// children, the whole group otherwise.
func (n NestedMultiSelect) Activate() NestedMultiSelect {
	if n.ChildCursor >= 0 && n.Hovered >= 0 {
		return n.ToggleLeaf(n.Groups[n.Hovered].Children[n.ChildCursor])
	}
	return n.ToggleGroup(n.Cursor)
}
