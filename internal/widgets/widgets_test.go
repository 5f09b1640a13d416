package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datahunt/internal/filters"
)

func TestChipInput_CaseInsensitiveDedup(t *testing.T) {
	c := NewChipInput(nil).SetDraft("Manager")
	c, added := c.Commit()
	assert.True(t, added)
	assert.Empty(t, c.Draft)

	c, added = c.SetDraft("  manager ").Commit()
	assert.False(t, added)
	assert.Equal(t, []string{"Manager"}, c.Values)
	assert.Equal(t, "  manager ", c.Draft, "rejected draft stays visible")
}

func TestChipInput_BlankAndRemove(t *testing.T) {
	c, added := NewChipInput([]string{"CEO", "CTO", "CFO"}).SetDraft("   ").Commit()
	assert.False(t, added)

	c = c.Remove(1)
	assert.Equal(t, []string{"CEO", "CFO"}, c.Values)
	c = c.Remove(9)
	assert.Equal(t, []string{"CEO", "CFO"}, c.Values)
	c = c.Pop()
	assert.Equal(t, []string{"CEO"}, c.Values)
	assert.Empty(t, c.Clear().Values)
}

func TestChipInput_DoesNotAliasInput(t *testing.T) {
	src := []string{"A"}
	c := NewChipInput(src)
	c, _ = c.SetDraft("B").Commit()
	assert.Equal(t, []string{"A"}, src)
	assert.Equal(t, []string{"A", "B"}, c.Values)
}

func TestMultiSelect_Toggle(t *testing.T) {
	m := NewMultiSelect(filters.EmailValidations, nil)

	m = m.Toggle("Valid").Toggle("Risky")
	assert.Equal(t, []string{"Valid", "Risky"}, m.Selected)

	m = m.Toggle("Valid")
	assert.Equal(t, []string{"Risky"}, m.Selected)

	m = m.Toggle("Not an option")
	assert.Equal(t, []string{"Risky"}, m.Selected)
}

func TestMultiSelect_RemoveClearAndClose(t *testing.T) {
	m := NewMultiSelect(filters.CompanySizeRanges, []string{"1 - 10", "11 - 50"}).ToggleOpen()
	assert.True(t, m.Open)

	m = m.RemoveAt(0)
	assert.Equal(t, []string{"11 - 50"}, m.Selected)

	m = m.Clear()
	assert.Empty(t, m.Selected)
	assert.True(t, m.Open)

	assert.False(t, m.Escape().Open)
	assert.False(t, m.Blur().Open)
}

func TestMultiSelect_Cursor(t *testing.T) {
	m := NewMultiSelect([]string{"a", "b", "c"}, nil)
	m = m.Move(-3)
	assert.Equal(t, 0, m.Cursor)
	m = m.Move(10)
	assert.Equal(t, 2, m.Cursor)
	m = m.ToggleCursor()
	assert.True(t, m.IsSelected("c"))
}

func fiveChildren() []filters.Group {
	return []filters.Group{
		{Label: "G", Children: []string{"a", "b", "c", "d", "e"}},
		{Label: "H", Children: []string{"x"}},
	}
}

func TestNested_GroupToggleCompletesPartial(t *testing.T) {
	n := NewNestedMultiSelect(fiveChildren(), []string{"a", "c", "e"})
	assert.Equal(t, StatusPartial, n.Status(0))

	n = n.ToggleGroup(0)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, n.Selected)
	assert.Equal(t, StatusAll, n.Status(0))

	n = n.ToggleGroup(0)
	assert.Empty(t, n.Selected)
	assert.Equal(t, StatusNone, n.Status(0))
}

func TestNested_GroupToggleLeavesOtherGroups(t *testing.T) {
	n := NewNestedMultiSelect(fiveChildren(), []string{"x"})
	n = n.ToggleGroup(0).ToggleGroup(0)
	assert.Equal(t, []string{"x"}, n.Selected)
	assert.Equal(t, StatusAll, n.Status(1))
}

func TestNested_LeafAndChips(t *testing.T) {
	n := NewNestedMultiSelect(filters.Industries, nil)
	n = n.ToggleLeaf("Banking").ToggleLeaf("Music")
	assert.True(t, n.IsSelected("Banking"))

	n = n.ToggleLeaf("Banking")
	assert.Equal(t, []string{"Music"}, n.Selected)

	n = n.RemoveChip("Music")
	assert.Empty(t, n.Selected)

	n = n.ToggleLeaf("Music").Clear()
	assert.Empty(t, n.Selected)
}

func TestNested_KeyboardNavigation(t *testing.T) {
	n := NewNestedMultiSelect(fiveChildren(), nil).ToggleOpen()
	assert.True(t, n.Open)

	n = n.Move(0)
	assert.Equal(t, 0, n.Hovered)

	n = n.EnterChildren().Move(1).Activate()
	assert.Equal(t, []string{"b"}, n.Selected)

	n = n.LeaveChildren().Activate()
	assert.Equal(t, StatusAll, n.Status(0))

	n = n.Escape()
	assert.False(t, n.Open)
	assert.Equal(t, -1, n.Hovered)
}

func TestGroupStatusMark(t *testing.T) {
	assert.Equal(t, "✓", StatusAll.Mark())
	assert.Equal(t, "−", StatusPartial.Mark())
	assert.Equal(t, " ", StatusNone.Mark())
}
