package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static rows. Cells may span several lines; each row is as
// tall as its tallest cell.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Selected highlights one row; -1 for none.
	Selected int
	// MaxWidth caps every column; 0 means unlimited.
	MaxWidth int
}

// NewTable creates a Table with the given title and headers.
func NewTable(title string, headers []string) *Table {
	return &Table{
		Title:    title,
		Headers:  headers,
		Rows:     make([][]string, 0),
		Selected: -1,
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := t.columnWidths()
	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	selStyle := styles.Focused.Padding(0, 1)
	sep := styles.Muted.Render("│")

	cells := make([]string, len(widths))
	for i := range widths {
		h := ""
		if i < len(t.Headers) {
			h = t.Headers[i]
		}
		cells[i] = headerStyle.Width(widths[i]).Render(h)
	}
	sb.WriteString(joinRow(cells, sep))
	sb.WriteString("\n")

	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for r, row := range t.Rows {
		style := rowStyle
		if r == t.Selected {
			style = selStyle
		}
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = style.Width(widths[i]).Render(cell)
		}
		sb.WriteString(joinRow(cells, sep))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Table) columnWidths() []int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	widths := make([]int, n)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if t.MaxWidth > 0 && widths[i] > t.MaxWidth {
			widths[i] = t.MaxWidth
		}
		// lipgloss widths include padding
		widths[i] += 2
	}
	return widths
}

// joinRow places multi-line cells side by side with a separator column
// repeated to the row height.
func joinRow(cells []string, sep string) string {
	height := 1
	for _, c := range cells {
		if h := lipgloss.Height(c); h > height {
			height = h
		}
	}
	seps := strings.TrimSuffix(strings.Repeat(sep+"\n", height), "\n")

	parts := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			parts = append(parts, seps)
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
