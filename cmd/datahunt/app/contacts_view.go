package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/contacts"
	"datahunt/internal/filters"
	"datahunt/internal/session"
)

// Results table columns.
var resultColumns = []string{
	"COMPANY", "CONTACT INFO", "COMPANY LOCATION", "CONTACT LOCATION",
	"COMPANY DETAILS", "SOURCE", "ACTIONS",
}

const formColumns = 3

// View renders the page.
func (p ContactsPage) View() string {
	if p.detail != nil {
		return p.detailView()
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Search & Export Contacts"))
	sb.WriteString("\n")
	sb.WriteString(p.formView())
	sb.WriteString("\n")
	sb.WriteString(p.actionsView())
	sb.WriteString("\n")
	if msg := renderMessage(p.styles, p.state.Message); msg != "" {
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	if p.notice != "" {
		sb.WriteString(p.notice)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(p.resultsView())
	return sb.String()
}

func (p ContactsPage) formView() string {
	var cells, rows []string
	var below []string
	for i, c := range p.controls {
		if c.kind == ctrlResults || c.kind == ctrlFormat || c.kind == ctrlMode {
			continue
		}
		cell := p.controlView(i)
		if c.kind == ctrlDropdown && p.dropdownOpen(c.field) {
			below = append(below, p.dropdownPanel(c.field))
		}
		cells = append(cells, lipgloss.NewStyle().Width(34).Render(cell))
		if len(cells) == formColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, below...)
	return strings.Join(rows, "\n")
}

func (p ContactsPage) label(i int) string {
	c := p.controls[i]
	if i == p.focus {
		return p.styles.Focused.Width(18).Render("› " + c.label)
	}
	return p.styles.Label.Render("  " + c.label)
}

func (p ContactsPage) controlView(i int) string {
	c := p.controls[i]
	label := p.label(i)
	switch c.kind {
	case ctrlText:
		return label + "\n  " + p.inputs[i].View()

	case ctrlSource:
		return label + "\n  " + selector(p.styles, p.state.Filters.Scalar(filters.SourceType))

	case ctrlChips:
		chips := p.chipsView(p.state.JobTitles.Values)
		return label + "\n  " + p.inputs[i].View() + chips

	case ctrlDropdown:
		values := p.state.Filters.List(c.field)
		summary := p.styles.Muted.Render("select…")
		if len(values) > 0 {
			summary = fmt.Sprintf("%d selected", len(values))
		}
		return label + "\n  " + summary + p.chipsView(values)

	case ctrlFromDate:
		return label + "\n  " + p.inputs[i].View() + p.dateHint(i, true)

	case ctrlToDate:
		return label + "\n  " + p.inputs[i].View() + p.dateHint(i, false)

	case ctrlFormat:
		return label + " " + selector(p.styles, string(p.state.Export.Format))

	case ctrlMode:
		return label + " " + selector(p.styles, string(p.state.Export.Mode))
	}
	return label
}

func selector(s ui.Styles, value string) string {
	return s.Muted.Render("‹ ") + s.Bold.Render(value) + s.Muted.Render(" ›")
}

func (p ContactsPage) chipsView(values []string) string {
	if len(values) == 0 {
		return ""
	}
	chips := make([]string, len(values))
	for i, v := range values {
		chips[i] = p.styles.Chip.Render(v + " ×")
	}
	return "\n  " + lipgloss.NewStyle().Width(32).Render(strings.Join(chips, ""))
}

// dateHint explains why a typed date is not the one being applied.
func (p ContactsPage) dateHint(i int, start bool) string {
	v := strings.TrimSpace(p.inputs[i].Value())
	if v == "" {
		return ""
	}
	d, err := filters.ParseDate(v)
	if err != nil {
		return "\n  " + p.styles.Muted.Render("YYYY-MM-DD, not applied")
	}
	applied, other := p.state.Dates.Start, p.state.Dates.End
	if !start {
		applied, other = other, applied
	}
	if applied != nil && *applied == d {
		return ""
	}
	hint := "out of range"
	switch {
	case start && other != nil:
		hint = "after To " + other.String()
	case !start && other != nil:
		hint = "before From " + other.String()
	}
	if applied != nil {
		hint += ", keeping " + applied.String()
	}
	return "\n  " + p.styles.Warning.Render(hint)
}

func (p ContactsPage) dropdownPanel(field filters.Field) string {
	var lines []string
	switch field {
	case filters.CompanySizeRange:
		lines = p.flatOptions(p.state.SizeRanges.Options, p.state.SizeRanges.Cursor, p.state.SizeRanges.IsSelected)
	case filters.EmailValidation:
		lines = p.flatOptions(p.state.Validations.Options, p.state.Validations.Cursor, p.state.Validations.IsSelected)
	case filters.CompanyIndustry:
		lines = p.industryOptions()
	}
	return p.styles.Card.Render(field.Label() + "\n" + strings.Join(lines, "\n"))
}

func (p ContactsPage) flatOptions(options []string, cursor int, selected func(string) bool) []string {
	lines := make([]string, len(options))
	for i, o := range options {
		lines[i] = p.optionLine(checkbox(selected(o)), o, i == cursor)
	}
	return lines
}

func (p ContactsPage) industryOptions() []string {
	n := p.state.Industries
	var lines []string
	for g, group := range n.Groups {
		onGroup := g == n.Cursor && n.ChildCursor < 0
		lines = append(lines, p.optionLine("["+n.Status(g).Mark()+"]", group.Label, onGroup))
		if g != n.Hovered {
			continue
		}
		for c, child := range group.Children {
			onChild := c == n.ChildCursor
			lines = append(lines, "    "+p.optionLine(checkbox(n.IsSelected(child)), child, onChild))
		}
	}
	return lines
}

func (p ContactsPage) optionLine(mark, text string, cursor bool) string {
	if cursor {
		return p.styles.OptionCursor.Render("› " + mark + " " + text)
	}
	return p.styles.Option.Render("  " + mark + " " + text)
}

func checkbox(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

func (p ContactsPage) actionsView() string {
	search := p.styles.Button.Render("Search")
	if p.state.Loading {
		search = p.styles.ButtonOff.Render(p.spinner.View() + " Searching…")
	}
	export := p.styles.Button.Render("Export")
	if p.state.Exporting {
		export = p.styles.ButtonOff.Render(p.spinner.View() + " Exporting…")
	} else if p.state.Page.Total == 0 {
		export = p.styles.ButtonOff.Render("Export")
	}
	var exportOpts []string
	for i, c := range p.controls {
		if c.kind == ctrlFormat || c.kind == ctrlMode {
			exportOpts = append(exportOpts, p.controlView(i))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		search, "  ", export, "  ", strings.Join(exportOpts, "  "))
}

func renderMessage(s ui.Styles, m session.Message) string {
	if m.IsZero() {
		return ""
	}
	var text string
	switch m.Kind {
	case session.MsgError:
		text = s.Error.Render(m.Text)
	case session.MsgWarning:
		text = s.Warning.Render(m.Text)
	case session.MsgSuccess:
		text = s.Success.Render(m.Text)
	default:
		text = s.Info.Render(m.Text)
	}
	if m.Detail != "" {
		text += " " + s.Muted.Render(m.Detail)
	}
	return text
}

func (p ContactsPage) resultsView() string {
	res := p.state.Results
	if !res.Visible || res.Empty() {
		return ""
	}
	pg := p.state.Page

	var sb strings.Builder
	header := fmt.Sprintf("Page %d of %d", pg.CurrentPage, pg.DisplayTotalPages())
	total := fmt.Sprintf("%d contacts", res.Total)
	if !res.TotalReported {
		total += " (this page)"
	}
	sb.WriteString(p.styles.Bold.Render(header) + "  " + p.styles.Muted.Render(total))
	sb.WriteString("\n")

	table := ui.NewTable("", resultColumns)
	table.MaxWidth = 28
	if p.focused().kind == ctrlResults {
		table.Selected = p.selected
	}
	for _, c := range res.Items {
		table.AddRow(p.contactRow(c)...)
	}
	sb.WriteString(table.View(p.styles))

	prev := p.styles.ButtonOff.Render("‹ Prev")
	if pg.HasPrev() {
		prev = p.styles.Button.Render("‹ Prev")
	}
	next := p.styles.ButtonOff.Render("Next ›")
	if pg.HasNext() {
		next = p.styles.Button.Render("Next ›")
	}
	sb.WriteString(prev + "  " + next)
	return sb.String()
}

func (p ContactsPage) contactRow(c contacts.Contact) []string {
	company := contacts.OrNA(c.Field(contacts.FieldCompanyName))
	if ind := c.Field(contacts.FieldCompanyIndustry); ind != "" {
		company += "\n" + p.styles.Muted.Render(ind)
	}

	name := strings.TrimSpace(c.FullName())
	info := []string{contacts.OrNA(name)}
	if title := c.Field(contacts.FieldJobTitle); title != "" {
		info = append(info, title)
	}
	info = append(info, contacts.OrNA(c.Email()))
	info = append(info, p.styles.EmailBadge(c.Field(contacts.FieldEmailValidation)))
	if ai := c.Field(contacts.FieldEmailTotalAI); ai != "" {
		info = append(info, p.styles.Muted.Render("AI: "+ai))
	}

	details := []string{contacts.StaffLine(c)}
	if r := contacts.SizeRangeLine(c); r != "" {
		details = append(details, r)
	}
	details = append(details, "Added "+contacts.FormatDate(c.Field(contacts.FieldCreatedDate)))

	source := p.styles.SourceBadge(c.Field(contacts.FieldSourceType))
	if last := c.Field(contacts.FieldLastUploadSource); last != "" {
		source += "\n" + p.styles.Muted.Render(last)
	}

	return []string{
		company,
		strings.Join(info, "\n"),
		contacts.Resolve(c, contacts.PrefixCompany).Display(),
		contacts.Resolve(c, contacts.PrefixContact).Display(),
		strings.Join(details, "\n"),
		source,
		"⏎ View extra\ny Copy email",
	}
}

// detailMarkdown is the content of the "extra" modal.
func detailMarkdown(c contacts.Contact) string {
	var sb strings.Builder
	name := strings.TrimSpace(c.FullName())
	sb.WriteString("## " + contacts.OrNA(name) + "\n\n")
	if email := c.Email(); email != "" {
		sb.WriteString("**Email:** " + email + "\n\n")
	}

	entries := c.Extra()
	if len(entries) == 0 {
		sb.WriteString("_" + contacts.NoExtraMessage + "_\n")
		return sb.String()
	}
	sb.WriteString("| Field | Value |\n|---|---|\n")
	for _, e := range entries {
		v := strings.ReplaceAll(contacts.OrNA(e.Value), "|", `\|`)
		v = strings.ReplaceAll(v, "\n", " ")
		fmt.Fprintf(&sb, "| %s | %s |\n", contacts.FormatFieldName(e.Key), v)
	}
	return sb.String()
}

func (p ContactsPage) renderDetail(c contacts.Contact) string {
	md := detailMarkdown(c)
	if p.renderer == nil {
		return md
	}
	out, err := p.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (p ContactsPage) detailView() string {
	body := p.styles.Title.Render("Extra details") + "\n" +
		p.viewport.View() + "\n" +
		p.styles.Muted.Render("esc close • y copy email • ↑/↓ scroll")
	if p.notice != "" {
		body += "\n" + p.notice
	}
	return p.styles.Modal.Render(body)
}
