package app

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/contacts"
	"datahunt/internal/filters"
	"datahunt/internal/logging"
	"datahunt/internal/session"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

type controlKind int

const (
	ctrlText controlKind = iota
	ctrlSource
	ctrlChips
	ctrlDropdown
	ctrlFromDate
	ctrlToDate
	ctrlFormat
	ctrlMode
	ctrlResults
)

// control is one focusable element of the contacts form.
type control struct {
	kind  controlKind
	field filters.Field
	label string
}

func contactsControls() []control {
	cs := []control{{kind: ctrlSource, field: filters.SourceType, label: "Source type"}}
	for _, f := range filters.ScalarFields {
		if f == filters.SourceType {
			continue
		}
		cs = append(cs, control{kind: ctrlText, field: f, label: f.Label()})
	}
	cs = append(cs,
		control{kind: ctrlChips, field: filters.JobTitle, label: "Job titles"},
		control{kind: ctrlDropdown, field: filters.CompanyIndustry, label: "Industry"},
		control{kind: ctrlDropdown, field: filters.CompanySizeRange, label: "Company size"},
		control{kind: ctrlDropdown, field: filters.EmailValidation, label: "Email validation"},
		control{kind: ctrlFromDate, label: "From (YYYY-MM-DD)"},
		control{kind: ctrlToDate, label: "To (YYYY-MM-DD)"},
		control{kind: ctrlFormat, label: "Export format"},
		control{kind: ctrlMode, label: "Export mode"},
		control{kind: ctrlResults, label: "Results"},
	)
	return cs
}

// ContactsPage is the combined search & export view. All filter and result
// state lives in session.ContactsState; the page only owns the terminal
// widgets that edit it.
type ContactsPage struct {
	state    session.ContactsState
	controls []control
	inputs   []textinput.Model
	focus    int
	selected int

	detail   *contacts.Contact
	viewport viewport.Model
	renderer *glamour.TermRenderer

	spinner  spinner.Model
	spinning bool
	notice   string

	width  int
	height int
	styles ui.Styles
	run    runner
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 22
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// NewContactsPage creates the contacts page.
func NewContactsPage(styles ui.Styles, r runner) ContactsPage {
	p := ContactsPage{
		state:    session.NewContactsState(),
		controls: contactsControls(),
		styles:   styles,
		run:      r,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		viewport: viewport.New(80, 20),
	}
	p.inputs = make([]textinput.Model, len(p.controls))
	for i, c := range p.controls {
		switch c.kind {
		case ctrlText:
			p.inputs[i] = newTextInput(c.field.Label())
		case ctrlChips:
			p.inputs[i] = newTextInput("type a title, enter to add")
		case ctrlFromDate, ctrlToDate:
			p.inputs[i] = newTextInput("YYYY-MM-DD")
		}
	}
	p.renderer = newRenderer(styles, 76)
	p = p.setFocus(0)
	return p
}

func newRenderer(styles ui.Styles, width int) *glamour.TermRenderer {
	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.UIDebug("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// State exposes the reducer state.
func (p ContactsPage) State() session.ContactsState { return p.state }

// SetSize adapts the page to the terminal size.
func (p ContactsPage) SetSize(width, height int) ContactsPage {
	p.width, p.height = width, height
	w := width - 8
	if w < 20 {
		w = 20
	}
	p.viewport.Width = w
	p.viewport.Height = max(height-10, 5)
	p.renderer = newRenderer(p.styles, w-4)
	return p
}

// FocusExport moves focus to the export controls.
func (p ContactsPage) FocusExport() ContactsPage {
	for i, c := range p.controls {
		if c.kind == ctrlFormat {
			return p.setFocus(i)
		}
	}
	return p
}

func (p ContactsPage) setFocus(i int) ContactsPage {
	n := len(p.controls)
	i = ((i % n) + n) % n
	if p.usesInput(p.focus) {
		p.inputs[p.focus].Blur()
	}
	p.focus = i
	if p.usesInput(i) {
		p.inputs[i].Focus()
	}
	p.state, _ = session.ReduceContacts(p.state, session.CloseDropdowns{})
	return p
}

func (p ContactsPage) usesInput(i int) bool {
	switch p.controls[i].kind {
	case ctrlText, ctrlChips, ctrlFromDate, ctrlToDate:
		return true
	}
	return false
}

func (p ContactsPage) focused() control { return p.controls[p.focus] }

func (p ContactsPage) busy() bool { return p.state.Loading || p.state.Exporting }

// dispatch feeds ev to the reducer and schedules the resulting effects.
func (p ContactsPage) dispatch(ev session.Event) (ContactsPage, tea.Cmd) {
	var fx []session.Effect
	p.state, fx = session.ReduceContacts(p.state, ev)
	cmds := []tea.Cmd{p.run.run(fx)}
	if p.busy() && !p.spinning {
		p.spinning = true
		cmds = append(cmds, p.spinner.Tick)
	}
	return p, tea.Batch(cmds...)
}

// Update handles messages.
func (p ContactsPage) Update(msg tea.Msg) (ContactsPage, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if msg.ID != p.spinner.ID() {
			return p, nil
		}
		if !p.busy() {
			p.spinning = false
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case session.SearchCompleted:
		p.selected = 0
		return p.dispatch(msg)

	case session.ExportCompleted:
		return p.dispatch(msg)

	case tea.KeyMsg:
		p.notice = ""
		if p.detail != nil {
			return p.updateDetail(msg)
		}
		return p.updateKey(msg)
	}
	return p, nil
}

func (p ContactsPage) updateKey(msg tea.KeyMsg) (ContactsPage, tea.Cmd) {
	c := p.focused()

	switch {
	case key.Matches(msg, contactsKeys.Search):
		return p.dispatch(session.SearchRequested{})
	case key.Matches(msg, contactsKeys.Export):
		return p.dispatch(session.ExportRequested{})
	case key.Matches(msg, contactsKeys.Reset):
		for i := range p.inputs {
			if p.usesInput(i) {
				p.inputs[i].SetValue("")
			}
		}
		p.selected = 0
		return p.dispatch(session.ClearFilters{})
	case key.Matches(msg, contactsKeys.PrevPage):
		return p.dispatch(session.PageRequested{N: p.state.Page.CurrentPage - 1})
	case key.Matches(msg, contactsKeys.NextPage):
		return p.dispatch(session.PageRequested{N: p.state.Page.CurrentPage + 1})
	case key.Matches(msg, globalKeys.NextItem):
		return p.setFocus(p.focus + 1), nil
	case key.Matches(msg, globalKeys.PrevItem):
		return p.setFocus(p.focus - 1), nil
	}

	switch c.kind {
	case ctrlText:
		if msg.Type == tea.KeyEnter {
			return p.dispatch(session.SearchRequested{})
		}
		return p.updateInput(msg, func(v string) session.Event {
			return session.SetScalar{Field: c.field, Value: v}
		})

	case ctrlChips:
		in := p.inputs[p.focus]
		switch {
		case msg.Type == tea.KeyEnter && strings.TrimSpace(in.Value()) != "":
			var cmd tea.Cmd
			p, cmd = p.dispatch(session.ChipCommit{})
			p.inputs[p.focus].SetValue(p.state.JobTitles.Draft)
			return p, cmd
		case msg.Type == tea.KeyEnter:
			return p.dispatch(session.SearchRequested{})
		case key.Matches(msg, contactsKeys.Remove) && in.Value() == "":
			return p.dispatch(session.RemoveValue{Field: c.field, Index: len(p.state.JobTitles.Values) - 1})
		case key.Matches(msg, contactsKeys.ClearList):
			return p.dispatch(session.ClearList{Field: c.field})
		}
		return p.updateInput(msg, func(v string) session.Event {
			return session.ChipDraft{Text: v}
		})

	case ctrlDropdown:
		return p.updateDropdown(msg, c.field)

	case ctrlFromDate, ctrlToDate:
		if msg.Type == tea.KeyEnter {
			return p.dispatch(session.SearchRequested{})
		}
		start := c.kind == ctrlFromDate
		return p.updateInput(msg, func(v string) session.Event {
			v = strings.TrimSpace(v)
			if v == "" {
				if start {
					return session.ClearStartDate{}
				}
				return session.ClearEndDate{}
			}
			d, err := filters.ParseDate(v)
			if err != nil {
				// A half-edited date must not keep filtering on the old one.
				if start {
					return session.ClearStartDate{}
				}
				return session.ClearEndDate{}
			}
			if start {
				return session.SetStartDate{Date: d}
			}
			return session.SetEndDate{Date: d}
		})

	case ctrlSource:
		if d := direction(msg); d != 0 {
			next := cycle(filters.SearchSourceTypes, p.state.Filters.Scalar(filters.SourceType), d)
			return p.dispatch(session.SetScalar{Field: filters.SourceType, Value: next})
		}
		if msg.Type == tea.KeyEnter {
			return p.dispatch(session.SearchRequested{})
		}

	case ctrlFormat:
		if d := direction(msg); d != 0 {
			next := cycle([]string{string(filters.FormatCSV), string(filters.FormatXLSX)}, string(p.state.Export.Format), d)
			return p.dispatch(session.SetExportOptions{Options: filters.ExportOptions{Format: filters.Format(next)}})
		}
		if msg.Type == tea.KeyEnter {
			return p.dispatch(session.ExportRequested{})
		}

	case ctrlMode:
		if d := direction(msg); d != 0 {
			next := cycle([]string{string(filters.ModeStandard), string(filters.ModeFull)}, string(p.state.Export.Mode), d)
			return p.dispatch(session.SetExportOptions{Options: filters.ExportOptions{Mode: filters.Mode(next)}})
		}
		if msg.Type == tea.KeyEnter {
			return p.dispatch(session.ExportRequested{})
		}

	case ctrlResults:
		return p.updateResults(msg)
	}
	return p, nil
}

// updateInput forwards msg to the focused text input and, when its value
// changed, dispatches the event built by toEvent. A nil event is skipped.
func (p ContactsPage) updateInput(msg tea.KeyMsg, toEvent func(string) session.Event) (ContactsPage, tea.Cmd) {
	before := p.inputs[p.focus].Value()
	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	after := p.inputs[p.focus].Value()
	if after == before {
		return p, cmd
	}
	ev := toEvent(after)
	if ev == nil {
		return p, cmd
	}
	p, fx := p.dispatch(ev)
	return p, tea.Batch(cmd, fx)
}

func (p ContactsPage) dropdownOpen(field filters.Field) bool {
	switch field {
	case filters.CompanySizeRange:
		return p.state.SizeRanges.Open
	case filters.EmailValidation:
		return p.state.Validations.Open
	case filters.CompanyIndustry:
		return p.state.Industries.Open
	}
	return false
}

func (p ContactsPage) updateDropdown(msg tea.KeyMsg, field filters.Field) (ContactsPage, tea.Cmd) {
	open := p.dropdownOpen(field)
	switch {
	case key.Matches(msg, contactsKeys.Toggle):
		if !open {
			return p.dispatch(session.SetDropdownOpen{Field: field, Open: true})
		}
		return p.dispatch(session.ActivateCursor{Field: field})
	case key.Matches(msg, contactsKeys.Close):
		return p.dispatch(session.CloseDropdowns{})
	case key.Matches(msg, contactsKeys.Remove):
		return p.dispatch(session.RemoveValue{Field: field, Index: len(p.state.Filters.List(field)) - 1})
	case key.Matches(msg, contactsKeys.ClearList):
		return p.dispatch(session.ClearList{Field: field})
	}
	if !open {
		return p, nil
	}
	switch {
	case key.Matches(msg, contactsKeys.Up):
		return p.dispatch(session.MoveCursor{Field: field, Delta: -1})
	case key.Matches(msg, contactsKeys.Down):
		return p.dispatch(session.MoveCursor{Field: field, Delta: 1})
	case field == filters.CompanyIndustry && key.Matches(msg, contactsKeys.Right):
		return p.dispatch(session.IndustryFocusChildren{Children: true})
	case field == filters.CompanyIndustry && key.Matches(msg, contactsKeys.Left):
		return p.dispatch(session.IndustryFocusChildren{Children: false})
	}
	return p, nil
}

func (p ContactsPage) updateResults(msg tea.KeyMsg) (ContactsPage, tea.Cmd) {
	items := p.state.Results.Items
	switch {
	case key.Matches(msg, contactsKeys.Up):
		if p.selected > 0 {
			p.selected--
		}
	case key.Matches(msg, contactsKeys.Down):
		if p.selected < len(items)-1 {
			p.selected++
		}
	case key.Matches(msg, contactsKeys.Left):
		return p.dispatch(session.PageRequested{N: p.state.Page.CurrentPage - 1})
	case key.Matches(msg, contactsKeys.Right):
		return p.dispatch(session.PageRequested{N: p.state.Page.CurrentPage + 1})
	case key.Matches(msg, contactsKeys.Details):
		if p.state.Results.Visible && p.selected < len(items) {
			c := items[p.selected]
			p.detail = &c
			p.viewport.SetContent(p.renderDetail(c))
			p.viewport.GotoTop()
		}
	case key.Matches(msg, contactsKeys.Copy):
		if p.state.Results.Visible && p.selected < len(items) {
			p = p.copyEmail(items[p.selected])
		}
	}
	return p, nil
}

func (p ContactsPage) updateDetail(msg tea.KeyMsg) (ContactsPage, tea.Cmd) {
	switch {
	case key.Matches(msg, contactsKeys.Close), msg.Type == tea.KeyEnter, msg.String() == "q":
		p.detail = nil
		return p, nil
	case key.Matches(msg, contactsKeys.Copy):
		return p.copyEmail(*p.detail), nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p ContactsPage) copyEmail(c contacts.Contact) ContactsPage {
	email := c.Email()
	if email == "" {
		p.notice = p.styles.Warning.Render("This contact has no email")
		return p
	}
	if err := clipboardWriteAll(email); err != nil {
		logging.UIDebug("clipboard: %v", err)
		p.notice = p.styles.Error.Render("Failed to copy email")
		return p
	}
	p.notice = p.styles.Success.Render("Copied " + email + " to clipboard")
	return p
}

func direction(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, contactsKeys.Left):
		return -1
	case key.Matches(msg, contactsKeys.Right):
		return 1
	}
	return 0
}

// cycle returns the option d steps from current, wrapping around. An
// unknown current value starts from the first option.
func cycle(options []string, current string, d int) string {
	if len(options) == 0 {
		return ""
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+d)%n+n)%n]
}
