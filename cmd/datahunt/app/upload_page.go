package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/filters"
	"datahunt/internal/session"
)

const (
	uploadFocusPath = iota
	uploadFocusSource
	uploadFocusSubmit
	uploadFocusCount
)

// UploadPage picks a contacts file and a source type and posts them.
type UploadPage struct {
	state    session.UploadState
	path     textinput.Model
	focus    int
	spinner  spinner.Model
	spinning bool
	styles   ui.Styles
	run      runner
}

// NewUploadPage creates the upload page.
func NewUploadPage(styles ui.Styles, r runner) UploadPage {
	path := newTextInput("path/to/contacts.csv")
	path.Width = 48
	path.Focus()
	return UploadPage{
		path:    path,
		styles:  styles,
		run:     r,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
	}
}

// State exposes the reducer state.
func (p UploadPage) State() session.UploadState { return p.state }

func (p UploadPage) dispatch(ev session.Event) (UploadPage, tea.Cmd) {
	var fx []session.Effect
	p.state, fx = session.ReduceUpload(p.state, ev)
	cmds := []tea.Cmd{p.run.run(fx)}
	if p.state.Status == session.UploadInProgress && !p.spinning {
		p.spinning = true
		cmds = append(cmds, p.spinner.Tick)
	}
	return p, tea.Batch(cmds...)
}

func (p UploadPage) setFocus(i int) UploadPage {
	p.focus = ((i % uploadFocusCount) + uploadFocusCount) % uploadFocusCount
	if p.focus == uploadFocusPath {
		p.path.Focus()
	} else {
		p.path.Blur()
	}
	return p
}

// Update handles messages.
func (p UploadPage) Update(msg tea.Msg) (UploadPage, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if msg.ID != p.spinner.ID() {
			return p, nil
		}
		if p.state.Status != session.UploadInProgress {
			p.spinning = false
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case session.FileChosen, session.UploadCompleted:
		return p.dispatch(msg.(session.Event))

	case tea.KeyMsg:
		return p.updateKey(msg)
	}
	return p, nil
}

func (p UploadPage) updateKey(msg tea.KeyMsg) (UploadPage, tea.Cmd) {
	switch {
	case key.Matches(msg, uploadKeys.Submit):
		return p.dispatch(session.UploadRequested{})
	case key.Matches(msg, uploadKeys.Clear):
		p.path.SetValue("")
		return p.dispatch(session.FileCleared{})
	case key.Matches(msg, globalKeys.NextItem):
		return p.setFocus(p.focus + 1), nil
	case key.Matches(msg, globalKeys.PrevItem):
		return p.setFocus(p.focus - 1), nil
	}

	switch p.focus {
	case uploadFocusPath:
		if key.Matches(msg, uploadKeys.Browse) {
			path := strings.TrimSpace(p.path.Value())
			if path == "" {
				return p, nil
			}
			return p, p.run.inspect(path)
		}
		var cmd tea.Cmd
		p.path, cmd = p.path.Update(msg)
		return p, cmd

	case uploadFocusSource:
		if d := direction(msg); d != 0 {
			return p.dispatch(session.SourceChosen{Source: cycle(filters.UploadSourceTypes, p.state.Source, d)})
		}

	case uploadFocusSubmit:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			return p.dispatch(session.UploadRequested{})
		}
	}
	return p, nil
}

// View renders the page.
func (p UploadPage) View() string {
	s := p.styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Upload Contacts"))
	sb.WriteString("\n")
	sb.WriteString(s.Subtitle.Render("CSV or Excel files (.csv, .xlsx, .xls), up to the configured size limit."))
	sb.WriteString("\n\n")

	sb.WriteString(p.label(uploadFocusPath, "File") + p.path.View() + "\n")
	if f := p.state.File; f != nil {
		line := s.Bold.Render(f.Name) + "  " + s.Muted.Render(f.Meta())
		if f.RowsKnown {
			line += "  " + s.Muted.Render(fmt.Sprintf("%d rows", f.Rows))
		}
		sb.WriteString(strings.Repeat(" ", 20) + line + "\n")
	}
	sb.WriteString("\n")

	source := p.state.Source
	if source == "" {
		source = "select a source"
	}
	sb.WriteString(p.label(uploadFocusSource, "Source type") + selector(s, source) + "\n\n")

	button := s.Button.Render("Scan & Map")
	if p.state.Status == session.UploadInProgress {
		button = s.ButtonOff.Render(p.spinner.View() + " Uploading…")
	} else if p.focus == uploadFocusSubmit {
		button = s.Button.Underline(true).Render("Scan & Map")
	}
	sb.WriteString(strings.Repeat(" ", 20) + button + "\n\n")

	if msg := renderMessage(s, p.state.Message); msg != "" {
		sb.WriteString(msg + "\n")
	}
	return sb.String()
}

func (p UploadPage) label(focus int, text string) string {
	if p.focus == focus {
		return p.styles.Focused.Width(20).Render("› " + text)
	}
	return p.styles.Label.Width(20).Render("  " + text)
}
