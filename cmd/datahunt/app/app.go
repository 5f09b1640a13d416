// Package app is the interactive DataHunt terminal client: a home page, an
// upload page and the combined search & export page.
package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/logging"
	"datahunt/internal/session"
)

// Page identifies a screen.
type Page int

const (
	PageHome Page = iota
	PageUpload
	PageContacts
)

// navItem is an entry of the header navigation.
type navItem struct {
	label  string
	page   Page
	export bool
}

var nav = []navItem{
	{label: "Home", page: PageHome},
	{label: "Upload CSV", page: PageUpload},
	{label: "Search Contacts", page: PageContacts},
	{label: "Export Contacts", page: PageContacts, export: true},
}

// Options configures the TUI.
type Options struct {
	Backend Backend
	// ExportDir receives downloaded exports.
	ExportDir string
	// MaxUploadBytes rejects larger files before upload; 0 disables.
	MaxUploadBytes int64
	Styles         ui.Styles
	// Now stamps export file names. Defaults to time.Now.
	Now func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	page     Page
	exportUI bool
	width    int
	height   int

	contacts ContactsPage
	upload   UploadPage
	help     help.Model
	styles   ui.Styles
}

// New creates the root model.
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := runner{
		backend:   opts.Backend,
		exportDir: opts.ExportDir,
		maxBytes:  opts.MaxUploadBytes,
		now:       opts.Now,
	}
	return Model{
		page:     PageHome,
		contacts: NewContactsPage(opts.Styles, r),
		upload:   NewUploadPage(opts.Styles, r),
		help:     help.New(),
		styles:   opts.Styles,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("DataHunt")
}

// Page returns the visible page.
func (m Model) Page() Page { return m.page }

// Contacts returns the contacts page.
func (m Model) Contacts() ContactsPage { return m.contacts }

// Upload returns the upload page.
func (m Model) Upload() UploadPage { return m.upload }

func (m Model) goTo(page Page, export bool) Model {
	if m.page != page {
		logging.UIDebug("page %d -> %d", m.page, page)
	}
	m.page = page
	m.exportUI = export
	if page == PageContacts && export {
		m.contacts = m.contacts.FocusExport()
	}
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.contacts = m.contacts.SetSize(msg.Width, msg.Height)
		return m, nil

	case session.SearchCompleted, session.ExportCompleted:
		m.contacts, cmd = m.contacts.Update(msg)
		return m, cmd

	case session.FileChosen, session.UploadCompleted:
		m.upload, cmd = m.upload.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, globalKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, globalKeys.Home):
			return m.goTo(PageHome, false), nil
		case key.Matches(msg, globalKeys.Upload):
			return m.goTo(PageUpload, false), nil
		case key.Matches(msg, globalKeys.Search):
			return m.goTo(PageContacts, false), nil
		case key.Matches(msg, globalKeys.Export):
			return m.goTo(PageContacts, true), nil
		}
		switch m.page {
		case PageHome:
			return m.updateHome(msg)
		case PageUpload:
			m.upload, cmd = m.upload.Update(msg)
		case PageContacts:
			m.contacts, cmd = m.contacts.Update(msg)
		}
		return m, cmd
	}

	// Spinner ticks and anything else go to both pages; each ignores what
	// is not its own.
	var cmdC, cmdU tea.Cmd
	m.contacts, cmdC = m.contacts.Update(msg)
	m.upload, cmdU = m.upload.Update(msg)
	return m, tea.Batch(cmdC, cmdU)
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, homeKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, homeKeys.Upload):
		return m.goTo(PageUpload, false), nil
	case key.Matches(msg, homeKeys.Search):
		return m.goTo(PageContacts, false), nil
	case key.Matches(msg, homeKeys.Export):
		return m.goTo(PageContacts, true), nil
	}
	return m, nil
}

// View renders the model.
func (m Model) View() string {
	var body string
	var keys help.KeyMap
	switch m.page {
	case PageUpload:
		body = m.upload.View()
		keys = uploadKeys
	case PageContacts:
		body = m.contacts.View()
		keys = contactsKeys
	default:
		body = m.homeView()
		keys = homeKeys
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.navView(),
		m.styles.Content.Render(body),
		m.styles.Footer.Render(m.help.View(keys)),
	)
}

func (m Model) navView() string {
	items := make([]string, len(nav))
	for i, n := range nav {
		active := n.page == m.page && (n.page != PageContacts || n.export == m.exportUI)
		if active {
			items[i] = m.styles.NavActive.Render(n.label)
		} else {
			items[i] = m.styles.NavItem.Render(n.label)
		}
	}
	return m.styles.Header.Render("DataHunt") + " " + strings.Join(items, " ")
}

func (m Model) homeView() string {
	var sb strings.Builder
	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Body.Render("Upload contact lists, hunt through them with filters, and export what you find."))
	sb.WriteString("\n\n")
	entries := []struct{ key, label, desc string }{
		{"u", "Upload CSV", "Import a CSV or Excel file from Seamless or Skrapp"},
		{"s", "Search Contacts", "Filter contacts by company, role, location and more"},
		{"e", "Export Contacts", "Download matching contacts as CSV or XLSX"},
	}
	for _, e := range entries {
		sb.WriteString(m.styles.Card.Render(
			m.styles.Focused.Render("["+e.key+"] ") + m.styles.Bold.Render(e.label) + "\n" +
				m.styles.Muted.Render(e.desc)))
		sb.WriteString("\n")
	}
	return sb.String()
}
