package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/api"
	"datahunt/internal/contacts"
	"datahunt/internal/filters"
	"datahunt/internal/session"
)

type searchCall struct {
	Filters filters.FilterSet
	Dates   filters.DateRange
	Page    filters.Pagination
}

type fakeBackend struct {
	mu       sync.Mutex
	searches []searchCall
	exports  []filters.ExportOptions
	uploads  []string

	result    *api.SearchResult
	searchErr error
	exportErr error
	summary   *api.UploadSummary
}

func (f *fakeBackend) Search(_ context.Context, fs filters.FilterSet, dr filters.DateRange, page filters.Pagination) (*api.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{fs, dr, page})
	return f.result, f.searchErr
}

func (f *fakeBackend) Export(_ context.Context, _ filters.FilterSet, _ filters.DateRange, opts filters.ExportOptions) (*api.ExportFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exports = append(f.exports, opts)
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return &api.ExportFile{ContentType: api.MIMECSV, Data: []byte("id,email\n1,a@b.c\n")}, nil
}

func (f *fakeBackend) Upload(_ context.Context, filename, _ string, file io.Reader, source string) (*api.UploadSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, filename+":"+source)
	if f.summary == nil {
		return nil, errors.New("boom")
	}
	return f.summary, nil
}

func sampleResult(n, total int) *api.SearchResult {
	items := make([]contacts.Contact, n)
	for i := range items {
		items[i] = contacts.New(map[string]string{
			contacts.FieldID:               "c" + string(rune('0'+i)),
			contacts.FieldFirstName:        "Ada",
			contacts.FieldLastName:         "Lovelace",
			contacts.FieldEmail:            "ada@example.com",
			contacts.FieldCompanyName:      "Analytical Engines",
			contacts.FieldEmailValidation:  "Valid",
			contacts.FieldSourceType:       "seamless",
			"contact_location":             "London, UK",
			contacts.FieldCompanySizeRange: "11 - 50",
		}, map[string]string{"linkedin_url": "https://linkedin.example/ada"})
	}
	return &api.SearchResult{Items: items, Total: total, TotalReported: true}
}

func newTestModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	return New(Options{
		Backend:        backend,
		ExportDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		Styles:         ui.NewStyles(ui.LightTheme()),
		Now:            func() time.Time { return time.UnixMilli(1700000000000) },
	})
}

// drain runs cmd and every command it produces, feeding messages back into
// the model. Spinner ticks are dropped so the loop terminates.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, out := m.Update(msg)
			m = next.(Model)
			queue = append(queue, out)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlE    = tea.KeyMsg{Type: tea.KeyCtrlE}
	keyCtrlR    = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCtrlU    = tea.KeyMsg{Type: tea.KeyCtrlU}
	keyPgDown   = tea.KeyMsg{Type: tea.KeyPgDown}
	keyBack     = tea.KeyMsg{Type: tea.KeyBackspace}
	keyF2       = tea.KeyMsg{Type: tea.KeyF2}
	keyF3       = tea.KeyMsg{Type: tea.KeyF3}
	keyF4       = tea.KeyMsg{Type: tea.KeyF4}
)

// focusOn tabs until the contacts page focuses the control matching pred.
func focusOn(t *testing.T, m Model, pred func(control) bool) Model {
	t.Helper()
	for i := 0; i < len(m.contacts.controls); i++ {
		if pred(m.contacts.focused()) {
			return m
		}
		m = press(t, m, keyTab)
	}
	t.Fatalf("no control matched")
	return m
}

func field(f filters.Field) func(control) bool {
	return func(c control) bool { return c.field == f }
}

func kind(k controlKind) func(control) bool {
	return func(c control) bool { return c.kind == k }
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	assert.Equal(t, PageHome, m.Page())
	assert.Contains(t, m.View(), ui.Tagline)

	m = press(t, m, keyF2)
	assert.Equal(t, PageUpload, m.Page())
	assert.Contains(t, m.View(), "Upload Contacts")

	m = press(t, m, keyF4)
	assert.Equal(t, PageContacts, m.Page())
	assert.Equal(t, ctrlFormat, m.contacts.focused().kind, "export nav focuses export options")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	_ = next
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeShortcuts(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, PageContacts, m.Page())
}

func TestSearch_TypedFiltersReachBackend(t *testing.T) {
	backend := &fakeBackend{result: sampleResult(3, 120)}
	m := press(t, newTestModel(t, backend), keyF3)

	m = focusOn(t, m, field(filters.FirstName))
	m = typeText(t, m, "Ada")
	m = press(t, m, keyEnter)

	require.Len(t, backend.searches, 1)
	call := backend.searches[0]
	assert.Equal(t, "Ada", call.Filters.Scalar(filters.FirstName))
	assert.Equal(t, "all", call.Filters.Scalar(filters.SourceType))
	assert.Equal(t, filters.Pagination{Limit: 50, Offset: 0}, call.Page)

	st := m.Contacts().State()
	assert.False(t, st.Loading)
	assert.Equal(t, 120, st.Page.Total)

	view := m.View()
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "COMPANY LOCATION")
	assert.Contains(t, view, "Analytical Engines")
}

func TestSearch_PagingUsesLiveFilters(t *testing.T) {
	backend := &fakeBackend{result: sampleResult(2, 120)}
	m := press(t, newTestModel(t, backend), keyF3, keyCtrlS)

	m = focusOn(t, m, field(filters.Email))
	m = typeText(t, m, "x@y.z")
	m = press(t, m, keyPgDown)

	require.Len(t, backend.searches, 2)
	assert.Equal(t, 50, backend.searches[1].Page.Offset)
	assert.Equal(t, "x@y.z", backend.searches[1].Filters.Scalar(filters.Email))
	assert.Equal(t, 2, m.Contacts().State().Page.CurrentPage)
}

func TestSearch_ErrorIsShown(t *testing.T) {
	backend := &fakeBackend{searchErr: &api.Error{Op: api.OpSearch, Kind: api.KindInvalidParameters, StatusCode: 422}}
	m := press(t, newTestModel(t, backend), keyF3, keyCtrlS)

	st := m.Contacts().State()
	assert.False(t, st.Loading)
	assert.Equal(t, session.MsgError, st.Message.Kind)
	assert.Contains(t, m.View(), "Invalid search parameters")
}

func TestChipsAndDropdowns(t *testing.T) {
	backend := &fakeBackend{result: sampleResult(1, 1)}
	m := press(t, newTestModel(t, backend), keyF3)

	m = focusOn(t, m, kind(ctrlChips))
	m = typeText(t, m, "Manager")
	m = press(t, m, keyEnter)
	m = typeText(t, m, "manager")
	m = press(t, m, keyEnter)
	assert.Equal(t, []string{"Manager"}, m.Contacts().State().Filters.List(filters.JobTitle))

	m = focusOn(t, m, field(filters.CompanySizeRange))
	m = press(t, m, keyEnter) // open
	assert.Contains(t, m.View(), filters.CompanySizeRanges[0])
	m = press(t, m, keyDown, keyEnter)
	assert.Equal(t, []string{filters.CompanySizeRanges[1]}, m.Contacts().State().Filters.List(filters.CompanySizeRange))
	m = press(t, m, keyEsc)
	assert.False(t, m.Contacts().State().SizeRanges.Open)

	m = focusOn(t, m, field(filters.CompanyIndustry))
	m = press(t, m, keyEnter, keyEnter) // open, toggle first group
	assert.Len(t, m.Contacts().State().Filters.List(filters.CompanyIndustry), len(filters.Industries[0].Children))

	m = press(t, m, keyCtrlS)
	require.Len(t, backend.searches, 1)
	assert.Equal(t, []string{"Manager"}, backend.searches[0].Filters.List(filters.JobTitle))
}

func TestDateInputs(t *testing.T) {
	m := press(t, newTestModel(t, &fakeBackend{}), keyF3)

	m = focusOn(t, m, kind(ctrlToDate))
	m = typeText(t, m, "2024-01-31")
	require.NotNil(t, m.Contacts().State().Dates.End)

	m = press(t, m, keyShiftTab)
	m = typeText(t, m, "2024-02-01")
	assert.Nil(t, m.Contacts().State().Dates.Start, "start after end is refused")
	assert.Contains(t, m.View(), "after To 2024-01-31")
}

func TestDateInputs_PartialEditDropsBound(t *testing.T) {
	m := press(t, newTestModel(t, &fakeBackend{}), keyF3)

	m = focusOn(t, m, kind(ctrlFromDate))
	m = typeText(t, m, "2024-01-10")
	require.NotNil(t, m.Contacts().State().Dates.Start)

	m = press(t, m, keyBack)
	assert.Nil(t, m.Contacts().State().Dates.Start, "2024-01-1 must not keep filtering on the old date")
	assert.Contains(t, m.View(), "not applied")

	m = typeText(t, m, "5")
	require.NotNil(t, m.Contacts().State().Dates.Start)
	assert.Equal(t, "2024-01-15", m.Contacts().State().Dates.Start.String())
}

func TestExport_RefusedBeforeSearch(t *testing.T) {
	backend := &fakeBackend{}
	m := press(t, newTestModel(t, backend), keyF3, keyCtrlE)

	assert.Empty(t, backend.exports)
	assert.Equal(t, api.MsgNothingToExport, m.Contacts().State().Message.Text)
}

func TestExport_WritesFile(t *testing.T) {
	backend := &fakeBackend{result: sampleResult(2, 75)}
	m := newTestModel(t, backend)
	m = press(t, m, keyF4, keyRight) // xlsx
	m = press(t, m, keyCtrlS, keyCtrlE)

	require.Len(t, backend.exports, 1)
	assert.Equal(t, filters.FormatXLSX, backend.exports[0].Format)

	st := m.Contacts().State()
	assert.False(t, st.Exporting)
	assert.Equal(t, "Successfully exported 75 contacts matching your filters!", st.Message.Text)
	assert.Equal(t, "contacts_export_1700000000000.xlsx", filepath.Base(st.Message.Detail))
	data, err := os.ReadFile(st.Message.Detail)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,email"))
}

func TestExport_Failure(t *testing.T) {
	backend := &fakeBackend{result: sampleResult(1, 1), exportErr: &api.Error{Op: api.OpExport, Kind: api.KindServerError, StatusCode: 500, Status: "Internal Server Error"}}
	m := press(t, newTestModel(t, backend), keyF3, keyCtrlS, keyCtrlE)

	st := m.Contacts().State()
	assert.False(t, st.Exporting)
	assert.Equal(t, "Export failed: 500 Internal Server Error", st.Message.Text)
}

func TestClearFilters_ResetsInputs(t *testing.T) {
	backend := &fakeBackend{result: sampleResult(1, 1)}
	m := press(t, newTestModel(t, backend), keyF3)
	m = focusOn(t, m, field(filters.CompanyName))
	m = typeText(t, m, "Acme")
	m = press(t, m, keyCtrlS, keyCtrlR)

	st := m.Contacts().State()
	assert.Empty(t, st.Filters.Scalar(filters.CompanyName))
	assert.False(t, st.Results.Visible)
	assert.Equal(t, "", m.contacts.inputs[m.contacts.focus].Value())
}

func TestDetailModalAndClipboard(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWriteAll = orig })

	backend := &fakeBackend{result: sampleResult(2, 2)}
	m := press(t, newTestModel(t, backend), keyF3, keyCtrlS)
	m = focusOn(t, m, kind(ctrlResults))

	m = press(t, m, keyDown, keyEnter)
	require.NotNil(t, m.contacts.detail)
	assert.Equal(t, "c1", m.contacts.detail.ID())
	assert.Contains(t, m.View(), "Extra details")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Equal(t, "ada@example.com", copied)
	assert.Contains(t, m.View(), "Copied ada@example.com")

	m = press(t, m, keyEsc)
	assert.Nil(t, m.contacts.detail)
}

func TestDetailMarkdown(t *testing.T) {
	c := contacts.New(map[string]string{contacts.FieldFirstName: "Ada"}, nil)
	assert.Contains(t, detailMarkdown(c), contacts.NoExtraMessage)

	c = contacts.New(nil, map[string]string{"phone_number": "", "notes": "a|b"})
	md := detailMarkdown(c)
	assert.Contains(t, md, "## N/A")
	assert.Contains(t, md, "| Phone Number | N/A |")
	assert.Contains(t, md, `| Notes | a\|b |`)
}

func TestUploadFlow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("email\na@b.c\nd@e.f\n"), 0644))

	backend := &fakeBackend{summary: &api.UploadSummary{TotalRows: 2, ImportedRows: 1, SkippedExistingInDB: 1}}
	m := press(t, newTestModel(t, backend), keyF2)

	m = press(t, m, keyCtrlU)
	assert.Equal(t, "Please select a file first!", m.Upload().State().Message.Text)

	m = typeText(t, m, path)
	m = press(t, m, keyEnter)
	up := m.Upload().State()
	require.NotNil(t, up.File)
	assert.Equal(t, 2, up.File.Rows)
	assert.Contains(t, m.View(), "leads.csv")

	m = press(t, m, keyCtrlU)
	assert.Equal(t, "Please select a source type!", m.Upload().State().Message.Text)

	m = press(t, m, keyTab, keyRight)
	assert.Equal(t, "seamless", m.Upload().State().Source)
	m = press(t, m, keyRight, keyRight)
	assert.Equal(t, "seamless", m.Upload().State().Source, "wraps around")

	m = press(t, m, keyCtrlU)
	require.Equal(t, []string{"leads.csv:seamless"}, backend.uploads)
	up = m.Upload().State()
	assert.Equal(t, session.UploadSucceeded, up.Status)
	assert.Contains(t, up.Message.Text, "Total records 2")
}

func TestUploadFlow_RejectsWrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	m := press(t, newTestModel(t, &fakeBackend{}), keyF2)
	m = typeText(t, m, path)
	m = press(t, m, keyEnter)

	assert.Nil(t, m.Upload().State().File)
	assert.Contains(t, m.View(), "Please upload a valid CSV or Excel file")
}

func TestUploadFlow_FailureIsGeneric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("email\na@b.c\n"), 0644))

	m := press(t, newTestModel(t, &fakeBackend{}), keyF2)
	m = typeText(t, m, path)
	m = press(t, m, keyEnter, keyTab, keyRight, keyCtrlU)

	up := m.Upload().State()
	assert.Equal(t, session.UploadFailed, up.Status)
	assert.Equal(t, "Upload failed. Please try again.", up.Message.Text)
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}
	assert.Equal(t, "b", cycle(opts, "a", 1))
	assert.Equal(t, "c", cycle(opts, "a", -1))
	assert.Equal(t, "a", cycle(opts, "zzz", 1))
	assert.Equal(t, "", cycle(nil, "a", 1))
}
