package session

import (
	"fmt"
	"slices"

	"datahunt/internal/api"
	"datahunt/internal/filters"
	"datahunt/internal/logging"
	"datahunt/internal/results"
	"datahunt/internal/widgets"
)

// ContactsState is everything the combined search & export view holds.
//
// The list-valued filters are owned by their widgets; Filters always carries
// a copy of the widget selections so the compiled query matches what is on
// screen.
type ContactsState struct {
	Filters filters.FilterSet
	Dates   filters.DateRange

	JobTitles   widgets.ChipInput
	SizeRanges  widgets.MultiSelect
	Validations widgets.MultiSelect
	Industries  widgets.NestedMultiSelect

	Page    results.PageState
	Results results.Store
	Export  filters.ExportOptions

	Loading   bool
	Exporting bool
	Message   Message

	// Seq identifies the most recent search. Completions carrying an older
	// sequence are discarded so a slow response can never overwrite a newer
	// one.
	Seq uint64
}

// NewContactsState is the state of a freshly opened view.
func NewContactsState() ContactsState {
	return ContactsState{
		Filters:     filters.Defaults(),
		JobTitles:   widgets.NewChipInput(nil),
		SizeRanges:  widgets.NewMultiSelect(filters.CompanySizeRanges, nil),
		Validations: widgets.NewMultiSelect(filters.EmailValidations, nil),
		Industries:  widgets.NewNestedMultiSelect(filters.Industries, nil),
		Page:        results.NewPageState(),
		Export:      filters.ExportOptions{Format: filters.FormatCSV, Mode: filters.ModeStandard},
	}
}

// =============================================================================
// EVENTS
// =============================================================================

// SetScalar edits a single-valued filter.
type SetScalar struct {
	Field filters.Field
	Value string
}

// SetList replaces a list filter wholesale (used by the CLI flags).
type SetList struct {
	Field  filters.Field
	Values []string
}

// ChipDraft updates the job title being typed.
type ChipDraft struct{ Text string }

// ChipCommit adds the draft as a job title chip (Enter).
type ChipCommit struct{}

// RemoveValue drops the i-th value of a list filter.
type RemoveValue struct {
	Field filters.Field
	Index int
}

// ClearList empties a list filter.
type ClearList struct{ Field filters.Field }

// ToggleOption toggles one option of a dropdown; for company_industry it
// toggles a single sub-industry.
type ToggleOption struct {
	Field  filters.Field
	Option string
}

// ToggleIndustryGroup bulk-toggles every sub-industry of a group.
type ToggleIndustryGroup struct{ Index int }

// SetDropdownOpen opens or closes one dropdown. Opening one closes the others.
type SetDropdownOpen struct {
	Field filters.Field
	Open  bool
}

// CloseDropdowns closes every dropdown (Escape, focus moving away).
type CloseDropdowns struct{}

// MoveCursor moves the highlighted option of an open dropdown.
type MoveCursor struct {
	Field filters.Field
	Delta int
}

// ActivateCursor toggles the highlighted option of an open dropdown.
type ActivateCursor struct{ Field filters.Field }

// IndustryFocusChildren moves keyboard focus into (true) or out of (false)
// the hovered industry's sub-industries.
type IndustryFocusChildren struct{ Children bool }

// SetStartDate and SetEndDate pick a bound; picks that would invert the
// range are ignored.
type SetStartDate struct{ Date filters.Date }
type SetEndDate struct{ Date filters.Date }

// ClearStartDate and ClearEndDate drop one bound.
type ClearStartDate struct{}
type ClearEndDate struct{}

// ClearDates drops both bounds.
type ClearDates struct{}

// SetExportOptions chooses the export format and mode.
type SetExportOptions struct{ Options filters.ExportOptions }

// SearchRequested starts a fresh search from page 1.
type SearchRequested struct{}

// PageRequested moves to page N and re-runs the search with the filters as
// they are now, which may differ from those that produced the visible page.
type PageRequested struct{ N int }

// SearchCompleted delivers the outcome of a FetchSearch effect.
type SearchCompleted struct {
	Seq    uint64
	Result *api.SearchResult
	Err    error
}

// ExportRequested asks for an export of everything matching the filters.
type ExportRequested struct{}

// ExportCompleted delivers the outcome of a FetchExport effect.
type ExportCompleted struct {
	Requested int
	Path      string
	Err       error
}

// ClearFilters resets the view to its initial state.
type ClearFilters struct{}

func (SetScalar) isEvent()             {}
func (SetList) isEvent()               {}
func (ChipDraft) isEvent()             {}
func (ChipCommit) isEvent()            {}
func (RemoveValue) isEvent()           {}
func (ClearList) isEvent()             {}
func (ToggleOption) isEvent()          {}
func (ToggleIndustryGroup) isEvent()   {}
func (SetDropdownOpen) isEvent()       {}
func (CloseDropdowns) isEvent()        {}
func (MoveCursor) isEvent()            {}
func (ActivateCursor) isEvent()        {}
func (IndustryFocusChildren) isEvent() {}
func (SetStartDate) isEvent()          {}
func (SetEndDate) isEvent()            {}
func (ClearStartDate) isEvent()        {}
func (ClearEndDate) isEvent()          {}
func (ClearDates) isEvent()            {}
func (SetExportOptions) isEvent()      {}
func (SearchRequested) isEvent()       {}
func (PageRequested) isEvent()         {}
func (SearchCompleted) isEvent()       {}
func (ExportRequested) isEvent()       {}
func (ExportCompleted) isEvent()       {}
func (ClearFilters) isEvent()          {}

// =============================================================================
// EFFECTS
// =============================================================================

// FetchSearch asks the caller to run a search and reply with SearchCompleted
// carrying the same Seq.
type FetchSearch struct {
	Seq     uint64
	Filters filters.FilterSet
	Dates   filters.DateRange
	Page    filters.Pagination
}

// FetchExport asks the caller to run an export and reply with ExportCompleted.
type FetchExport struct {
	Filters       filters.FilterSet
	Dates         filters.DateRange
	Options       filters.ExportOptions
	ExpectedTotal int
}

func (FetchSearch) isEffect() {}
func (FetchExport) isEffect() {}

// =============================================================================
// REDUCER
// =============================================================================

// ReduceContacts applies ev to s.
func ReduceContacts(s ContactsState, ev Event) (ContactsState, []Effect) {
	switch ev := ev.(type) {
	case SetScalar:
		s.Filters = s.Filters.WithScalar(ev.Field, ev.Value)
		s.Message = Message{}

	case SetList:
		s = s.setList(ev.Field, ev.Values)
		s.Message = Message{}

	case ChipDraft:
		s.JobTitles = s.JobTitles.SetDraft(ev.Text)

	case ChipCommit:
		var added bool
		s.JobTitles, added = s.JobTitles.Commit()
		if added {
			s = s.syncLists()
			s.Message = Message{}
		}

	case RemoveValue:
		s = s.removeValue(ev.Field, ev.Index)

	case ClearList:
		s = s.setList(ev.Field, nil)

	case ToggleOption:
		s = s.toggle(ev.Field, ev.Option)

	case ToggleIndustryGroup:
		s.Industries = s.Industries.ToggleGroup(ev.Index)
		s = s.syncLists()
		s.Message = Message{}

	case SetDropdownOpen:
		s = s.closeDropdowns()
		if ev.Open {
			switch ev.Field {
			case filters.CompanySizeRange:
				s.SizeRanges.Open = true
			case filters.EmailValidation:
				s.Validations.Open = true
			case filters.CompanyIndustry:
				s.Industries = s.Industries.ToggleOpen()
			}
		}

	case CloseDropdowns:
		s = s.closeDropdowns()

	case MoveCursor:
		switch ev.Field {
		case filters.CompanySizeRange:
			s.SizeRanges = s.SizeRanges.Move(ev.Delta)
		case filters.EmailValidation:
			s.Validations = s.Validations.Move(ev.Delta)
		case filters.CompanyIndustry:
			s.Industries = s.Industries.Move(ev.Delta)
		}

	case ActivateCursor:
		switch ev.Field {
		case filters.CompanySizeRange:
			s.SizeRanges = s.SizeRanges.ToggleCursor()
		case filters.EmailValidation:
			s.Validations = s.Validations.ToggleCursor()
		case filters.CompanyIndustry:
			s.Industries = s.Industries.Activate()
		}
		s = s.syncLists()
		s.Message = Message{}

	case IndustryFocusChildren:
		if ev.Children {
			s.Industries = s.Industries.EnterChildren()
		} else {
			s.Industries = s.Industries.LeaveChildren()
		}

	case SetStartDate:
		if dr, ok := s.Dates.WithStart(ev.Date); ok {
			s.Dates = dr
			s.Message = Message{}
		}

	case SetEndDate:
		if dr, ok := s.Dates.WithEnd(ev.Date); ok {
			s.Dates = dr
			s.Message = Message{}
		}

	case ClearStartDate:
		s.Dates = s.Dates.ClearStart()

	case ClearEndDate:
		s.Dates = s.Dates.ClearEnd()

	case ClearDates:
		s.Dates = filters.DateRange{}

	case SetExportOptions:
		if ev.Options.Format != "" {
			s.Export.Format = ev.Options.Format
		}
		if ev.Options.Mode != "" {
			s.Export.Mode = ev.Options.Mode
		}

	case SearchRequested:
		s.Page.CurrentPage = 1
		return s.startSearch()

	case PageRequested:
		if !s.Page.CanGoTo(ev.N) {
			return s, nil
		}
		s.Page.CurrentPage = ev.N
		return s.startSearch()

	case SearchCompleted:
		return s.completeSearch(ev), nil

	case ExportRequested:
		return s.startExport()

	case ExportCompleted:
		s.Exporting = false
		if ev.Err != nil {
			logging.ExportError("export failed: %v", ev.Err)
			s.Message = failure(api.UserMessage(api.OpExport, ev.Err))
			return s, nil
		}
		s.Message = success(fmt.Sprintf("Successfully exported %d contacts matching your filters!", ev.Requested))
		s.Message.Detail = ev.Path

	case ClearFilters:
		next := NewContactsState()
		next.Export = s.Export
		next.Exporting = s.Exporting
		// Bumping the sequence drops any search still in flight.
		next.Seq = s.Seq + 1
		return next, nil
	}
	return s, nil
}

func (s ContactsState) startSearch() (ContactsState, []Effect) {
	s.Seq++
	s.Loading = true
	s.Results.Visible = false
	s.Message = Message{}
	s = s.closeDropdowns()
	logging.SearchDebug("search #%d page %d", s.Seq, s.Page.CurrentPage)
	return s, []Effect{FetchSearch{
		Seq:     s.Seq,
		Filters: s.Filters,
		Dates:   s.Dates,
		Page:    s.Page.Pagination(),
	}}
}

func (s ContactsState) completeSearch(ev SearchCompleted) ContactsState {
	if ev.Seq != s.Seq {
		logging.SearchDebug("dropping stale search #%d (current #%d)", ev.Seq, s.Seq)
		return s
	}
	s.Loading = false

	if ev.Err != nil || ev.Result == nil {
		s.Results = results.Store{}
		s.Message = failure(api.UserMessage(api.OpSearch, ev.Err))
		return s
	}

	s.Results = results.Store{
		Items:         ev.Result.Items,
		Total:         ev.Result.Total,
		TotalReported: ev.Result.TotalReported,
		Visible:       true,
	}
	s.Page.Total = ev.Result.Total
	if ev.Result.Empty() {
		s.Message = info(api.MsgNoContacts)
	}
	logging.Search("search #%d: %d items of %d", ev.Seq, len(ev.Result.Items), ev.Result.Total)
	return s
}

func (s ContactsState) startExport() (ContactsState, []Effect) {
	if s.Page.Total == 0 {
		s.Message = failure(api.MsgNothingToExport)
		return s, nil
	}
	if s.Exporting {
		return s, nil
	}
	s.Exporting = true
	s.Message = Message{}
	return s, []Effect{FetchExport{
		Filters:       s.Filters,
		Dates:         s.Dates,
		Options:       s.Export,
		ExpectedTotal: s.Page.Total,
	}}
}

func (s ContactsState) toggle(field filters.Field, option string) ContactsState {
	switch field {
	case filters.CompanySizeRange:
		s.SizeRanges = s.SizeRanges.Toggle(option)
	case filters.EmailValidation:
		s.Validations = s.Validations.Toggle(option)
	case filters.CompanyIndustry:
		s.Industries = s.Industries.ToggleLeaf(option)
	default:
		return s
	}
	s = s.syncLists()
	s.Message = Message{}
	return s
}

func (s ContactsState) removeValue(field filters.Field, i int) ContactsState {
	switch field {
	case filters.JobTitle:
		s.JobTitles = s.JobTitles.Remove(i)
	case filters.CompanySizeRange:
		s.SizeRanges = s.SizeRanges.RemoveAt(i)
	case filters.EmailValidation:
		s.Validations = s.Validations.RemoveAt(i)
	case filters.CompanyIndustry:
		if i >= 0 && i < len(s.Industries.Selected) {
			s.Industries = s.Industries.RemoveChip(s.Industries.Selected[i])
		}
	}
	return s.syncLists()
}

func (s ContactsState) setList(field filters.Field, values []string) ContactsState {
	switch field {
	case filters.JobTitle:
		draft := s.JobTitles.Draft
		s.JobTitles = widgets.NewChipInput(nil)
		for _, v := range values {
			s.JobTitles, _ = s.JobTitles.SetDraft(v).Commit()
		}
		s.JobTitles.Draft = draft
	case filters.CompanySizeRange:
		s.SizeRanges.Selected = offered(field, values)
	case filters.EmailValidation:
		s.Validations.Selected = offered(field, values)
	case filters.CompanyIndustry:
		s.Industries.Selected = offered(field, values)
	default:
		return s
	}
	return s.syncLists()
}

// offered keeps the catalogued values of a dropdown field, once each.
func offered(field filters.Field, values []string) []string {
	var out []string
	for _, v := range values {
		if filters.Known(field, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func (s ContactsState) syncLists() ContactsState {
	s.Filters = s.Filters.
		WithList(filters.JobTitle, s.JobTitles.Values).
		WithList(filters.CompanySizeRange, s.SizeRanges.Selected).
		WithList(filters.EmailValidation, s.Validations.Selected).
		WithList(filters.CompanyIndustry, s.Industries.Selected)
	return s
}

func (s ContactsState) closeDropdowns() ContactsState {
	s.SizeRanges = s.SizeRanges.Blur()
	s.Validations = s.Validations.Blur()
	s.Industries = s.Industries.Blur()
	return s
}

// AnyDropdownOpen reports whether a dropdown currently has focus.
func (s ContactsState) AnyDropdownOpen() bool {
	return s.SizeRanges.Open || s.Validations.Open || s.Industries.Open
}
