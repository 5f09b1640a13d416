package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"datahunt/internal/filters"
	"datahunt/internal/session"
)

// filterFlags binds one flag per filter field: --first-name for scalars,
// repeatable --job-title style flags for lists, and --from/--to dates.
type filterFlags struct {
	scalars map[filters.Field]*string
	lists   map[filters.Field]*[]string
	from    string
	to      string
}

// listFlagNames are the CLI spellings of the list fields.
var listFlagNames = map[filters.Field]string{
	filters.JobTitle:         "job-title",
	filters.CompanyIndustry:  "industry",
	filters.CompanySizeRange: "size-range",
	filters.EmailValidation:  "email-validation",
}

func flagName(f filters.Field) string {
	return strings.ReplaceAll(string(f), "_", "-")
}

func (ff *filterFlags) bind(cmd *cobra.Command) {
	ff.scalars = make(map[filters.Field]*string, len(filters.ScalarFields))
	ff.lists = make(map[filters.Field]*[]string, len(filters.ListFields))

	for _, f := range filters.ScalarFields {
		def := ""
		if f == filters.SourceType {
			def = "all"
		}
		ff.scalars[f] = cmd.Flags().String(flagName(f), def, fmt.Sprintf("Filter by %s", strings.ToLower(f.Label())))
	}
	for _, f := range filters.ListFields {
		ff.lists[f] = cmd.Flags().StringArray(listFlagNames[f], nil, fmt.Sprintf("Filter by %s (repeatable)", strings.ToLower(f.Label())))
	}
	cmd.Flags().StringVar(&ff.from, "from", "", "Created/updated on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.to, "to", "", "Created/updated on or before (YYYY-MM-DD)")
}

// build turns the parsed flags into a filter set and date range.
func (ff *filterFlags) build() (filters.FilterSet, filters.DateRange, error) {
	fs := filters.Defaults()
	for _, f := range filters.ScalarFields {
		if v := ff.scalars[f]; v != nil {
			fs = fs.WithScalar(f, *v)
		}
	}
	for _, f := range filters.ListFields {
		v := ff.lists[f]
		if v == nil {
			continue
		}
		for _, item := range *v {
			if !filters.Known(f, item) {
				return fs, filters.DateRange{}, fmt.Errorf("unknown --%s value %q", listFlagNames[f], item)
			}
		}
		fs = fs.WithList(f, *v)
	}

	var dr filters.DateRange
	if ff.from != "" {
		d, err := filters.ParseDate(ff.from)
		if err != nil {
			return fs, dr, fmt.Errorf("invalid --from: %w", err)
		}
		dr, _ = dr.WithStart(d)
	}
	if ff.to != "" {
		d, err := filters.ParseDate(ff.to)
		if err != nil {
			return fs, dr, fmt.Errorf("invalid --to: %w", err)
		}
		var ok bool
		if dr, ok = dr.WithEnd(d); !ok {
			return fs, dr, fmt.Errorf("--from %s is after --to %s", ff.from, ff.to)
		}
	}
	return fs, dr, nil
}

// events replays the flags into a contacts view, so the CLI goes through the
// same state transitions as the interactive page.
func (ff *filterFlags) events() ([]session.Event, error) {
	fs, dr, err := ff.build()
	if err != nil {
		return nil, err
	}
	var evs []session.Event
	for _, f := range filters.ScalarFields {
		evs = append(evs, session.SetScalar{Field: f, Value: fs.Scalar(f)})
	}
	for _, f := range filters.ListFields {
		if vs := fs.List(f); len(vs) > 0 {
			evs = append(evs, session.SetList{Field: f, Values: vs})
		}
	}
	if dr.Start != nil {
		evs = append(evs, session.SetStartDate{Date: *dr.Start})
	}
	if dr.End != nil {
		evs = append(evs, session.SetEndDate{Date: *dr.End})
	}
	return evs, nil
}

// state replays the flags into a fresh contacts view.
func (ff *filterFlags) state() (session.ContactsState, error) {
	evs, err := ff.events()
	if err != nil {
		return session.ContactsState{}, err
	}
	s := session.NewContactsState()
	for _, ev := range evs {
		s, _ = session.ReduceContacts(s, ev)
	}
	return s, nil
}
