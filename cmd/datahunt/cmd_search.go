package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/api"
	"datahunt/internal/contacts"
	"datahunt/internal/results"
)

var (
	searchFilters filterFlags
	searchPage    int
	searchJSON    bool
)

// searchCmd runs one fetch cycle and prints the page.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search contacts and print one page of results",
	Long: `Search contacts with the given filters and print one page (50 contacts).

Examples:
  datahunt search --company-name acme --job-title CTO --job-title "VP Engineering"
  datahunt search --industry "Software Development" --from 2024-01-01 --page 2
  datahunt search --email-validation Valid --json`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchFilters.bind(searchCmd)
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page to fetch (1-based)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the page as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchPage < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	view, err := searchFilters.state()
	if err != nil {
		return err
	}
	fs, dr := view.Filters, view.Dates
	client, err := newClient()
	if err != nil {
		return err
	}

	page := results.NewPageState()
	page.CurrentPage = searchPage
	logger.Debug("Searching contacts",
		zap.String("base_url", client.BaseURL()),
		zap.Int("page", searchPage),
		zap.Int("filters", len(fs.Active())))

	res, err := client.Search(context.Background(), fs, dr, page.Pagination())
	if err != nil {
		logger.Warn("Search failed", zap.Error(err))
		return errors.New(api.UserMessage(api.OpSearch, err))
	}
	page.Total = res.Total

	out := cmd.OutOrStdout()
	if searchJSON {
		return printJSON(out, res.Items)
	}
	if res.Empty() {
		fmt.Fprintln(out, api.MsgNoContacts)
		return nil
	}
	printContacts(out, res.Items)
	fmt.Fprintf(out, "Page %d of %d (%d contacts)\n", page.CurrentPage, page.DisplayTotalPages(), res.Total)
	if !res.TotalReported {
		fmt.Fprintln(out, "The server did not report a total; page counts cover this page only.")
	}
	return nil
}

func printJSON(w io.Writer, items []contacts.Contact) error {
	if items == nil {
		items = []contacts.Contact{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func printContacts(w io.Writer, items []contacts.Contact) {
	table := ui.NewTable("", []string{"NAME", "EMAIL", "COMPANY", "JOB TITLE", "CONTACT LOCATION", "SOURCE"})
	table.MaxWidth = 32
	for _, c := range items {
		table.AddRow(
			contacts.OrNA(strings.TrimSpace(c.FullName())),
			contacts.OrNA(c.Email()),
			contacts.OrNA(c.Field(contacts.FieldCompanyName)),
			contacts.OrNA(c.Field(contacts.FieldJobTitle)),
			strings.ReplaceAll(contacts.Resolve(c, contacts.PrefixContact).Display(), "\n", ", "),
			contacts.OrNA(c.Field(contacts.FieldSourceType)),
		)
	}
	fmt.Fprint(w, table.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
}
