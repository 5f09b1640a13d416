package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datahunt/internal/api"
	"datahunt/internal/filters"
	"datahunt/internal/session"
)

var (
	exportFilters filterFlags
	exportFormat  string
	exportMode    string
	exportOut     string
)

// exportCmd searches to learn the total and then downloads the export.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every contact matching the filters to CSV or XLSX",
	Long: `Export every contact matching the filters.

A search runs first; nothing is exported when it finds no contacts. The file
is written as contacts_export_<epoch millis>.<format> in --out (or
export.output_dir from the config).

Examples:
  datahunt export --company-country Germany --format xlsx --mode full
  datahunt export --job-title CTO --out ./exports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFilters.bind(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Export format: csv or xlsx (default from config)")
	exportCmd.Flags().StringVar(&exportMode, "mode", "", "Export mode: standard or full (default from config)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Directory to write the export to (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := exportOptions()
	if err != nil {
		return err
	}
	events, err := exportFilters.events()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	dir := exportOut
	if dir == "" {
		dir = cfg.Export.OutputDir
	}

	ctx := context.Background()
	state := session.NewContactsState()
	events = append(events, session.SetExportOptions{Options: opts}, session.SearchRequested{})
	state, err = drive(ctx, client, dir, state, events...)
	if err != nil {
		return err
	}
	if state.Message.Kind == session.MsgError {
		return errors.New(state.Message.Text)
	}
	logger.Info("Search finished", zap.Int("total", state.Page.Total))

	state, err = drive(ctx, client, dir, state, session.ExportRequested{})
	if err != nil {
		return err
	}
	if state.Message.Kind != session.MsgSuccess {
		return errors.New(state.Message.Text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), state.Message.Text)
	fmt.Fprintln(cmd.OutOrStdout(), state.Message.Detail)
	return nil
}

func exportOptions() (filters.ExportOptions, error) {
	format, mode := exportFormat, exportMode
	if format == "" {
		format = cfg.Export.Format
	}
	if mode == "" {
		mode = cfg.Export.Mode
	}
	f, err := filters.ParseFormat(format)
	if err != nil {
		return filters.ExportOptions{}, err
	}
	m, err := filters.ParseMode(mode)
	if err != nil {
		return filters.ExportOptions{}, err
	}
	return filters.ExportOptions{Format: f, Mode: m}, nil
}

// drive applies events to the contacts view and runs the effects they
// produce synchronously, feeding completions back in until none remain.
func drive(ctx context.Context, client *api.Client, dir string, s session.ContactsState, events ...session.Event) (session.ContactsState, error) {
	queue := append([]session.Event(nil), events...)
	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		var effects []session.Effect
		s, effects = session.ReduceContacts(s, ev)
		for _, fx := range effects {
			switch fx := fx.(type) {
			case session.FetchSearch:
				res, err := client.Search(ctx, fx.Filters, fx.Dates, fx.Page)
				if err != nil {
					logger.Warn("Search failed", zap.Error(err))
				}
				queue = append(queue, session.SearchCompleted{Seq: fx.Seq, Result: res, Err: err})

			case session.FetchExport:
				logger.Info("Exporting",
					zap.String("format", string(fx.Options.Format)),
					zap.String("mode", string(fx.Options.Mode)),
					zap.Int("expected", fx.ExpectedTotal))
				file, err := client.Export(ctx, fx.Filters, fx.Dates, fx.Options)
				var path string
				if err == nil {
					path, err = file.Save(dir)
				}
				if err != nil {
					logger.Warn("Export failed", zap.Error(err))
				}
				queue = append(queue, session.ExportCompleted{Requested: fx.ExpectedTotal, Path: path, Err: err})

			default:
				return s, fmt.Errorf("unexpected effect %T", fx)
			}
		}
	}
	return s, nil
}
