package app

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"datahunt/internal/api"
	"datahunt/internal/filters"
	"datahunt/internal/logging"
	"datahunt/internal/session"
	"datahunt/internal/upload"
)

// Backend is the contacts API as the TUI uses it. *api.Client satisfies it.
type Backend interface {
	Search(ctx context.Context, fs filters.FilterSet, dr filters.DateRange, page filters.Pagination) (*api.SearchResult, error)
	Export(ctx context.Context, fs filters.FilterSet, dr filters.DateRange, opts filters.ExportOptions) (*api.ExportFile, error)
	Upload(ctx context.Context, filename, contentType string, file io.Reader, sourceType string) (*api.UploadSummary, error)
}

// runner turns reducer effects into tea.Cmds. Each command replies with the
// matching session completion event, which Update feeds back to the reducer.
type runner struct {
	backend   Backend
	exportDir string
	maxBytes  int64
	now       func() time.Time
}

func (r runner) run(effects []session.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, fx := range effects {
		switch fx := fx.(type) {
		case session.FetchSearch:
			cmds = append(cmds, r.search(fx))
		case session.FetchExport:
			cmds = append(cmds, r.export(fx))
		case session.PostUpload:
			cmds = append(cmds, r.upload(fx))
		}
	}
	return tea.Batch(cmds...)
}

func (r runner) search(fx session.FetchSearch) tea.Cmd {
	return func() tea.Msg {
		res, err := r.backend.Search(context.Background(), fx.Filters, fx.Dates, fx.Page)
		return session.SearchCompleted{Seq: fx.Seq, Result: res, Err: err}
	}
}

func (r runner) export(fx session.FetchExport) tea.Cmd {
	return func() tea.Msg {
		file, err := r.backend.Export(context.Background(), fx.Filters, fx.Dates, fx.Options)
		if err != nil {
			return session.ExportCompleted{Err: err}
		}
		if file.Name == "" {
			file.Name = api.ExportFileName(fx.Options.Format, r.now().UnixMilli())
		}
		path, err := file.Save(r.exportDir)
		if err != nil {
			return session.ExportCompleted{Err: err}
		}
		logging.Export("wrote %d bytes to %s", len(file.Data), path)
		return session.ExportCompleted{Requested: fx.ExpectedTotal, Path: path}
	}
}

func (r runner) upload(fx session.PostUpload) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(fx.File.Path)
		if err != nil {
			return session.UploadCompleted{Err: err}
		}
		defer f.Close()

		summary, err := r.backend.Upload(context.Background(), fx.File.Name, fx.File.MIME, f, fx.Source)
		return session.UploadCompleted{Summary: summary, Err: err}
	}
}

// inspect runs upload preflight on path.
func (r runner) inspect(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := upload.Inspect(path, r.maxBytes)
		return session.FileChosen{File: f, Err: err}
	}
}
