package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"datahunt/internal/api"
	"datahunt/internal/session"
	"datahunt/internal/upload"
)

var (
	uploadSource string
	uploadWatch  string
)

// uploadCmd uploads contact files, or watches a drop folder for new ones.
var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload CSV or Excel contact files",
	Long: `Upload one or more CSV/Excel contact files to the backend.

Each file is checked before upload: it must be CSV or Excel and within the
configured size limit. Several files upload concurrently, bounded by
upload.parallel in the config.

With --watch, files dropped into the folder are uploaded as they appear.

Examples:
  datahunt upload leads.csv --source seamless
  datahunt upload q1.xlsx q2.xlsx --source skrapp
  datahunt upload --watch ./inbox --source seamless`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadSource, "source", "s", "", "Data source type: seamless or skrapp (default from config)")
	uploadCmd.Flags().StringVar(&uploadWatch, "watch", "", "Watch this folder and upload files dropped into it")
}

func runUpload(cmd *cobra.Command, args []string) error {
	source := uploadSource
	if source == "" {
		source = cfg.Upload.SourceType
	}
	if err := upload.ValidateSource(source); err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	u := &uploader{client: client, source: source, maxBytes: cfg.MaxUploadBytes(), out: cmd.OutOrStdout()}

	watchDir := uploadWatch
	if watchDir == "" && len(args) == 0 {
		watchDir = cfg.Upload.WatchDir
	}
	if watchDir != "" {
		return u.watch(cmd.Context(), watchDir)
	}
	if len(args) == 0 {
		return errors.New(upload.MsgNoFile)
	}
	return u.uploadAll(cmd.Context(), args, cfg.Upload.Parallel)
}

// uploader sends files through the upload view reducer.
type uploader struct {
	client   *api.Client
	source   string
	maxBytes int64

	mu  sync.Mutex
	out io.Writer
}

func (u *uploader) printf(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, args...)
}

// uploadOne runs preflight and the upload for path and returns the final
// view state.
func (u *uploader) uploadOne(ctx context.Context, path string) session.UploadState {
	f, err := upload.Inspect(path, u.maxBytes)

	var s session.UploadState
	queue := []session.Event{
		session.FileChosen{File: f, Err: err},
		session.SourceChosen{Source: u.source},
		session.UploadRequested{},
	}
	if err != nil {
		queue = queue[:1]
	}
	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		var effects []session.Effect
		s, effects = session.ReduceUpload(s, ev)
		for _, fx := range effects {
			post, ok := fx.(session.PostUpload)
			if !ok {
				continue
			}
			summary, err := u.post(ctx, post)
			if err != nil {
				logger.Warn("Upload failed", zap.String("file", post.File.Name), zap.Error(err))
			}
			queue = append(queue, session.UploadCompleted{Summary: summary, Err: err})
		}
	}
	return s
}

func (u *uploader) post(ctx context.Context, p session.PostUpload) (*api.UploadSummary, error) {
	fh, err := os.Open(p.File.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	logger.Info("Uploading",
		zap.String("file", p.File.Name),
		zap.Int64("bytes", p.File.Size),
		zap.String("source", p.Source))
	return u.client.Upload(ctx, p.File.Name, p.File.MIME, fh, p.Source)
}

func (u *uploader) report(path string, s session.UploadState) bool {
	ok := s.Status == session.UploadSucceeded
	u.printf("%s: %s\n", path, s.Message.Text)
	return ok
}

func (u *uploader) uploadAll(ctx context.Context, paths []string, parallel int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallel < 1 {
		parallel = 1
	}
	var g errgroup.Group
	g.SetLimit(parallel)

	var mu sync.Mutex
	failed := 0
	for _, path := range paths {
		g.Go(func() error {
			if !u.report(path, u.uploadOne(ctx, path)) {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(paths))
	}
	return nil
}

func (u *uploader) watch(ctx context.Context, dir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := upload.NewWatcher(dir, cfg.GetUploadDebounce(), func(ctx context.Context, path string) {
		u.report(path, u.uploadOne(ctx, path))
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	u.printf("Watching %s for CSV/Excel files (source %s). Press Ctrl+C to stop.\n", dir, u.source)

	<-ctx.Done()
	w.Stop()
	return nil
}
