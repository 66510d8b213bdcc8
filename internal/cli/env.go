package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jbonatakis/cabinlog/internal/app"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/config"
	"github.com/jbonatakis/cabinlog/internal/logging"
	"github.com/jbonatakis/cabinlog/internal/photo"
	"github.com/jbonatakis/cabinlog/internal/report"
	"github.com/jbonatakis/cabinlog/internal/storage"
	"github.com/jbonatakis/cabinlog/internal/summary"
	"github.com/jbonatakis/cabinlog/internal/tui"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvMapsAPIKey   = "MAPS_API_KEY"
)

// env carries the per-invocation state shared by all commands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose bool
	workDir string

	cfg     config.ResolvedConfig
	logger  *zap.Logger
	catalog catalog.Catalog
	state   *app.State
	closers []func() error

	now          func() time.Time
	getenv       func(string) string
	newGenerator func(ctx context.Context, apiKey, model string) (summary.Generator, error)
	openReport   func(path string) error
	startTUI     func(tui.Deps) error
}

func newEnv(stdout, stderr io.Writer, stdin io.Reader) *env {
	return &env{
		stdin:        stdin,
		stdout:       stdout,
		stderr:       stderr,
		catalog:      catalog.Default(),
		now:          time.Now,
		getenv:       os.Getenv,
		newGenerator: newGeminiGenerator,
		openReport:   report.Open,
		startTUI:     tui.Start,
	}
}

func newGeminiGenerator(ctx context.Context, apiKey, model string) (summary.Generator, error) {
	g, err := summary.NewGemini(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// setup loads .env, config and the logger. The interactive UI logs to a file so the
// alternate screen stays clean.
func (e *env) setup(_ context.Context, interactive bool) error {
	if e.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		e.workDir = wd
	}

	if err := godotenv.Load(filepath.Join(e.workDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.LoadConfig(e.workDir)
	if err != nil {
		return err
	}
	e.cfg = cfg

	opts := logging.Options{Level: cfg.Log.Level, Verbose: e.verbose}
	if interactive {
		opts.File = filepath.Join(e.workDir, config.DirName, logging.FileName)
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	e.logger = logger
	return nil
}

// openState opens the configured storage backend and loads the collection.
func (e *env) openState(ctx context.Context) (*app.State, error) {
	if e.state != nil {
		return e.state, nil
	}
	var slot storage.Slot
	switch e.cfg.Storage.Backend {
	case config.StorageBackendSQLite:
		path := e.resolvePath(e.cfg.Storage.Path, filepath.Join(storage.DefaultDirName, storage.DefaultDBName))
		s, err := storage.OpenSQLiteSlot(ctx, path, storage.DefaultSlotName)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, s.Close)
		slot = s
	default:
		path := e.resolvePath(e.cfg.Storage.Path, filepath.Join(storage.DefaultDirName, storage.DefaultFileName))
		slot = storage.NewFileSlot(path)
	}
	e.logger.Debug("storage opened", zap.String("backend", e.cfg.Storage.Backend))
	e.state = app.Open(ctx, storage.NewRepository(slot, e.logger), e.logger)
	return e.state, nil
}

// requester builds the summary requester. Without an API key every non-empty request
// degrades to the failure message.
func (e *env) requester(ctx context.Context) *summary.Requester {
	var gen summary.Generator
	g, err := e.newGenerator(ctx, e.getenv(EnvGeminiAPIKey), e.cfg.AI.Model)
	if err != nil {
		e.logger.Warn("ai summary unavailable", zap.Error(err))
	} else {
		gen = g
	}
	return summary.NewRequester(gen, e.cfg.AI.Timeout(), e.logger)
}

func (e *env) mapsKey() string {
	if !e.cfg.Maps.Enabled {
		return ""
	}
	return e.getenv(EnvMapsAPIKey)
}

func (e *env) publisher() report.Publisher {
	return report.Publisher{
		Dir:     e.resolvePath(e.cfg.Report.Dir, config.DefaultReportDir),
		MapsKey: e.mapsKey(),
	}
}

func (e *env) photoOptions() photo.Options {
	return photo.Options{MaxDimension: e.cfg.Photo.MaxDimension}
}

// resolvePath anchors relative paths at the project directory.
func (e *env) resolvePath(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.workDir, p)
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
	e.closers = nil
}

func runTUI(ctx context.Context, e *env) error {
	state, err := e.openState(ctx)
	if err != nil {
		return err
	}
	return e.startTUI(tui.Deps{
		State:      state,
		Catalog:    e.catalog,
		Summarizer: e.requester(ctx),
		Reporter:   e.publisher(),
		OpenReport: e.openReport,
		MapsKey:    e.mapsKey(),
		Photo:      e.photoOptions(),
		Logger:     e.logger,
		Now:        e.now,
	})
}
