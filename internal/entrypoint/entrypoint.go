package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/audit"
	"github.com/mrlokans/highlights-reader/internal/config"
	"github.com/mrlokans/highlights-reader/internal/database"
	auditRepo "github.com/mrlokans/highlights-reader/internal/database/audit"
	"github.com/mrlokans/highlights-reader/internal/database/highlights"
	http_controllers "github.com/mrlokans/highlights-reader/internal/http"
	"github.com/mrlokans/highlights-reader/internal/locale"
	"github.com/mrlokans/highlights-reader/internal/metrics"
	"github.com/mrlokans/highlights-reader/internal/services"
)

// App holds the wired application components shared by the server and
// the CLI commands.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *database.Database
	Highlights *highlights.Repository
	Imports    *services.ImportService
	Reader     *services.HighlightService
	Audit      *audit.Service
	Metrics    *metrics.Metrics
	Translator *locale.Translator
}

// NewApp opens the database and builds every service on top of it.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	translator, err := locale.NewTranslator(cfg.Locale.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := highlights.NewRepository(db.DB)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Highlights: repo,
		Imports:    services.NewImportService(repo, cfg.Upload, logger.Named("import")),
		Reader:     services.NewHighlightService(repo, cfg.Database.SearchLimit, logger.Named("highlights")),
		Audit:      audit.NewService(auditRepo.NewRepository(db.DB), logger.Named("audit")),
		Metrics:    metrics.New(),
		Translator: translator,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("error closing database", zap.Error(err))
	}
}

// Router builds the HTTP router for this application.
func (a *App) Router(version string) *gin.Engine {
	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Importer:         a.Imports,
		Highlights:       a.Reader,
		Database:         a.DB,
		Counter:          a.Highlights,
		AuditService:     a.Audit,
		Metrics:          a.Metrics,
		Translator:       a.Translator,
		Logger:           a.Logger.Named("http"),
		MaxFileSizeBytes: a.Config.Upload.MaxFileSizeBytes,
		ReadOnly:         a.Config.Global.ReadOnly,
		Version:          version,
	})
}

// Serve runs the server until ctx is cancelled, then shuts it down within
// the configured timeout.
func Serve(ctx context.Context, router http.Handler, cfg *config.Config, logger *zap.Logger) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func Run(cfg *config.Config, logger *zap.Logger, version string) error {
	logger.Info("starting highlights reader", zap.String("version", version))

	if cfg.Log.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, app.Router(version), cfg, logger)
}
