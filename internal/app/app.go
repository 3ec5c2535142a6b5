// Package app wires configuration, storage and the HTTP server together.
package app

import (
	"context"
	"github.com/hellofresh/health-go/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/api"
	"github.com/limchewyew/CompanyDirectory/internal/auth"
	"github.com/limchewyew/CompanyDirectory/internal/cache"
	"github.com/limchewyew/CompanyDirectory/internal/config"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/limchewyew/CompanyDirectory/internal/id"
	"github.com/limchewyew/CompanyDirectory/internal/mail"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	healthTimeout   = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

var Version = "dev"

type stores struct {
	tx        db.Transactor
	companies repository.CompanyRepository
	users     repository.UserRepository
	lists     repository.ListRepository
	items     repository.ListItemRepository
	unlocks   repository.UnlockRepository

	checks  []health.Config
	closers []func()
}

type App struct {
	cfg    config.Config
	logger *zap.Logger
	echo   *echo.Echo

	closers []func()
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := id.Init(cfg.SnowflakeNode); err != nil {
		return nil, errors.Wrap(err, "failed to init id generator")
	}
	auth.TokenSecretKey = cfg.Session.Secret

	s, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.URL != "" {
		backend, err := cache.NewRedisBackend(cfg.Redis.URL)
		if err != nil {
			s.close()
			return nil, err
		}
		s.companies = cache.NewCompanyCache(s.companies, backend, cfg.Redis.TTL)
		s.checks = append(s.checks, health.Config{
			Name:      "redis",
			Timeout:   healthTimeout,
			SkipOnErr: true,
			Check:     backend.Ping,
		})
		logger.Info("company cache enabled", zap.Duration("ttl", cfg.Redis.TTL))
	}

	healthChecker, err := api.NewHealthChecker(Version, s.checks...)
	if err != nil {
		s.close()
		return nil, err
	}

	company := service.NewCompanyService().WithCompanyRepo(s.companies)
	analytics := service.NewAnalyticsService().WithCompanyRepo(s.companies)
	lists := service.NewListService(s.tx).WithListRepo(s.lists).WithListItemRepo(s.items).WithCompanyRepo(s.companies)
	users := service.NewUserService(s.tx).WithUserRepo(s.users)
	collection := service.NewCollectionService(s.tx).WithCompanyRepo(s.companies).WithUnlockRepo(s.unlocks).WithPackSize(cfg.PackSize)
	enquiries := service.NewEnquiryService().WithSender(newSender(cfg, logger))

	handler := api.NewHandler(logger).
		WithHealthChecker(healthChecker).
		WithMetrics(api.NewMetrics()).
		WithCompanyService(company).
		WithAnalyticsService(analytics).
		WithListService(lists).
		WithUserService(users).
		WithCollectionService(collection).
		WithEnquiryService(enquiries)

	if cfg.OAuth.ClientID != "" {
		provider := auth.NewGoogleProvider(cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, cfg.OAuth.RedirectURL)
		handler.WithOAuth(provider, cfg.Session.TTL, !cfg.IsDevelopment())
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, sign-in is disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	handler.RegisterRoutes(e)

	return &App{
		cfg:     cfg,
		logger:  logger,
		echo:    e,
		closers: s.closers,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("server starting", zap.String("addr", addr), zap.String("store", string(a.cfg.Store)))
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.echo.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("using the in-memory store, data is lost on restart")
		return sheetStores(sheet.NewMemoryValues()), nil

	case config.StoreSheets:
		values, err := sheet.NewGoogleValues(ctx, cfg.Sheets.SpreadsheetID, []byte(cfg.Sheets.Credentials))
		if err != nil {
			return nil, err
		}
		return sheetStores(values), nil

	case config.StorePostgres:
		values, err := sheet.NewGoogleValues(ctx, cfg.Sheets.SpreadsheetID, []byte(cfg.Sheets.Credentials))
		if err != nil {
			return nil, err
		}

		pool, err := OpenPool(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established")

		s := &stores{
			tx:        db.NewPgxTransactor(pool),
			companies: repository.NewSheetsCompanyRepository(values),
			users:     repository.NewPgxUserRepository(pool),
			lists:     repository.NewPgxListRepository(pool),
			items:     repository.NewPgxListItemRepository(pool),
			unlocks:   repository.NewPgxUnlockRepository(pool),
			closers:   []func(){pool.Close},
		}
		s.checks = []health.Config{
			sheetsCheck(values),
			{
				Name:    "postgres",
				Timeout: healthTimeout,
				Check:   pool.Ping,
			},
		}
		return s, nil
	}

	return nil, errors.Errorf("unknown store %q", cfg.Store)
}

func sheetStores(values sheet.Values) *stores {
	tables := repository.NewSheetTables(values)
	return &stores{
		tx:        db.NewLockTransactor(),
		companies: repository.NewSheetsCompanyRepository(values),
		users:     repository.NewSheetsUserRepository(tables),
		lists:     repository.NewSheetsListRepository(tables),
		items:     repository.NewSheetsListItemRepository(tables),
		unlocks:   repository.NewSheetsUnlockRepository(tables),
		checks:    []health.Config{sheetsCheck(values)},
	}
}

func sheetsCheck(values sheet.Values) health.Config {
	return health.Config{
		Name:    "sheets",
		Timeout: healthTimeout,
		Check: func(ctx context.Context) error {
			_, err := values.Get(ctx, repository.TabDatabase+"!A1:A1")
			return err
		},
	}
}

func newSender(cfg config.Config, logger *zap.Logger) mail.Sender {
	if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" || cfg.SMTP.Recipient == "" {
		logger.Warn("SMTP credentials not set, enquiries are only logged")
		return mail.LogSender{}
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		Recipient: cfg.SMTP.Recipient,
	})
}

func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return pool, nil
}

// InitSheets writes the header row of every tab the application writes to.
func InitSheets(ctx context.Context, values sheet.Values, logger *zap.Logger) error {
	for _, table := range repository.NewSheetTables(values).All() {
		if err := table.EnsureHeader(ctx); err != nil {
			return errors.Wrapf(err, "failed to initialise tab %s", table.Name)
		}
		logger.Info("tab ready", zap.String("tab", table.Name), zap.Strings("headers", table.Headers))
	}
	return nil
}
