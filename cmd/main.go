package main

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/app"
	"github.com/limchewyew/CompanyDirectory/internal/config"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	root := &cobra.Command{
		Use:           "companydir",
		Short:         "Company directory backed by a spreadsheet",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), initSheetsCmd(), migrateCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every command uses.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}

	l, err := logger.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return cfg, nil, err
	}
	return cfg, l, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}
			defer l.Sync()

			l.Info("starting application", zap.String("version", app.Version), zap.String("env", cfg.Env))

			a, err := app.New(cmd.Context(), cfg, l)
			if err != nil {
				l.Error("failed to build application", zap.Error(err))
				return err
			}
			defer a.Close()

			if err = a.Run(cmd.Context()); err != nil {
				l.Error("server stopped with error", zap.Error(err))
				return err
			}

			l.Info("server stopped")
			return nil
		},
	}
}

func initSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-sheets",
		Short: "Write header rows to the Users, Lists, ListItems and Unlocks tabs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}
			defer l.Sync()

			values, err := sheet.NewGoogleValues(cmd.Context(), cfg.Sheets.SpreadsheetID, []byte(cfg.Sheets.Credentials))
			if err != nil {
				return err
			}
			return app.InitSheets(cmd.Context(), values, l)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres tables used by the postgres store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}
			defer l.Sync()

			pool, err := app.OpenPool(cmd.Context(), cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err = db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}

			l.Info("schema applied")
			return nil
		},
	}
}
