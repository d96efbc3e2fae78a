package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medsys/hospital/internal/config"
	"github.com/medsys/hospital/internal/domain/clinical"
	"github.com/medsys/hospital/internal/domain/facility"
	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/db"
	"github.com/medsys/hospital/internal/seed"
	"github.com/medsys/hospital/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hospital-server",
		Short:        "Hospital management API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg != nil && cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if cfg != nil {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
			logger = logger.Level(lvl)
		}
	}
	return logger
}

func openPool(ctx context.Context, cfg *config.Config, schema string) (*pgxpool.Pool, error) {
	return db.NewPool(ctx, db.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		Schema:      schema,
	})
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}
	if cfg.ResolvedAuthMode() == config.AuthModeDevelopment {
		logger.Warn().Msg("development auth is enabled: requests without a token act as admin")
	}

	ctx := context.Background()
	pool, err := openPool(ctx, cfg, cfg.DBSchema)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer pool.Close()
	logger.Info().Str("schema", cfg.DBSchema).Msg("connected to database")

	e := newServer(cfg, pool, logger)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// migrationFS returns the embedded migrations unless dir points elsewhere.
func migrationFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if schema == "" {
				schema = cfg.DBSchema
			}

			ctx := context.Background()
			pool, err := openPool(ctx, cfg, "")
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, migrationFS(dir), schema)
			fmt.Fprintf(cmd.OutOrStdout(), "Running migrations on schema: %s\n", schema)

			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("schema", "", "Target schema (defaults to DB_SCHEMA)")
	upCmd.Flags().String("dir", "", "Read migrations from this directory instead of the embedded set")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if schema == "" {
				schema = cfg.DBSchema
			}

			ctx := context.Background()
			pool, err := openPool(ctx, cfg, "")
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrationFS(dir), schema).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Migration status for schema: %s\n", schema)
			fmt.Fprintf(out, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Fprintln(out, "---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status, appliedAt := "pending", ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format(time.RFC3339)
					}
				}
				fmt.Fprintf(out, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("schema", "", "Target schema (defaults to DB_SCHEMA)")
	statusCmd.Flags().String("dir", "", "Read migrations from this directory instead of the embedded set")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data (default catalogue or an .xlsx workbook)",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			catalogue := seed.Default()
			if file != "" {
				if catalogue, err = seed.LoadWorkbook(file); err != nil {
					return err
				}
				logger.Info().Str("file", file).Int("rows", catalogue.Len()).Msg("workbook loaded")
			}

			ctx := context.Background()
			pool, err := openPool(ctx, cfg, cfg.DBSchema)
			if err != nil {
				return err
			}
			defer pool.Close()

			fac := facility.NewService(facility.NewStores(pool))
			staffSvc := staff.NewService(staff.NewStores(pool), fac)
			refSvc := reference.NewService(reference.NewStores(pool), staffSvc.Specializations())
			diseases := clinical.NewStores(pool).Diseases

			seeder := seed.New(db.PoolTxRunner{Pool: pool}, refSvc, staffSvc.Specializations(), diseases, logger)
			return seeder.Apply(ctx, catalogue)
		},
	}
	cmd.Flags().String("file", "", "Path to an .xlsx workbook with reference sheets")
	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 access token signed with AUTH_SIGNING_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, _ := cmd.Flags().GetString("sub")
			roles, _ := cmd.Flags().GetStringSlice("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := auth.IssueToken([]byte(cfg.AuthSigningKey), auth.TokenRequest{
				Subject:  sub,
				Roles:    roles,
				TTL:      ttl,
				Issuer:   cfg.AuthIssuer,
				Audience: cfg.AuthAudience,
			})
			if err != nil {
				return fmt.Errorf("issue token for roles %s: %w", strings.Join(roles, ","), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("sub", "", "Token subject (user id)")
	cmd.Flags().StringSlice("role", nil, "Role to grant; repeatable")
	cmd.Flags().Duration("ttl", 12*time.Hour, "Token lifetime; 0 for no expiry")
	return cmd
}
