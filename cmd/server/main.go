package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/academlist/seller-portal/internal/adapters/pdf"
	sqliteadapter "github.com/academlist/seller-portal/internal/adapters/sqlite"
	"github.com/academlist/seller-portal/internal/adapters/submitter"
	"github.com/academlist/seller-portal/internal/config"
	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/form"
	"github.com/academlist/seller-portal/internal/handlers"
	"github.com/academlist/seller-portal/internal/ports"
	"github.com/academlist/seller-portal/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	cmd := &cobra.Command{
		Use:          "academlist-server",
		Short:        "Serve the Academlist site and its seller submission form",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Variables already set in the environment win over .env.
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	shared := cmd.PersistentFlags()
	shared.String(config.KeyDBPath, "", "SQLite file for the submission ledger; empty disables persistence and receipts")
	shared.StringP(config.KeyLogLevel, "l", "info", "log level (debug, info, warn, error)")
	shared.Bool(config.KeyDev, false, "development console logging")

	flags := cmd.Flags()
	flags.String(config.KeyAddr, ":8080", "listen address")
	flags.Duration(config.KeySubmitDelay, domain.DefaultSubmitDelay, "simulated submission round trip")
	flags.Duration(config.KeySuccessDisplay, domain.DefaultSuccessDisplay, "how long the success panel stays up")
	flags.Duration(config.KeySessionTTL, session.DefaultTTL, "idle lifetime of a form session")
	flags.String(config.KeyReceiptFont, "", "TTF font used for receipt text")

	for _, key := range []string{
		config.KeyAddr, config.KeyDBPath, config.KeySubmitDelay, config.KeySuccessDisplay,
		config.KeySessionTTL, config.KeyReceiptFont, config.KeyLogLevel, config.KeyDev,
	} {
		f := flags.Lookup(key)
		if f == nil {
			f = shared.Lookup(key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(newLedgerCmd(v))
	return cmd
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	return zc.Build()
}

func run(ctx context.Context, cfg config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	var (
		repo     ports.SubmissionRepository
		receipts ports.ReceiptGenerator
	)
	if cfg.Persistent() {
		r, err := sqliteadapter.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer r.Close()
		repo = r
		receipts = pdf.NewReceipts(cfg.ReceiptFont)
		log.Info("submission ledger enabled", zap.String("db_path", cfg.DBPath))
	}

	sub := submitter.NewSimulated(cfg.SubmitDelay, repo, log.Named("submitter"))
	formLog := log.Named("form")
	store := session.NewStore(func(n ports.Notifier) *form.Form {
		return form.New(sub, n,
			form.WithSuccessDisplay(cfg.SuccessDisplay),
			form.WithLogger(formLog))
	}, cfg.SessionTTL, log.Named("session"))

	h := handlers.New(handlers.Config{
		Sessions:       store,
		Repo:           repo,
		Receipts:       receipts,
		SuccessDisplay: cfg.SuccessDisplay,
		Log:            log.Named("http"),
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("academlist server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		store.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
