package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"ebay_pricer/internal/config"
	"ebay_pricer/internal/domain/service/pricing"
	"ebay_pricer/internal/infrastructure/ebay"
	"ebay_pricer/internal/server"
	"ebay_pricer/internal/worker"
	"ebay_pricer/pkg/application/modules"
	"ebay_pricer/pkg/contextx"
	"ebay_pricer/pkg/httpx"
	"ebay_pricer/pkg/logx"
	"ebay_pricer/pkg/middlewarex"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	logFieldMaxLen    = 4096
)

// Run собирает сервис целиком и держит его до отмены контекста.
func Run(ctx context.Context) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{ //nolint:exhaustruct
		Level: logLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log.With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	))

	masker := logx.NewSensitiveDataMasker()

	// 2. Pricing engine: правила и индекс лежат в JSON-файлах и
	// перечитываются с диска при изменении.
	engine := pricing.NewService(
		pricing.NewRuleStore(cfg.Pricing.RulesPath),
		pricing.NewIndexStore(cfg.Pricing.MarketIndexPath),
	)

	// 3. eBay: token endpoint ходит отдельным клиентом, без
	// авторизующего транспорта, иначе получится рекурсия.
	credentials := ebay.Credentials{
		ClientID:     cfg.EBay.ClientID,
		ClientSecret: cfg.EBay.ClientSecret,
		RefreshToken: cfg.EBay.RefreshToken,
		DevID:        cfg.EBay.DevID,
	}

	tokenSource := ebay.NewTokenSource(credentials).
		WithHTTPClient(&http.Client{ //nolint:exhaustruct
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(masker),
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
		})

	marketplace := ebay.NewClient(credentials, &http.Client{ //nolint:exhaustruct
		Transport: httpx.NewHeaderAuthRoundTripper(
			httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(masker),
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
			tokenSource,
			ebay.HeaderIAFToken,
			"",
		),
	}).WithPerPage(cfg.Sweep.PerPage)

	// 4. HTTP API
	srv := server.NewServer(
		server.NewListingsServer(marketplace, engine),
		server.NewCalendarServer(engine),
		server.NewMarketServer(engine),
		cfg.App.Name,
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	// 5. Background sweep
	repricer := worker.NewRepricer(marketplace, engine, prometheus.DefaultRegisterer).
		WithSchedule(cfg.Sweep.Schedule).
		WithAutoApply(cfg.Sweep.AutoApply).
		WithAppliedTTL(cfg.Sweep.AppliedTTL)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: shutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.App.HTTPListenAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.App.MetricsListenAddress}.Run(ctx, g)

	g.Go(func() error {
		if err := repricer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("repricer.Run: %w", err)
		}

		return nil
	})

	logger(ctx).Info("application started",
		slog.String("http", cfg.App.HTTPListenAddress),
		slog.Bool("sweep-auto-apply", cfg.Sweep.AutoApply),
		slog.Bool("ebay-configured", credentials.Configured()),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	logger(ctx).Info("application stopping...")

	return nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
