package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"market_movers/internal/alerts"
	"market_movers/internal/modules/config"
	"market_movers/internal/modules/feed"
	"market_movers/internal/modules/gateway"
	"market_movers/internal/modules/health"
	"market_movers/internal/modules/layouts"
	"market_movers/internal/modules/registry"
	"market_movers/internal/modules/widgets"
	"market_movers/internal/notify"
	"market_movers/internal/storage"
	"market_movers/pkg/logger"
	"market_movers/pkg/tracing"
)

func main() {
	logger.SetServiceName("market-movers")
	tracing.SetServiceName("market-movers")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			logger.Init,
			func(cfg *config.Config) *storage.Store {
				return storage.New(cfg.Storage.DataDir)
			},
			// Notifier: without TELEGRAM_* alerts go to stdout
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
						return tg
					}
				}
				return notify.NewStdout()
			},
		),
		config.Module(),
		feed.Module(),
		widgets.Module(),
		layouts.Module(),
		alerts.Module(),
		registry.Module(),
		health.Module(),
		gateway.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			closeTracer := func() {}
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					_, closer, err := tracing.InitTracer(tracing.Config{
						Host: cfg.Jaeger.Host,
						Port: cfg.Jaeger.Port,
					})
					if err != nil {
						// tracing is best effort, the dashboard runs without an agent
						log.Printf("tracer init failed: %v", err)
						return nil
					}
					closeTracer = closer
					return nil
				},
				OnStop: func(_ context.Context) error {
					closeTracer()
					return nil
				},
			})
		}),
	)
	app.Run()
}
