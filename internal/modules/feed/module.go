package feed

import (
	"context"
	"time"

	"go.uber.org/fx"

	"market_movers/internal/modules/config"
	"market_movers/internal/modules/feed/service"
)

// Module provides the simulated market data feed and ties its timer to
// the application lifecycle.
func Module() fx.Option {
	return fx.Module("feed",
		fx.Provide(
			service.NewRand,
			service.NewClock,
			service.NewFeed,
		),
		fx.Invoke(func(lc fx.Lifecycle, f *service.Feed, cfg *config.Config) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					universe, err := service.LoadUniverse(cfg.Feed.UniverseFile)
					if err != nil {
						return err
					}
					if err := f.Initialize(universe); err != nil {
						return err
					}
					f.Start(time.Duration(cfg.Feed.IntervalMs) * time.Millisecond)
					return nil
				},
				OnStop: func(_ context.Context) error {
					f.Stop()
					return nil
				},
			})
		}),
	)
}
