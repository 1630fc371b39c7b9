package alerts

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"market_movers/internal/modules/config"
	feedsvc "market_movers/internal/modules/feed/service"
	widgetsvc "market_movers/internal/modules/widgets/service"
	"market_movers/internal/notify"
)

func Module() fx.Option {
	return fx.Module("alerts",
		fx.Provide(
			func(log *zap.Logger, feed *feedsvc.Feed, store *widgetsvc.Store, n notify.Notifier) *Scheduler {
				// the store adapter is queried fresh on every check,
				// no strategy list is captured here
				return NewScheduler(log, feed, SourceFunc(store.AlertStrategies), n)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, s *Scheduler, cfg *config.Config) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					s.Start(time.Duration(cfg.Alerts.CheckIntervalMs) * time.Millisecond)
					return nil
				},
				OnStop: func(_ context.Context) error {
					s.Stop()
					return nil
				},
			})
		}),
	)
}
