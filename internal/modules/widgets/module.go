package widgets

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"market_movers/internal/modules/widgets/service"
	"market_movers/internal/storage"
)

// Module provides the widget store with its persistence listener
// attached and the previous session's widgets loaded.
func Module() fx.Option {
	return fx.Module("widgets",
		fx.Provide(
			service.NewStore,
		),
		fx.Invoke(func(lc fx.Lifecycle, log *zap.Logger, store *service.Store, docs *storage.Store) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					if saved := service.LoadPersisted(log, docs); len(saved) > 0 {
						store.LoadWidgets(saved)
					}
					// attach after the initial load so restoring state
					// does not immediately rewrite it
					store.Subscribe(service.NewPersister(log, docs))
					return nil
				},
			})
		}),
	)
}
