package registry

import (
	"go.uber.org/fx"

	"market_movers/internal/alerts"
	"market_movers/internal/modules/feed/service"
	regsvc "market_movers/internal/modules/registry/service"
	"market_movers/internal/news"
)

// Module provides the widget registry with the built-in type set
// registered before anything can instantiate a widget.
func Module() fx.Option {
	return fx.Module("registry",
		fx.Provide(
			regsvc.New,
			news.NewProvider,
		),
		fx.Invoke(func(r *regsvc.Registry, f *service.Feed, p *news.Provider, s *alerts.Scheduler) {
			regsvc.RegisterBuiltins(r, f, p, s)
		}),
	)
}
