package layouts

import (
	"go.uber.org/fx"

	"market_movers/internal/modules/layouts/service"
)

func Module() fx.Option {
	return fx.Module("layouts",
		fx.Provide(
			service.NewManager,
		),
	)
}
