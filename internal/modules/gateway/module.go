package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	"market_movers/internal/grid"
	"market_movers/internal/modules/config"
	"market_movers/internal/modules/gateway/service"
	"market_movers/pkg/logger"
)

// Module runs the public HTTP/websocket surface.
func Module() fx.Option {
	return fx.Module("gateway",
		fx.Provide(
			grid.NewIntegration,
			service.NewServer,
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, s *service.Server) {
			addr := fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.PublicPort)
			srv := &http.Server{
				Addr:              addr,
				Handler:           s.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					ln, err := net.Listen("tcp", addr)
					if err != nil {
						return err
					}
					logger.Info("gateway listening on %s", addr)
					go func() { _ = srv.Serve(ln) }()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return srv.Shutdown(ctx)
				},
			})
		}),
	)
}
