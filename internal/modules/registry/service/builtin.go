package service

import (
	"github.com/pkg/errors"

	"market_movers/internal/alerts"
	"market_movers/internal/models"
	feedsvc "market_movers/internal/modules/feed/service"
	"market_movers/internal/news"
	"market_movers/internal/scanner"
)

const configVersion = "1.0.0"

// overviewSymbols are the index ETFs the market-overview widget shows.
var overviewSymbols = []string{"SPY", "QQQ", "DIA", "IWM", "VIX"}

// RegisterBuiltins installs the closed widget-type set. Must run before
// any widget is instantiated; the composition root invokes it at start.
func RegisterBuiltins(r *Registry, feed *feedsvc.Feed, newsProvider *news.Provider, sched *alerts.Scheduler) {
	r.Register(models.WidgetTopListScanner, Entry{
		Type:   models.WidgetTopListScanner,
		Render: renderScanner(feed),
		DefaultConfig: models.ConfigFragment{
			Type:    models.WidgetTopListScanner,
			Version: configVersion,
			Name:    "Top List Scanner",
			Settings: map[string]interface{}{
				"symbols":         []string{},
				"sortBy":          string(models.SortByChangePercent),
				"sortOrder":       string(models.SortDesc),
				"maxItems":        50,
				"refreshInterval": 0,
			},
		},
	})

	r.Register(models.WidgetWatchlist, Entry{
		Type:   models.WidgetWatchlist,
		Render: renderWatchlist(feed),
		DefaultConfig: models.ConfigFragment{
			Type:    models.WidgetWatchlist,
			Version: configVersion,
			Name:    "Watchlist",
			Settings: map[string]interface{}{
				"symbols": []string{},
			},
		},
	})

	r.Register(models.WidgetMarketOverview, Entry{
		Type:   models.WidgetMarketOverview,
		Render: renderOverview(feed),
		DefaultConfig: models.ConfigFragment{
			Type:     models.WidgetMarketOverview,
			Version:  configVersion,
			Name:     "Market Overview",
			Settings: map[string]interface{}{},
		},
	})

	r.Register(models.WidgetNews, Entry{
		Type:   models.WidgetNews,
		Render: renderNews(newsProvider),
		DefaultConfig: models.ConfigFragment{
			Type:     models.WidgetNews,
			Version:  configVersion,
			Name:     "Market News",
			Settings: map[string]interface{}{},
		},
	})

	r.Register(models.WidgetChart, Entry{
		Type:   models.WidgetChart,
		Render: renderChart(feed),
		DefaultConfig: models.ConfigFragment{
			Type:    models.WidgetChart,
			Version: configVersion,
			Name:    "Price Chart",
			Settings: map[string]interface{}{
				"symbol": "AAPL",
			},
		},
	})

	r.Register(models.WidgetAlerts, Entry{
		Type:   models.WidgetAlerts,
		Render: renderAlerts(sched),
		DefaultConfig: models.ConfigFragment{
			Type:    models.WidgetAlerts,
			Version: configVersion,
			Name:    "Alerts",
			Settings: map[string]interface{}{
				"strategies": []models.AlertStrategy{},
			},
		},
	})
}

func renderScanner(feed *feedsvc.Feed) Renderer {
	return func(cfg models.WidgetConfig) (interface{}, error) {
		decoded, err := models.DecodeSettings(cfg.Type, cfg.Settings)
		if err != nil {
			return nil, err
		}
		settings, ok := decoded.(models.ScannerSettings)
		if !ok {
			return nil, errors.New("scanner settings have wrong shape")
		}
		return scanner.Apply(feed.GetAllQuotes(), settings), nil
	}
}

func renderWatchlist(feed *feedsvc.Feed) Renderer {
	return func(cfg models.WidgetConfig) (interface{}, error) {
		decoded, err := models.DecodeSettings(cfg.Type, cfg.Settings)
		if err != nil {
			return nil, err
		}
		settings := decoded.(models.WatchlistSettings)

		// unknown symbols are skipped, not errors; adding one is
		// rejected at the editing boundary
		out := make([]models.Quote, 0, len(settings.Symbols))
		for _, sym := range settings.Symbols {
			if q, err := feed.GetQuote(sym); err == nil {
				out = append(out, q)
			}
		}
		return out, nil
	}
}

func renderOverview(feed *feedsvc.Feed) Renderer {
	return func(models.WidgetConfig) (interface{}, error) {
		out := make([]models.Quote, 0, len(overviewSymbols))
		for _, sym := range overviewSymbols {
			if q, err := feed.GetQuote(sym); err == nil {
				out = append(out, q)
			}
		}
		return out, nil
	}
}

func renderNews(p *news.Provider) Renderer {
	return func(models.WidgetConfig) (interface{}, error) {
		return p.Latest(), nil
	}
}

func renderChart(feed *feedsvc.Feed) Renderer {
	return func(cfg models.WidgetConfig) (interface{}, error) {
		decoded, err := models.DecodeSettings(cfg.Type, cfg.Settings)
		if err != nil {
			return nil, err
		}
		settings := decoded.(models.ChartSettings)
		q, err := feed.GetQuote(settings.Symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "chart symbol %s", settings.Symbol)
		}
		return q, nil
	}
}

func renderAlerts(sched *alerts.Scheduler) Renderer {
	return func(cfg models.WidgetConfig) (interface{}, error) {
		decoded, err := models.DecodeSettings(cfg.Type, cfg.Settings)
		if err != nil {
			return nil, err
		}
		settings := decoded.(models.AlertSettings)
		return map[string]interface{}{
			"strategies": settings.Strategies,
			"alerts":     sched.Alerts(),
		}, nil
	}
}
