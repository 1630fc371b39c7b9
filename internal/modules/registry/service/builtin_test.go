package service

import (
	"testing"

	"go.uber.org/zap"

	"market_movers/internal/alerts"
	"market_movers/internal/models"
	feedsvc "market_movers/internal/modules/feed/service"
	"market_movers/internal/news"
	"market_movers/internal/notify"
)

func builtinFixture(t *testing.T) (*Registry, *feedsvc.Feed) {
	t.Helper()
	log := zap.NewNop()
	feed := feedsvc.NewFeed(log, feedsvc.NewRand(), feedsvc.NewClock())
	if err := feed.Initialize(feedsvc.DefaultUniverse()); err != nil {
		t.Fatal(err)
	}

	sched := alerts.NewScheduler(log, feed,
		alerts.SourceFunc(func() []models.AlertStrategy { return nil }),
		notify.NewStdout(),
	)

	r := New()
	RegisterBuiltins(r, feed, news.NewProvider(), sched)
	return r, feed
}

func TestBuiltinTypeSetComplete(t *testing.T) {
	r, _ := builtinFixture(t)

	want := []models.WidgetType{
		models.WidgetTopListScanner,
		models.WidgetWatchlist,
		models.WidgetMarketOverview,
		models.WidgetNews,
		models.WidgetChart,
		models.WidgetAlerts,
	}
	got := r.Types()
	if len(got) != len(want) {
		t.Fatalf("types: %v", got)
	}
	for _, typ := range want {
		e, err := r.Resolve(typ)
		if err != nil {
			t.Errorf("%s: %v", typ, err)
			continue
		}
		if e.DefaultConfig.Version != "1.0.0" || e.DefaultConfig.Name == "" {
			t.Errorf("%s: default fragment incomplete: %+v", typ, e.DefaultConfig)
		}
	}
}

func TestBuiltinScannerRenders(t *testing.T) {
	r, _ := builtinFixture(t)

	e, _ := r.Resolve(models.WidgetTopListScanner)
	out, err := e.Render(models.WidgetConfig{
		Type:     models.WidgetTopListScanner,
		Settings: map[string]interface{}{"maxItems": 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	quotes, ok := out.([]models.Quote)
	if !ok {
		t.Fatalf("scanner rendered %T", out)
	}
	if len(quotes) != 5 {
		t.Errorf("maxItems not honored: %d", len(quotes))
	}
}

func TestBuiltinWatchlistSkipsUnknown(t *testing.T) {
	r, _ := builtinFixture(t)

	e, _ := r.Resolve(models.WidgetWatchlist)
	out, err := e.Render(models.WidgetConfig{
		Type:     models.WidgetWatchlist,
		Settings: map[string]interface{}{"symbols": []string{"AAPL", "NOPE", "TSLA"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	quotes := out.([]models.Quote)
	if len(quotes) != 2 {
		t.Fatalf("expected unknown symbol dropped, got %d quotes", len(quotes))
	}
	if quotes[0].Symbol != "AAPL" || quotes[1].Symbol != "TSLA" {
		t.Errorf("watchlist order: %v", quotes)
	}
}

func TestBuiltinOverviewShowsIndexes(t *testing.T) {
	r, _ := builtinFixture(t)

	e, _ := r.Resolve(models.WidgetMarketOverview)
	out, err := e.Render(models.WidgetConfig{Type: models.WidgetMarketOverview})
	if err != nil {
		t.Fatal(err)
	}
	quotes := out.([]models.Quote)
	if len(quotes) != 5 {
		t.Fatalf("overview quotes: %d", len(quotes))
	}
	if quotes[0].Symbol != "SPY" {
		t.Errorf("overview order: %v", quotes[0].Symbol)
	}
}

func TestBuiltinChartUnknownSymbolFails(t *testing.T) {
	r, _ := builtinFixture(t)

	e, _ := r.Resolve(models.WidgetChart)
	if _, err := e.Render(models.WidgetConfig{
		Type:     models.WidgetChart,
		Settings: map[string]interface{}{"symbol": "NOPE"},
	}); err == nil {
		t.Error("chart rendered an unknown symbol")
	}

	out, err := e.Render(models.WidgetConfig{Type: models.WidgetChart})
	if err != nil {
		t.Fatal(err)
	}
	if q := out.(models.Quote); q.Symbol != "AAPL" {
		t.Errorf("chart default symbol: %q", q.Symbol)
	}
}

func TestBuiltinAlertsRenders(t *testing.T) {
	r, _ := builtinFixture(t)

	e, _ := r.Resolve(models.WidgetAlerts)
	out, err := e.Render(models.WidgetConfig{
		Type: models.WidgetAlerts,
		Settings: map[string]interface{}{
			"strategies": []map[string]interface{}{
				{"id": "s1", "symbol": "AAPL", "condition": "above", "value": 500.0, "name": "moon"},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	view := out.(map[string]interface{})
	strategies := view["strategies"].([]models.AlertStrategy)
	if len(strategies) != 1 || strategies[0].Symbol != "AAPL" {
		t.Errorf("alerts view strategies: %v", strategies)
	}
	if _, ok := view["alerts"].([]models.TriggeredAlert); !ok {
		t.Errorf("alerts view history missing: %v", view)
	}
}
