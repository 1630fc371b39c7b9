package grid

import (
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"market_movers/internal/models"
	layoutsvc "market_movers/internal/modules/layouts/service"
	regsvc "market_movers/internal/modules/registry/service"
	widgetsvc "market_movers/internal/modules/widgets/service"
	"market_movers/internal/storage"
)

func newTestIntegration(t *testing.T) (*Integration, *widgetsvc.Store, *layoutsvc.Manager, *regsvc.Registry) {
	t.Helper()
	log := zap.NewNop()
	store := widgetsvc.NewStore(log)
	layouts := layoutsvc.NewManager(log, storage.New(t.TempDir()))
	registry := regsvc.New()
	return NewIntegration(log, store, layouts, registry), store, layouts, registry
}

func addWidget(t *testing.T, store *widgetsvc.Store, id string, layout models.WidgetLayout) {
	t.Helper()
	err := store.AddWidget(models.WidgetConfig{
		ID:      id,
		Type:    models.WidgetWatchlist,
		Version: "1.0.0",
		Name:    "Watchlist " + id,
		Layout:  layout,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestToGridItemsClampsMinimum(t *testing.T) {
	g, store, _, _ := newTestIntegration(t)
	addWidget(t, store, "tiny", models.WidgetLayout{X: 1, Y: 2, W: 1, H: 0})
	addWidget(t, store, "big", models.WidgetLayout{X: 0, Y: 8, W: 12, H: 6})

	items := g.ToGridItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].W != MinW || items[0].H != MinH {
		t.Errorf("undersized widget not clamped: %+v", items[0])
	}
	if items[0].X != 1 || items[0].Y != 2 {
		t.Errorf("position altered by clamp: %+v", items[0])
	}
	if items[1].W != 12 || items[1].H != 6 {
		t.Errorf("oversize widget altered: %+v", items[1])
	}
	for _, it := range items {
		if it.MinW != MinW || it.MinH != MinH {
			t.Errorf("min constraints not attached: %+v", it)
		}
	}
}

func TestApplyChangesDiffOnly(t *testing.T) {
	g, store, _, _ := newTestIntegration(t)
	addWidget(t, store, "a", models.WidgetLayout{X: 0, Y: 0, W: 6, H: 6})
	addWidget(t, store, "b", models.WidgetLayout{X: 6, Y: 0, W: 6, H: 6})

	var writes int
	store.Subscribe(func(widgetsvc.State) { writes++ })

	g.ApplyChanges(PrimaryBreakpoint, []models.GridItem{
		{ID: "a", X: 0, Y: 0, W: 6, H: 6}, // unchanged
		{ID: "b", X: 6, Y: 6, W: 6, H: 6}, // moved down
	})

	if writes != 1 {
		t.Errorf("expected exactly 1 store write, got %d", writes)
	}
	got, _ := store.GetWidget("b")
	if got.Layout.Y != 6 {
		t.Errorf("move not applied: %+v", got.Layout)
	}
	unchanged, _ := store.GetWidget("a")
	if unchanged.Layout.Y != 0 {
		t.Errorf("unchanged widget rewritten: %+v", unchanged.Layout)
	}
}

func TestApplyChangesDropsUnknownIDs(t *testing.T) {
	g, store, _, _ := newTestIntegration(t)
	addWidget(t, store, "a", models.WidgetLayout{X: 0, Y: 0, W: 6, H: 6})

	g.ApplyChanges(PrimaryBreakpoint, []models.GridItem{
		{ID: "ghost", X: 4, Y: 4, W: 4, H: 4},
		{ID: "a", X: 2, Y: 0, W: 6, H: 6},
	})

	if store.Count() != 1 {
		t.Fatalf("unknown item leaked into store: %d widgets", store.Count())
	}
	got, _ := store.GetWidget("a")
	if got.Layout.X != 2 {
		t.Errorf("valid item skipped: %+v", got.Layout)
	}
}

func TestApplyChangesPersistsGeometry(t *testing.T) {
	g, store, layouts, _ := newTestIntegration(t)
	addWidget(t, store, "a", models.WidgetLayout{X: 0, Y: 0, W: 6, H: 6})

	items := []models.GridItem{{ID: "a", X: 4, Y: 0, W: 6, H: 6}}
	g.ApplyChanges("md", items)

	geom := layouts.LoadGeometry()
	if len(geom["md"]) != 1 || geom["md"][0].X != 4 {
		t.Errorf("geometry not persisted for breakpoint: %v", geom)
	}

	// a second breakpoint must not erase the first
	g.ApplyChanges("lg", items)
	geom = layouts.LoadGeometry()
	if len(geom["md"]) != 1 || len(geom["lg"]) != 1 {
		t.Errorf("breakpoints clobbered each other: %v", geom)
	}
}

func TestApplyChangesClampsResize(t *testing.T) {
	g, store, _, _ := newTestIntegration(t)
	addWidget(t, store, "a", models.WidgetLayout{X: 0, Y: 0, W: 6, H: 6})

	g.ApplyChanges(PrimaryBreakpoint, []models.GridItem{{ID: "a", X: 0, Y: 0, W: 1, H: 1}})

	got, _ := store.GetWidget("a")
	if got.Layout.W != MinW || got.Layout.H != MinH {
		t.Errorf("resize below minimum not clamped: %+v", got.Layout)
	}
}

func TestNextPlacementFlow(t *testing.T) {
	g, store, _, _ := newTestIntegration(t)

	want := []models.WidgetLayout{
		{X: 0, Y: 0, W: 6, H: 6},
		{X: 4, Y: 0, W: 6, H: 6},
		{X: 8, Y: 0, W: 6, H: 6},
		{X: 0, Y: 6, W: 6, H: 6},
		{X: 4, Y: 6, W: 6, H: 6},
	}
	for i, w := range want {
		got := g.NextPlacement()
		if got != w {
			t.Errorf("placement %d: got %+v, want %+v", i, got, w)
		}
		addWidget(t, store, string(rune('a'+i)), got)
	}
}

func TestRenderPlanIsolatesFailures(t *testing.T) {
	g, store, _, registry := newTestIntegration(t)

	registry.Register(models.WidgetWatchlist, regsvc.Entry{
		Type:   models.WidgetWatchlist,
		Render: func(models.WidgetConfig) (interface{}, error) { return []string{"AAA"}, nil },
	})
	registry.Register(models.WidgetChart, regsvc.Entry{
		Type:   models.WidgetChart,
		Render: func(models.WidgetConfig) (interface{}, error) { return nil, errors.New("render exploded") },
	})

	addWidget(t, store, "ok", models.WidgetLayout{X: 0, Y: 0, W: 6, H: 6})
	_ = store.AddWidget(models.WidgetConfig{
		ID: "boom", Type: models.WidgetChart, Version: "1.0.0", Name: "Chart 1",
		Layout: models.WidgetLayout{X: 6, Y: 0, W: 6, H: 6},
	})
	_ = store.AddWidget(models.WidgetConfig{
		ID: "mystery", Type: models.WidgetType("hologram"), Version: "1.0.0", Name: "???",
		Layout: models.WidgetLayout{X: 0, Y: 6, W: 6, H: 6},
	})

	cells := g.RenderPlan()
	if len(cells) != 3 {
		t.Fatalf("expected a cell per widget, got %d", len(cells))
	}
	if cells[0].Error != "" || cells[0].Data == nil {
		t.Errorf("healthy widget got no data: %+v", cells[0])
	}
	if cells[1].Error == "" || cells[1].Data != nil {
		t.Errorf("failing renderer not confined to its cell: %+v", cells[1])
	}
	if cells[2].Error == "" {
		t.Errorf("unknown type not surfaced as error cell: %+v", cells[2])
	}
}
