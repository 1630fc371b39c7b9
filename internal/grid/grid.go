package grid

import (
	"go.uber.org/zap"

	"market_movers/internal/models"
	layoutsvc "market_movers/internal/modules/layouts/service"
	regsvc "market_movers/internal/modules/registry/service"
	widgetsvc "market_movers/internal/modules/widgets/service"
)

// Responsive grid parameters, mirrored by the front-end grid engine.
// compactType "vertical" on the engine resolves placement overlap, so
// no collision handling happens here.
var Columns = map[string]int{"lg": 12, "md": 10, "sm": 6, "xs": 4}

const (
	PrimaryBreakpoint = "lg"

	MinW = 2
	MinH = 2

	defaultW = 6
	defaultH = 6
	// new widgets advance 4 columns per existing widget, flowing
	// left to right, top to bottom
	placementStep = 4
)

// Integration translates between the widget store's layout fields and
// the grid engine's coordinate model, in both directions.
type Integration struct {
	log      *zap.Logger
	store    *widgetsvc.Store
	layouts  *layoutsvc.Manager
	registry *regsvc.Registry
}

func NewIntegration(log *zap.Logger, store *widgetsvc.Store, layouts *layoutsvc.Manager, registry *regsvc.Registry) *Integration {
	return &Integration{log: log, store: store, layouts: layouts, registry: registry}
}

// ToGridItems emits the store's widgets as grid items for the primary
// breakpoint, clamping sizes up to the 2x2 minimum.
func (g *Integration) ToGridItems() []models.GridItem {
	widgets := g.store.GetAll()
	out := make([]models.GridItem, 0, len(widgets))
	for _, w := range widgets {
		out = append(out, models.GridItem{
			ID:   w.ID,
			X:    w.Layout.X,
			Y:    w.Layout.Y,
			W:    clampMin(w.Layout.W, MinW),
			H:    clampMin(w.Layout.H, MinH),
			MinW: MinW,
			MinH: MinH,
		})
	}
	return out
}

// ApplyChanges feeds user-driven move/resize events back to the store.
// Only items whose geometry actually differs produce a store write;
// items referencing removed widgets are dropped, the store is
// authoritative. The resulting geometry snapshot is persisted per
// breakpoint.
func (g *Integration) ApplyChanges(breakpoint string, items []models.GridItem) {
	for _, item := range items {
		w, err := g.store.GetWidget(item.ID)
		if err != nil {
			continue
		}

		next := models.WidgetLayout{
			X: item.X,
			Y: item.Y,
			W: clampMin(item.W, MinW),
			H: clampMin(item.H, MinH),
		}
		if w.Layout == next {
			continue
		}
		if err := g.store.UpdateWidget(item.ID, models.WidgetPatch{Layout: &next}); err != nil {
			// removed between the diff and the write; drop silently
			continue
		}
	}

	geometry := g.layouts.LoadGeometry()
	if geometry == nil {
		geometry = models.GridGeometry{}
	}
	geometry[breakpoint] = items
	if err := g.layouts.SaveGeometry(geometry); err != nil {
		g.log.Error("failed to persist grid geometry", zap.Error(err))
	}
}

// NextPlacement computes where a newly added widget goes when no
// explicit position is given: a simple left-to-right, top-to-bottom
// flow over the primary breakpoint's columns.
func (g *Integration) NextPlacement() models.WidgetLayout {
	count := g.store.Count()
	cols := Columns[PrimaryBreakpoint]
	return models.WidgetLayout{
		X: (count * placementStep) % cols,
		Y: (count * placementStep) / cols * defaultH,
		W: defaultW,
		H: defaultH,
	}
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
