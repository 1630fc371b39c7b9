package grid

import (
	"market_movers/internal/models"
)

// Cell is one rendered grid slot: either the widget's data or an
// inline error confined to that slot.
type Cell struct {
	ID    string            `json:"id"`
	Type  models.WidgetType `json:"type"`
	Name  string            `json:"name"`
	Item  models.GridItem   `json:"item"`
	Data  interface{}       `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

// RenderPlan resolves every widget against the registry and renders it.
// An unregistered type or a failing renderer yields an error cell and
// never takes down the rest of the dashboard.
func (g *Integration) RenderPlan() []Cell {
	widgets := g.store.GetAll()
	items := g.ToGridItems()

	cells := make([]Cell, 0, len(widgets))
	for i, w := range widgets {
		cell := Cell{
			ID:   w.ID,
			Type: w.Type,
			Name: w.Name,
			Item: items[i],
		}

		entry, err := g.registry.Resolve(w.Type)
		if err != nil {
			cell.Error = err.Error()
			cells = append(cells, cell)
			continue
		}
		data, err := entry.Render(w)
		if err != nil {
			cell.Error = err.Error()
			cells = append(cells, cell)
			continue
		}
		cell.Data = data
		cells = append(cells, cell)
	}
	return cells
}
