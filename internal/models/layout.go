package models

// GridItem is one widget's cell in the grid engine's coordinate model.
type GridItem struct {
	ID   string `json:"i"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	MinW int    `json:"minW"`
	MinH int    `json:"minH"`
}

// GridGeometry maps breakpoint name ("lg", "md", ...) to the item list
// the grid engine renders at that width tier.
type GridGeometry map[string][]GridItem

// SavedLayout is a named snapshot of grid geometry plus the full widget
// set at save time. Names are user-chosen and not unique; duplicates
// live side by side.
type SavedLayout struct {
	Name      string         `json:"name"`
	Timestamp int64          `json:"timestamp"`
	Layouts   GridGeometry   `json:"layouts"`
	Widgets   []WidgetConfig `json:"widgets"`
}
