package models

type WidgetType string

const (
	WidgetTopListScanner WidgetType = "top-list-scanner"
	WidgetWatchlist      WidgetType = "watchlist"
	WidgetMarketOverview WidgetType = "market-overview"
	WidgetNews           WidgetType = "news"
	WidgetChart          WidgetType = "chart"
	WidgetAlerts         WidgetType = "alerts"
)

// WidgetLayout is the widget's grid placement at the primary breakpoint.
type WidgetLayout struct {
	X int `json:"x" validate:"min=0"`
	Y int `json:"y" validate:"min=0"`
	W int `json:"w" validate:"min=2"`
	H int `json:"h" validate:"min=2"`
}

// WidgetConfig is one dashboard widget instance. Settings stays an open
// bag here; DecodeSettings maps it onto the typed per-type variant.
type WidgetConfig struct {
	ID       string                 `json:"id" validate:"required,uuid4"`
	Type     WidgetType             `json:"type" validate:"required"`
	Version  string                 `json:"version" validate:"required,semver"`
	Name     string                 `json:"name" validate:"required,min=1,max=100"`
	Settings map[string]interface{} `json:"settings"`
	Layout   WidgetLayout           `json:"layout"`
}

// WidgetPatch is a partial update for the store. Nil fields are left
// untouched; Settings and Layout replace the stored value wholesale,
// callers wanting a deep merge must spread the old value themselves.
type WidgetPatch struct {
	Name     *string
	Version  *string
	Settings map[string]interface{}
	Layout   *WidgetLayout
}

// ConfigFragment is everything of a WidgetConfig except identity and
// placement. Registry defaults and templates carry this shape.
type ConfigFragment struct {
	Type     WidgetType             `json:"type"`
	Version  string                 `json:"version"`
	Name     string                 `json:"name"`
	Settings map[string]interface{} `json:"settings"`
}
