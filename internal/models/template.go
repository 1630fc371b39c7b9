package models

// WidgetTemplate is a reusable single-widget configuration fragment,
// captured from a live widget without its id and placement.
type WidgetTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	WidgetType  WidgetType     `json:"widgetType"`
	Config      ConfigFragment `json:"config"`
	Timestamp   int64          `json:"timestamp"`
}
