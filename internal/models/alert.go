package models

type AlertCondition string

const (
	AlertAbove         AlertCondition = "above"
	AlertBelow         AlertCondition = "below"
	AlertChangePercent AlertCondition = "change_percent"
	AlertVolume        AlertCondition = "volume"
	AlertNewHigh       AlertCondition = "new_high"
	AlertNewLow        AlertCondition = "new_low"
)

// AlertStrategy is one user-defined trigger condition on a symbol.
type AlertStrategy struct {
	ID        string         `json:"id"`
	Symbol    string         `json:"symbol"`
	Condition AlertCondition `json:"condition"`
	Value     float64        `json:"value"`
	Name      string         `json:"name"`
}

// TriggeredAlert is a fired strategy occurrence.
type TriggeredAlert struct {
	ID           string `json:"id"`
	StrategyID   string `json:"strategyId"`
	StrategyName string `json:"strategyName"`
	Symbol       string `json:"symbol"`
	Message      string `json:"message"`
	Timestamp    int64  `json:"timestamp"`
}
