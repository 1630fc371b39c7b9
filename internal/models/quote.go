package models

// Quote is the current simulated market snapshot for one symbol.
// Mutated in place by the feed on every tick; previousClose is fixed
// for the whole session.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     int64   `json:"timestamp"` // unix millis of the last update
	MarketCap     float64 `json:"marketCap,omitempty"`
}

// SymbolSpec seeds one instrument of the feed universe.
type SymbolSpec struct {
	Symbol     string  `json:"symbol" yaml:"symbol"`
	Name       string  `json:"name" yaml:"name"`
	BasePrice  float64 `json:"base_price" yaml:"base_price"`
	Volatility float64 `json:"volatility" yaml:"volatility"`
}

type SortField string

const (
	SortBySymbol        SortField = "symbol"
	SortByPrice         SortField = "price"
	SortByChange        SortField = "change"
	SortByChangePercent SortField = "changePercent"
	SortByVolume        SortField = "volume"
	SortByMarketCap     SortField = "marketCap"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
