package models

import (
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// ScannerSettings configures a top-list-scanner widget. Nil filter
// fields mean "not applied".
type ScannerSettings struct {
	Symbols          []string  `json:"symbols" validate:"max=500"`
	PriceMin         *float64  `json:"priceMin,omitempty" validate:"omitempty,min=0"`
	PriceMax         *float64  `json:"priceMax,omitempty" validate:"omitempty,min=0"`
	VolumeMin        *float64  `json:"volumeMin,omitempty" validate:"omitempty,min=0"`
	VolumeMax        *float64  `json:"volumeMax,omitempty" validate:"omitempty,min=0"`
	ChangePercentMin *float64  `json:"changePercentMin,omitempty"`
	ChangePercentMax *float64  `json:"changePercentMax,omitempty"`
	MarketCapMin     *float64  `json:"marketCapMin,omitempty" validate:"omitempty,min=0"`
	MarketCapMax     *float64  `json:"marketCapMax,omitempty" validate:"omitempty,min=0"`
	SortBy           SortField `json:"sortBy" validate:"oneof=symbol price change changePercent volume marketCap"`
	SortOrder        SortOrder `json:"sortOrder" validate:"oneof=asc desc"`
	MaxItems         int       `json:"maxItems" validate:"min=1,max=1000"`
	RefreshInterval  int       `json:"refreshInterval" validate:"min=0"`
}

func DefaultScannerSettings() ScannerSettings {
	return ScannerSettings{
		Symbols:         []string{},
		SortBy:          SortByChangePercent,
		SortOrder:       SortDesc,
		MaxItems:        50,
		RefreshInterval: 0,
	}
}

type WatchlistSettings struct {
	Symbols []string `json:"symbols"`
}

type ChartSettings struct {
	Symbol string `json:"symbol" validate:"required"`
}

type AlertSettings struct {
	Strategies []AlertStrategy `json:"strategies"`
}

// DecodeSettings resolves the open settings bag into the typed variant
// for the given widget type. Keys absent from the bag keep their
// defaults, unknown keys are tolerated.
func DecodeSettings(t WidgetType, raw map[string]interface{}) (interface{}, error) {
	switch t {
	case WidgetTopListScanner:
		s := DefaultScannerSettings()
		if err := decodeInto(raw, &s); err != nil {
			return nil, err
		}
		if err := Validate(&s); err != nil {
			return nil, err
		}
		return s, nil
	case WidgetWatchlist:
		s := WatchlistSettings{Symbols: []string{}}
		if err := decodeInto(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case WidgetChart:
		s := ChartSettings{Symbol: "AAPL"}
		if err := decodeInto(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case WidgetAlerts:
		s := AlertSettings{}
		if err := decodeInto(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case WidgetMarketOverview, WidgetNews:
		// no settings of their own
		return struct{}{}, nil
	default:
		return nil, errors.Errorf("no settings schema for widget type %q", t)
	}
}

func decodeInto(raw map[string]interface{}, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	b, err := sonic.Marshal(raw)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	return errors.Wrap(sonic.Unmarshal(b, dst), "decode settings")
}
