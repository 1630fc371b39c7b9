package models

import (
	"testing"
)

func TestDecodeScannerSettingsDefaults(t *testing.T) {
	got, err := DecodeSettings(WidgetTopListScanner, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := got.(ScannerSettings)
	if !ok {
		t.Fatalf("wrong type %T", got)
	}
	if s.SortBy != SortByChangePercent || s.SortOrder != SortDesc || s.MaxItems != 50 {
		t.Errorf("defaults wrong: %+v", s)
	}
	if s.PriceMin != nil {
		t.Errorf("absent filter should stay nil: %v", *s.PriceMin)
	}
}

func TestDecodeScannerSettingsOverride(t *testing.T) {
	raw := map[string]interface{}{
		"sortBy":   "volume",
		"maxItems": 5,
		"priceMin": 10.5,
		"unknown":  "ignored",
	}
	got, err := DecodeSettings(WidgetTopListScanner, raw)
	if err != nil {
		t.Fatal(err)
	}
	s := got.(ScannerSettings)
	if s.SortBy != SortByVolume || s.MaxItems != 5 {
		t.Errorf("overrides lost: %+v", s)
	}
	if s.PriceMin == nil || *s.PriceMin != 10.5 {
		t.Errorf("pointer filter not decoded: %v", s.PriceMin)
	}
	// keys absent from the bag keep their defaults
	if s.SortOrder != SortDesc {
		t.Errorf("untouched key lost default: %q", s.SortOrder)
	}
}

func TestDecodeScannerSettingsInvalid(t *testing.T) {
	if _, err := DecodeSettings(WidgetTopListScanner, map[string]interface{}{"maxItems": 5000}); err == nil {
		t.Error("out-of-range maxItems decoded")
	}
	if _, err := DecodeSettings(WidgetTopListScanner, map[string]interface{}{"sortBy": "vibes"}); err == nil {
		t.Error("unknown sort field decoded")
	}
}

func TestDecodeWatchlistAndChart(t *testing.T) {
	got, err := DecodeSettings(WidgetWatchlist, map[string]interface{}{"symbols": []string{"AAPL", "TSLA"}})
	if err != nil {
		t.Fatal(err)
	}
	if w := got.(WatchlistSettings); len(w.Symbols) != 2 || w.Symbols[0] != "AAPL" {
		t.Errorf("watchlist: %+v", w)
	}

	got, err = DecodeSettings(WidgetChart, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c := got.(ChartSettings); c.Symbol != "AAPL" {
		t.Errorf("chart default symbol: %q", c.Symbol)
	}

	got, err = DecodeSettings(WidgetChart, map[string]interface{}{"symbol": "NVDA"})
	if err != nil {
		t.Fatal(err)
	}
	if c := got.(ChartSettings); c.Symbol != "NVDA" {
		t.Errorf("chart symbol override: %q", c.Symbol)
	}
}

func TestDecodeAlertSettings(t *testing.T) {
	raw := map[string]interface{}{
		"strategies": []map[string]interface{}{
			{"id": "s1", "symbol": "AAPL", "condition": "above", "value": 200.0, "name": "breakout"},
		},
	}
	got, err := DecodeSettings(WidgetAlerts, raw)
	if err != nil {
		t.Fatal(err)
	}
	a := got.(AlertSettings)
	if len(a.Strategies) != 1 {
		t.Fatalf("strategies: %+v", a)
	}
	st := a.Strategies[0]
	if st.Condition != AlertAbove || st.Value != 200 || st.Name != "breakout" {
		t.Errorf("strategy decoded wrong: %+v", st)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	if _, err := DecodeSettings(WidgetType("hologram"), nil); err == nil {
		t.Error("unknown widget type decoded")
	}
}

func TestDecodeSettingslessTypes(t *testing.T) {
	for _, typ := range []WidgetType{WidgetMarketOverview, WidgetNews} {
		if _, err := DecodeSettings(typ, map[string]interface{}{"anything": true}); err != nil {
			t.Errorf("%s: %v", typ, err)
		}
	}
}
