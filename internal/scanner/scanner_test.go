package scanner

import (
	"testing"

	"market_movers/internal/models"
)

func f64(v float64) *float64 { return &v }

func sampleQuotes() []models.Quote {
	return []models.Quote{
		{Symbol: "AAA", Price: 10, Change: 1, ChangePercent: 5, Volume: 1000, MarketCap: 1e9},
		{Symbol: "BBB", Price: 200, Change: -4, ChangePercent: -2, Volume: 50000, MarketCap: 5e10},
		{Symbol: "CCC", Price: 55, Change: 0.5, ChangePercent: 1, Volume: 800, MarketCap: 2e9},
		{Symbol: "DDD", Price: 55, Change: 2, ChangePercent: 8, Volume: 9000, MarketCap: 3e8},
	}
}

func symbols(quotes []models.Quote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.Symbol
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyAllowlist(t *testing.T) {
	s := models.DefaultScannerSettings()
	s.Symbols = []string{"BBB", "DDD"}
	s.SortBy = models.SortBySymbol
	s.SortOrder = models.SortAsc

	got := Apply(sampleQuotes(), s)
	if !equal(symbols(got), []string{"BBB", "DDD"}) {
		t.Errorf("allowlist: got %v", symbols(got))
	}
}

func TestApplyRangeFilters(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*models.ScannerSettings)
		want []string
	}{
		{"price min", func(s *models.ScannerSettings) { s.PriceMin = f64(50) }, []string{"BBB", "CCC", "DDD"}},
		{"price band", func(s *models.ScannerSettings) { s.PriceMin = f64(50); s.PriceMax = f64(100) }, []string{"CCC", "DDD"}},
		{"volume min", func(s *models.ScannerSettings) { s.VolumeMin = f64(5000) }, []string{"BBB", "DDD"}},
		{"change pct max", func(s *models.ScannerSettings) { s.ChangePercentMax = f64(0) }, []string{"BBB"}},
		{"market cap band", func(s *models.ScannerSettings) { s.MarketCapMin = f64(5e8); s.MarketCapMax = f64(1e10) }, []string{"AAA", "CCC"}},
	}

	for _, tc := range cases {
		s := models.DefaultScannerSettings()
		s.SortBy = models.SortBySymbol
		s.SortOrder = models.SortAsc
		tc.mut(&s)

		got := symbols(Apply(sampleQuotes(), s))
		if !equal(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestApplySortFields(t *testing.T) {
	cases := []struct {
		by    models.SortField
		order models.SortOrder
		want  []string
	}{
		{models.SortBySymbol, models.SortAsc, []string{"AAA", "BBB", "CCC", "DDD"}},
		{models.SortBySymbol, models.SortDesc, []string{"DDD", "CCC", "BBB", "AAA"}},
		{models.SortByPrice, models.SortAsc, []string{"AAA", "CCC", "DDD", "BBB"}},
		{models.SortByChange, models.SortDesc, []string{"DDD", "AAA", "CCC", "BBB"}},
		{models.SortByChangePercent, models.SortDesc, []string{"DDD", "AAA", "CCC", "BBB"}},
		{models.SortByVolume, models.SortDesc, []string{"BBB", "DDD", "AAA", "CCC"}},
		{models.SortByMarketCap, models.SortAsc, []string{"DDD", "AAA", "CCC", "BBB"}},
	}

	for _, tc := range cases {
		s := models.DefaultScannerSettings()
		s.SortBy = tc.by
		s.SortOrder = tc.order

		got := symbols(Apply(sampleQuotes(), s))
		if !equal(got, tc.want) {
			t.Errorf("%s/%s: got %v, want %v", tc.by, tc.order, got, tc.want)
		}
	}
}

func TestApplySortStableOnTies(t *testing.T) {
	s := models.DefaultScannerSettings()
	s.SortBy = models.SortByPrice
	s.SortOrder = models.SortAsc

	// CCC and DDD share a price; input order must survive
	got := symbols(Apply(sampleQuotes(), s))
	if !equal(got, []string{"AAA", "CCC", "DDD", "BBB"}) {
		t.Errorf("tie order lost: %v", got)
	}
}

func TestApplyMaxItems(t *testing.T) {
	s := models.DefaultScannerSettings()
	s.SortBy = models.SortBySymbol
	s.SortOrder = models.SortAsc
	s.MaxItems = 2

	got := symbols(Apply(sampleQuotes(), s))
	if !equal(got, []string{"AAA", "BBB"}) {
		t.Errorf("maxItems: got %v", got)
	}

	s.MaxItems = 0 // falls back to 50
	if got := Apply(sampleQuotes(), s); len(got) != 4 {
		t.Errorf("zero maxItems truncated to %d", len(got))
	}
}

func TestApplyEmptyInput(t *testing.T) {
	if got := Apply(nil, models.DefaultScannerSettings()); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
