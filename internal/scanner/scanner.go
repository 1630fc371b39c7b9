package scanner

import (
	"sort"

	"market_movers/internal/models"
)

// Apply runs top-list-scanner criteria over a quote snapshot: symbol
// allowlist, range filters, sort, truncate to maxItems.
func Apply(quotes []models.Quote, s models.ScannerSettings) []models.Quote {
	var allow map[string]bool
	if len(s.Symbols) > 0 {
		allow = make(map[string]bool, len(s.Symbols))
		for _, sym := range s.Symbols {
			allow[sym] = true
		}
	}

	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if allow != nil && !allow[q.Symbol] {
			continue
		}
		if !inRange(q.Price, s.PriceMin, s.PriceMax) {
			continue
		}
		if !inRange(float64(q.Volume), s.VolumeMin, s.VolumeMax) {
			continue
		}
		if !inRange(q.ChangePercent, s.ChangePercentMin, s.ChangePercentMax) {
			continue
		}
		if !inRange(q.MarketCap, s.MarketCapMin, s.MarketCapMax) {
			continue
		}
		out = append(out, q)
	}

	sortQuotes(out, s.SortBy, s.SortOrder)

	max := s.MaxItems
	if max <= 0 {
		max = 50
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func inRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func sortQuotes(quotes []models.Quote, by models.SortField, order models.SortOrder) {
	less := func(a, b models.Quote) bool {
		switch by {
		case models.SortBySymbol:
			return a.Symbol < b.Symbol
		case models.SortByPrice:
			return a.Price < b.Price
		case models.SortByChange:
			return a.Change < b.Change
		case models.SortByVolume:
			return a.Volume < b.Volume
		case models.SortByMarketCap:
			return a.MarketCap < b.MarketCap
		default:
			return a.ChangePercent < b.ChangePercent
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		if order == models.SortAsc {
			return less(quotes[i], quotes[j])
		}
		return less(quotes[j], quotes[i])
	})
}
