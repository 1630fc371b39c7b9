package service

import (
	"sort"
	"strings"

	"market_movers/internal/models"
)

const defaultLimit = 10

// GetQuote returns the current quote for symbol or ErrSymbolNotFound.
func (f *Feed) GetQuote(symbol string) (models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.quotes[symbol]
	if !ok {
		return models.Quote{}, ErrSymbolNotFound
	}
	return *q, nil
}

func (f *Feed) GetAllQuotes() []models.Quote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// TopGainers returns the n quotes with the highest changePercent,
// descending. Stable against enumeration order on ties.
func (f *Feed) TopGainers(n int) []models.Quote {
	return f.topBy(n, func(a, b models.Quote) bool {
		return a.ChangePercent > b.ChangePercent
	})
}

func (f *Feed) TopLosers(n int) []models.Quote {
	return f.topBy(n, func(a, b models.Quote) bool {
		return a.ChangePercent < b.ChangePercent
	})
}

func (f *Feed) VolumeLeaders(n int) []models.Quote {
	return f.topBy(n, func(a, b models.Quote) bool {
		return a.Volume > b.Volume
	})
}

func (f *Feed) topBy(n int, less func(a, b models.Quote) bool) []models.Quote {
	if n <= 0 {
		n = defaultLimit
	}
	quotes := f.GetAllQuotes()
	sort.SliceStable(quotes, func(i, j int) bool { return less(quotes[i], quotes[j]) })
	if len(quotes) > n {
		quotes = quotes[:n]
	}
	return quotes
}

// SearchSymbols matches the query case-insensitively against ticker and
// company name, truncated to limit.
func (f *Feed) SearchSymbols(query string, limit int) []models.Quote {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := strings.ToLower(query)

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Quote, 0, limit)
	for _, sym := range f.order {
		spec := f.universe[sym]
		if !strings.Contains(strings.ToLower(sym), q) &&
			!strings.Contains(strings.ToLower(spec.Name), q) {
			continue
		}
		out = append(out, *f.quotes[sym])
		if len(out) == limit {
			break
		}
	}
	return out
}
