package news

import (
	"sync"
	"time"

	"market_movers/internal/models"
)

// Provider serves simulated headlines. Items are static per session,
// stamped relative to construction time so the freshest entry is first.
type Provider struct {
	mu    sync.Mutex
	items []models.NewsItem
}

func NewProvider() *Provider {
	now := time.Now()
	at := func(agoMin int) int64 {
		return now.Add(-time.Duration(agoMin) * time.Minute).UnixMilli()
	}

	return &Provider{items: []models.NewsItem{
		{ID: "n1", Headline: "Tech stocks rally as AI optimism continues", Source: "Market Watch", Symbols: []string{"NVDA", "MSFT", "GOOGL"}, Sentiment: models.SentimentPositive, Timestamp: at(5)},
		{ID: "n2", Headline: "Fed signals possible rate pause in upcoming meeting", Source: "Reuters", Symbols: []string{"SPY", "QQQ"}, Sentiment: models.SentimentPositive, Timestamp: at(18)},
		{ID: "n3", Headline: "Energy sector slides on weaker crude prices", Source: "Bloomberg", Symbols: []string{"XOM", "CVX"}, Sentiment: models.SentimentNegative, Timestamp: at(32)},
		{ID: "n4", Headline: "Apple supplier reports record quarterly orders", Source: "CNBC", Symbols: []string{"AAPL"}, Sentiment: models.SentimentPositive, Timestamp: at(47)},
		{ID: "n5", Headline: "Retail earnings beat expectations across the board", Source: "Market Watch", Symbols: []string{"WMT", "HD"}, Sentiment: models.SentimentPositive, Timestamp: at(63)},
		{ID: "n6", Headline: "Chipmakers mixed ahead of export guidance", Source: "Reuters", Symbols: []string{"AMD", "INTC", "QCOM"}, Sentiment: models.SentimentNeutral, Timestamp: at(81)},
		{ID: "n7", Headline: "Streaming subscriber growth slows industry-wide", Source: "Bloomberg", Symbols: []string{"NFLX", "DIS"}, Sentiment: models.SentimentNegative, Timestamp: at(97)},
		{ID: "n8", Headline: "Bank stress tests show resilient capital buffers", Source: "CNBC", Symbols: []string{"JPM", "BAC", "GS"}, Sentiment: models.SentimentPositive, Timestamp: at(120)},
	}}
}

// Latest returns all headlines, newest first.
func (p *Provider) Latest() []models.NewsItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]models.NewsItem, len(p.items))
	copy(out, p.items)
	return out
}

// ForSymbol returns headlines tagged with the given symbol.
func (p *Provider) ForSymbol(symbol string) []models.NewsItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []models.NewsItem
	for _, item := range p.items {
		for _, s := range item.Symbols {
			if s == symbol {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
