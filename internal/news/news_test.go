package news

import (
	"testing"

	"market_movers/internal/models"
)

func TestLatestNewestFirst(t *testing.T) {
	p := NewProvider()

	items := p.Latest()
	if len(items) == 0 {
		t.Fatal("no headlines")
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Timestamp < items[i].Timestamp {
			t.Errorf("headlines out of order at %d", i)
		}
	}
	for _, item := range items {
		if item.Headline == "" || item.Source == "" {
			t.Errorf("incomplete item: %+v", item)
		}
		switch item.Sentiment {
		case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		default:
			t.Errorf("unknown sentiment %q", item.Sentiment)
		}
	}
}

func TestForSymbol(t *testing.T) {
	p := NewProvider()

	got := p.ForSymbol("AAPL")
	if len(got) == 0 {
		t.Fatal("no AAPL headlines")
	}
	for _, item := range got {
		found := false
		for _, s := range item.Symbols {
			if s == "AAPL" {
				found = true
			}
		}
		if !found {
			t.Errorf("item %s not tagged AAPL: %v", item.ID, item.Symbols)
		}
	}

	if got := p.ForSymbol("ZZZZ"); len(got) != 0 {
		t.Errorf("untagged symbol returned %d items", len(got))
	}
}

func TestLatestReturnsCopy(t *testing.T) {
	p := NewProvider()

	items := p.Latest()
	items[0].Headline = "mutated"
	if p.Latest()[0].Headline == "mutated" {
		t.Error("caller mutation leaked into provider")
	}
}
