package models

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// NewsItem is one simulated headline with sentiment annotation.
type NewsItem struct {
	ID        string    `json:"id"`
	Headline  string    `json:"headline"`
	Source    string    `json:"source"`
	Symbols   []string  `json:"symbols,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
	Timestamp int64     `json:"timestamp"`
}
