package service

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"market_movers/internal/models"
)

// LoadUniverse reads the symbol universe from a YAML file, falling back
// to the built-in set when path is empty.
func LoadUniverse(path string) ([]models.SymbolSpec, error) {
	if path == "" {
		return DefaultUniverse(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read universe %s", path)
	}

	var doc struct {
		Symbols []models.SymbolSpec `yaml:"symbols"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode universe %s", path)
	}
	if len(doc.Symbols) == 0 {
		return nil, errors.Errorf("universe %s has no symbols", path)
	}
	return doc.Symbols, nil
}

// DefaultUniverse is the built-in tracked set: large caps across
// sectors, a few high-volatility names, and the index ETFs the
// market-overview widget displays.
func DefaultUniverse() []models.SymbolSpec {
	return []models.SymbolSpec{
		// Tech
		{Symbol: "AAPL", Name: "Apple Inc.", BasePrice: 175, Volatility: 0.02},
		{Symbol: "MSFT", Name: "Microsoft Corporation", BasePrice: 380, Volatility: 0.015},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", BasePrice: 140, Volatility: 0.018},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", BasePrice: 145, Volatility: 0.022},
		{Symbol: "META", Name: "Meta Platforms Inc.", BasePrice: 350, Volatility: 0.025},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", BasePrice: 495, Volatility: 0.03},
		{Symbol: "TSLA", Name: "Tesla Inc.", BasePrice: 242, Volatility: 0.04},

		// Finance
		{Symbol: "JPM", Name: "JPMorgan Chase", BasePrice: 155, Volatility: 0.012},
		{Symbol: "BAC", Name: "Bank of America", BasePrice: 35, Volatility: 0.015},
		{Symbol: "WFC", Name: "Wells Fargo", BasePrice: 48, Volatility: 0.013},
		{Symbol: "GS", Name: "Goldman Sachs", BasePrice: 385, Volatility: 0.018},

		// Healthcare
		{Symbol: "JNJ", Name: "Johnson & Johnson", BasePrice: 158, Volatility: 0.008},
		{Symbol: "UNH", Name: "UnitedHealth Group", BasePrice: 520, Volatility: 0.01},
		{Symbol: "PFE", Name: "Pfizer Inc.", BasePrice: 28, Volatility: 0.02},

		// Consumer
		{Symbol: "WMT", Name: "Walmart Inc.", BasePrice: 65, Volatility: 0.009},
		{Symbol: "HD", Name: "Home Depot", BasePrice: 340, Volatility: 0.012},
		{Symbol: "MCD", Name: "McDonald's Corp", BasePrice: 295, Volatility: 0.01},
		{Symbol: "NKE", Name: "NIKE Inc.", BasePrice: 105, Volatility: 0.018},

		// Energy
		{Symbol: "XOM", Name: "Exxon Mobil", BasePrice: 110, Volatility: 0.015},
		{Symbol: "CVX", Name: "Chevron Corporation", BasePrice: 155, Volatility: 0.014},

		// Media
		{Symbol: "DIS", Name: "Walt Disney Company", BasePrice: 92, Volatility: 0.02},
		{Symbol: "NFLX", Name: "Netflix Inc.", BasePrice: 450, Volatility: 0.025},

		// Semiconductors
		{Symbol: "AMD", Name: "Advanced Micro Devices", BasePrice: 125, Volatility: 0.028},
		{Symbol: "INTC", Name: "Intel Corporation", BasePrice: 45, Volatility: 0.02},
		{Symbol: "QCOM", Name: "Qualcomm Inc.", BasePrice: 165, Volatility: 0.022},

		// High volatility
		{Symbol: "GME", Name: "GameStop Corp.", BasePrice: 18, Volatility: 0.08},
		{Symbol: "AMC", Name: "AMC Entertainment", BasePrice: 5, Volatility: 0.07},
		{Symbol: "BB", Name: "BlackBerry Limited", BasePrice: 3.5, Volatility: 0.06},
		{Symbol: "SOFI", Name: "SoFi Technologies", BasePrice: 8, Volatility: 0.05},
		{Symbol: "PLTR", Name: "Palantir Technologies", BasePrice: 18, Volatility: 0.04},
		{Symbol: "RIVN", Name: "Rivian Automotive", BasePrice: 12, Volatility: 0.055},

		// Index ETFs for the market-overview widget
		{Symbol: "SPY", Name: "S&P 500", BasePrice: 455, Volatility: 0.008},
		{Symbol: "QQQ", Name: "NASDAQ", BasePrice: 378, Volatility: 0.01},
		{Symbol: "DIA", Name: "Dow Jones", BasePrice: 355, Volatility: 0.007},
		{Symbol: "IWM", Name: "Russell 2000", BasePrice: 185, Volatility: 0.012},
		{Symbol: "VIX", Name: "Volatility Index", BasePrice: 14, Volatility: 0.05},
	}
}
