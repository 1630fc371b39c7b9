package alerts

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"market_movers/internal/metrics"
	"market_movers/internal/models"
	"market_movers/internal/notify"
)

const (
	maxKeptAlerts     = 50
	suppressionWindow = 30 * time.Second
)

// QuoteSource is the live quote lookup, queried fresh on every check.
type QuoteSource interface {
	GetQuote(symbol string) (models.Quote, error)
}

// StrategySource yields the current strategy list. It is re-read on
// every check so edits take effect without restarting the scheduler;
// nothing is captured when the timer is installed.
type StrategySource interface {
	Strategies() []models.AlertStrategy
}

// SourceFunc adapts a plain function to StrategySource.
type SourceFunc func() []models.AlertStrategy

func (f SourceFunc) Strategies() []models.AlertStrategy { return f() }

type extrema struct {
	high float64
	low  float64
}

// Scheduler checks alert strategies against live quotes on a timer.
type Scheduler struct {
	log        *zap.Logger
	quotes     QuoteSource
	strategies StrategySource
	notifier   notify.Notifier
	now        func() time.Time

	mu        sync.Mutex
	history   map[string]extrema // per-symbol session extrema seen by the scheduler
	alerts    []models.TriggeredAlert
	lastFired map[string]int64 // strategy id -> unix millis of last trigger
	stopCh    chan struct{}
}

func NewScheduler(log *zap.Logger, quotes QuoteSource, strategies StrategySource, notifier notify.Notifier) *Scheduler {
	return &Scheduler{
		log:        log,
		quotes:     quotes,
		strategies: strategies,
		notifier:   notifier,
		now:        time.Now,
		history:    make(map[string]extrema),
		lastFired:  make(map[string]int64),
	}
}

// Start begins periodic checking, replacing any running timer.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.mu.Unlock()

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-t.C:
				s.Check()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	s.mu.Unlock()
}

// Check evaluates every current strategy against the current quote.
// Strategies on unknown symbols are skipped, a trigger within the
// suppression window of the previous one is dropped.
func (s *Scheduler) Check() {
	strategies := s.strategies.Strategies()
	if len(strategies) == 0 {
		return
	}

	now := s.now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	var fired []models.TriggeredAlert
	checked := make(map[string]models.Quote)
	for _, st := range strategies {
		q, ok := checked[st.Symbol]
		if !ok {
			var err error
			q, err = s.quotes.GetQuote(st.Symbol)
			if err != nil {
				continue
			}
			checked[st.Symbol] = q
		}

		prev, seen := s.history[st.Symbol]
		triggered, message := evaluate(st, q, prev, seen)

		if !triggered {
			continue
		}
		if last, ok := s.lastFired[st.ID]; ok && now-last < suppressionWindow.Milliseconds() {
			continue
		}

		s.lastFired[st.ID] = now
		fired = append(fired, models.TriggeredAlert{
			ID:           uuid.NewString(),
			StrategyID:   st.ID,
			StrategyName: st.Name,
			Symbol:       st.Symbol,
			Message:      message,
			Timestamp:    now,
		})
	}

	// extrema advance once per symbol after every strategy saw the
	// pre-check values; two strategies on one symbol must not observe
	// each other's update within the same check
	for sym, q := range checked {
		prev, seen := s.history[sym]
		if !seen {
			s.history[sym] = extrema{high: q.Price, low: q.Price}
			continue
		}
		if q.Price > prev.high {
			prev.high = q.Price
		}
		if q.Price < prev.low {
			prev.low = q.Price
		}
		s.history[sym] = prev
	}

	if len(fired) == 0 {
		return
	}

	s.alerts = append(fired, s.alerts...)
	if len(s.alerts) > maxKeptAlerts {
		s.alerts = s.alerts[:maxKeptAlerts]
	}

	for _, a := range fired {
		metrics.AlertsTriggered.Inc()
		s.notifier.Sendf("[alert] %s: %s", a.Symbol, a.Message)
		s.log.Info("alert triggered",
			zap.String("strategy", a.StrategyID),
			zap.String("symbol", a.Symbol),
			zap.String("message", a.Message),
		)
	}
}

func evaluate(st models.AlertStrategy, q models.Quote, prev extrema, seen bool) (bool, string) {
	switch st.Condition {
	case models.AlertAbove:
		if q.Price > st.Value {
			return true, fmt.Sprintf("%s is above $%.2f (current: $%.2f)", st.Symbol, st.Value, q.Price)
		}
	case models.AlertBelow:
		if q.Price < st.Value {
			return true, fmt.Sprintf("%s is below $%.2f (current: $%.2f)", st.Symbol, st.Value, q.Price)
		}
	case models.AlertChangePercent:
		cp := q.ChangePercent
		if cp < 0 {
			cp = -cp
		}
		if cp >= st.Value {
			return true, fmt.Sprintf("%s changed %.2f%% (threshold: %g%%)", st.Symbol, q.ChangePercent, st.Value)
		}
	case models.AlertVolume:
		if float64(q.Volume) >= st.Value {
			return true, fmt.Sprintf("%s volume is %.2fM (threshold: %.2fM)", st.Symbol, float64(q.Volume)/1e6, st.Value/1e6)
		}
	case models.AlertNewHigh:
		if seen && q.Price > prev.high {
			return true, fmt.Sprintf("%s hit new high: $%.2f", st.Symbol, q.Price)
		}
	case models.AlertNewLow:
		if seen && q.Price < prev.low {
			return true, fmt.Sprintf("%s hit new low: $%.2f", st.Symbol, q.Price)
		}
	}
	return false, ""
}

// Alerts returns the kept trigger history, newest first.
func (s *Scheduler) Alerts() []models.TriggeredAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TriggeredAlert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

func (s *Scheduler) ClearAlerts() {
	s.mu.Lock()
	s.alerts = nil
	s.mu.Unlock()
}
