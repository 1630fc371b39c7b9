package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"market_movers/internal/metrics"
	"market_movers/internal/models"
)

var ErrSymbolNotFound = errors.New("symbol not found")

// Rand and Clock are injectable so tests can drive the walk
// deterministically.
type Rand interface {
	Float64() float64
	Int63n(n int64) int64
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewRand() Rand   { return rand.New(rand.NewSource(time.Now().UnixNano())) }
func NewClock() Clock { return realClock{} }

// Feed owns the authoritative simulated quote per tracked symbol and
// broadcasts full snapshots to subscribers on every tick.
type Feed struct {
	log   *zap.Logger
	rnd   Rand
	clock Clock

	mu       sync.Mutex
	universe map[string]models.SymbolSpec
	quotes   map[string]*models.Quote
	shares   map[string]int64 // outstanding shares, fixed per session
	order    []string         // enumeration order, keeps top-N ties stable

	subs    map[int]func([]models.Quote)
	nextSub int

	stopCh chan struct{}
}

func NewFeed(log *zap.Logger, rnd Rand, clock Clock) *Feed {
	return &Feed{
		log:      log,
		rnd:      rnd,
		clock:    clock,
		universe: make(map[string]models.SymbolSpec),
		quotes:   make(map[string]*models.Quote),
		shares:   make(map[string]int64),
		subs:     make(map[int]func([]models.Quote)),
	}
}

// Initialize seeds one quote per spec. The only hard-fail point of the
// feed: a malformed universe is rejected here, ticks never fail.
func (f *Feed) Initialize(specs []models.SymbolSpec) error {
	if len(specs) == 0 {
		return errors.New("feed: empty symbol universe")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, spec := range specs {
		if spec.Symbol == "" {
			return errors.New("feed: symbol spec without symbol")
		}
		if spec.BasePrice <= 0 {
			return errors.Errorf("feed: %s has non-positive base price", spec.Symbol)
		}
		if spec.Volatility < 0 {
			return errors.Errorf("feed: %s has negative volatility", spec.Symbol)
		}
		if _, dup := f.universe[spec.Symbol]; dup {
			return errors.Errorf("feed: duplicate symbol %s", spec.Symbol)
		}

		price := f.walk(spec.BasePrice, spec.Volatility*0.5)
		previousClose := price * (1 - f.rnd.Float64()*0.02 + 0.01)
		change := price - previousClose
		shares := f.rnd.Int63n(10_000_000_000) + 1_000_000_000

		f.universe[spec.Symbol] = spec
		f.shares[spec.Symbol] = shares
		f.order = append(f.order, spec.Symbol)
		f.quotes[spec.Symbol] = &models.Quote{
			Symbol:        spec.Symbol,
			Price:         price,
			Change:        change,
			ChangePercent: change / previousClose * 100,
			Volume:        f.rnd.Int63n(99_000_000) + 1_000_000,
			High:          price * (1 + f.rnd.Float64()*0.015),
			Low:           price * (1 - f.rnd.Float64()*0.015),
			Open:          previousClose * (1 + (f.rnd.Float64()-0.5)*0.01),
			PreviousClose: previousClose,
			Timestamp:     f.clock.Now().UnixMilli(),
			MarketCap:     price * float64(shares),
		}
	}
	return nil
}

// walk is one bounded random-walk step, never below the penny floor.
func (f *Feed) walk(price, volatility float64) float64 {
	step := price * volatility * (f.rnd.Float64() - 0.5) * 2
	next := price + step
	if next < 0.01 {
		return 0.01
	}
	return next
}

// Start begins periodic advancement, replacing any running timer, and
// immediately pushes the current snapshot so late subscribers do not
// wait a full interval.
func (f *Feed) Start(interval time.Duration) {
	f.mu.Lock()
	if f.stopCh != nil {
		close(f.stopCh)
	}
	stopCh := make(chan struct{})
	f.stopCh = stopCh
	f.mu.Unlock()

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-t.C:
				f.Tick()
			}
		}
	}()

	f.log.Info("feed started", zap.Duration("interval", interval))
	f.notify()
}

// Stop halts advancement. Safe to call when not running.
func (f *Feed) Stop() {
	f.mu.Lock()
	if f.stopCh != nil {
		close(f.stopCh)
		f.stopCh = nil
	}
	f.mu.Unlock()
}

func (f *Feed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCh != nil
}

// Tick advances every quote one walk step and notifies subscribers.
func (f *Feed) Tick() {
	f.mu.Lock()
	now := f.clock.Now().UnixMilli()
	for _, sym := range f.order {
		q := f.quotes[sym]
		spec := f.universe[sym]

		price := f.walk(q.Price, spec.Volatility)
		q.Price = price
		q.Change = price - q.PreviousClose
		q.ChangePercent = q.Change / q.PreviousClose * 100
		if price > q.High {
			q.High = price
		}
		if price < q.Low {
			q.Low = price
		}
		q.Volume += f.rnd.Int63n(100_000) + 10_000
		q.Timestamp = now
		q.MarketCap = price * float64(f.shares[sym])
	}
	f.mu.Unlock()

	metrics.FeedTicks.Inc()
	f.notify()
}

// Subscribe registers cb for every tick, calls it once immediately with
// the current snapshot, and returns its unsubscribe handle. After the
// handle returns the callback is never invoked again.
func (f *Feed) Subscribe(cb func([]models.Quote)) func() {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = cb
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.invoke(cb, snap)

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *Feed) notify() {
	f.mu.Lock()
	snap := f.snapshotLocked()
	cbs := make([]func([]models.Quote), 0, len(f.subs))
	for _, cb := range f.subs {
		cbs = append(cbs, cb)
	}
	f.mu.Unlock()

	for _, cb := range cbs {
		f.invoke(cb, snap)
	}
}

// invoke isolates subscriber failures: one panicking callback must not
// starve the rest of the notification round.
func (f *Feed) invoke(cb func([]models.Quote), snap []models.Quote) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("feed subscriber panicked", zap.Any("panic", r))
		}
	}()
	cb(snap)
}

func (f *Feed) snapshotLocked() []models.Quote {
	out := make([]models.Quote, 0, len(f.order))
	for _, sym := range f.order {
		out = append(out, *f.quotes[sym])
	}
	return out
}
