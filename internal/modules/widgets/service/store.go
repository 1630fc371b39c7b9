package service

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"market_movers/internal/metrics"
	"market_movers/internal/models"
)

var ErrWidgetNotFound = errors.New("widget not found")

// State is the store snapshot handed to listeners and persisted under
// the widget-storage key: id->config mapping plus display order.
type State struct {
	ByID   map[string]models.WidgetConfig `json:"byId"`
	AllIDs []string                       `json:"allIds"`
}

// Listener observes the full state after every mutation. Listeners are
// attached at composition time; the store itself knows nothing about
// storage or rendering.
type Listener func(state State)

// Store is the canonical widget collection. The ordered id sequence and
// the mapping are kept mutually consistent across all mutations.
type Store struct {
	log *zap.Logger

	mu        sync.Mutex
	byID      map[string]models.WidgetConfig
	allIDs    []string
	listeners []Listener
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		log:  log,
		byID: make(map[string]models.WidgetConfig),
	}
}

// Subscribe attaches a mutation listener. Not safe to call after the
// store is in use; wire listeners at composition time.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// AddWidget appends a widget. The caller supplies a fresh unique id;
// inserting an existing id is rejected.
func (s *Store) AddWidget(cfg models.WidgetConfig) error {
	if cfg.ID == "" {
		return errors.New("widget without id")
	}

	s.mu.Lock()
	if _, dup := s.byID[cfg.ID]; dup {
		s.mu.Unlock()
		return errors.Errorf("widget %s already exists", cfg.ID)
	}
	s.byID[cfg.ID] = cfg
	s.allIDs = append(s.allIDs, cfg.ID)
	s.mu.Unlock()

	metrics.StoreMutations.WithLabelValues("add").Inc()
	s.notify()
	return nil
}

// UpdateWidget shallow-merges the patch onto the stored config: fields
// present in the patch replace the stored value wholesale, settings and
// layout are not deep-merged.
func (s *Store) UpdateWidget(id string, patch models.WidgetPatch) error {
	s.mu.Lock()
	cfg, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return ErrWidgetNotFound
	}
	if patch.Name != nil {
		cfg.Name = *patch.Name
	}
	if patch.Version != nil {
		cfg.Version = *patch.Version
	}
	if patch.Settings != nil {
		cfg.Settings = patch.Settings
	}
	if patch.Layout != nil {
		cfg.Layout = *patch.Layout
	}
	s.byID[id] = cfg
	s.mu.Unlock()

	metrics.StoreMutations.WithLabelValues("update").Inc()
	s.notify()
	return nil
}

// RemoveWidget deletes id from mapping and sequence. No-op if absent.
func (s *Store) RemoveWidget(id string) {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.byID, id)
	for i, wid := range s.allIDs {
		if wid == id {
			s.allIDs = append(s.allIDs[:i], s.allIDs[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	metrics.StoreMutations.WithLabelValues("remove").Inc()
	s.notify()
}

func (s *Store) ClearWidgets() {
	s.mu.Lock()
	s.byID = make(map[string]models.WidgetConfig)
	s.allIDs = nil
	s.mu.Unlock()

	metrics.StoreMutations.WithLabelValues("clear").Inc()
	s.notify()
}

// LoadWidgets replaces the whole collection. Sequence order follows the
// input; a duplicate id keeps its first position but takes the config
// of its last occurrence.
func (s *Store) LoadWidgets(configs []models.WidgetConfig) {
	byID := make(map[string]models.WidgetConfig, len(configs))
	allIDs := make([]string, 0, len(configs))
	for _, cfg := range configs {
		if _, seen := byID[cfg.ID]; !seen {
			allIDs = append(allIDs, cfg.ID)
		}
		byID[cfg.ID] = cfg
	}

	s.mu.Lock()
	s.byID = byID
	s.allIDs = allIDs
	s.mu.Unlock()

	metrics.StoreMutations.WithLabelValues("load").Inc()
	s.notify()
}

func (s *Store) GetWidget(id string) (models.WidgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.byID[id]
	if !ok {
		return models.WidgetConfig{}, ErrWidgetNotFound
	}
	return cfg, nil
}

// GetAll returns the widgets in display order.
func (s *Store) GetAll() []models.WidgetConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.WidgetConfig, 0, len(s.allIDs))
	for _, id := range s.allIDs {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.allIDs)
}

// CountByType returns how many widgets of the given type exist; used
// for numbered default names ("Scanner 2").
func (s *Store) CountByType(t models.WidgetType) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, id := range s.allIDs {
		if s.byID[id].Type == t {
			n++
		}
	}
	return n
}

// Snapshot copies the full state for listeners and persistence.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	byID := make(map[string]models.WidgetConfig, len(s.byID))
	for id, cfg := range s.byID {
		byID[id] = cfg
	}
	allIDs := make([]string, len(s.allIDs))
	copy(allIDs, s.allIDs)
	return State{ByID: byID, AllIDs: allIDs}
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// AlertStrategies collects the strategies configured on every alerts
// widget; the scheduler re-reads this on each check.
func (s *Store) AlertStrategies() []models.AlertStrategy {
	var out []models.AlertStrategy
	for _, cfg := range s.GetAll() {
		if cfg.Type != models.WidgetAlerts {
			continue
		}
		decoded, err := models.DecodeSettings(cfg.Type, cfg.Settings)
		if err != nil {
			s.log.Warn("undecodable alert settings", zap.String("widget", cfg.ID), zap.Error(err))
			continue
		}
		if as, ok := decoded.(models.AlertSettings); ok {
			out = append(out, as.Strategies...)
		}
	}
	return out
}
