package service

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"market_movers/internal/models"
	"market_movers/internal/storage"
)

// Durable document keys.
const (
	LayoutsKey   = "market-movers-layouts"
	TemplatesKey = "market-movers-widget-templates"
	GeometryKey  = "dashboard-layouts"
)

var (
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrEmptyName        = errors.New("name is empty")
)

// Manager owns named layout snapshots and widget templates,
// independent of the live store. Corrupt documents recover to empty.
type Manager struct {
	log  *zap.Logger
	docs *storage.Store
	now  func() time.Time

	mu sync.Mutex
}

func NewManager(log *zap.Logger, docs *storage.Store) *Manager {
	return &Manager{log: log, docs: docs, now: time.Now}
}

// SaveLayout appends a snapshot of geometry plus widget set. Duplicate
// names are kept side by side; an empty name is rejected.
func (m *Manager) SaveLayout(name string, geometry models.GridGeometry, widgets []models.WidgetConfig) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	layouts := m.loadLayoutsLocked()
	layouts = append(layouts, models.SavedLayout{
		Name:      name,
		Timestamp: m.now().UnixMilli(),
		Layouts:   geometry,
		Widgets:   widgets,
	})
	return errors.Wrap(m.docs.Put(LayoutsKey, layouts), "persist layouts")
}

func (m *Manager) ListLayouts() []models.SavedLayout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLayoutsLocked()
}

// LoadLayout returns the first saved layout with the exact name.
func (m *Manager) LoadLayout(name string) (models.SavedLayout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.loadLayoutsLocked() {
		if l.Name == name {
			return l, nil
		}
	}
	return models.SavedLayout{}, ErrLayoutNotFound
}

// DeleteLayout removes every saved layout with the exact name. No-op
// if absent.
func (m *Manager) DeleteLayout(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	layouts := m.loadLayoutsLocked()
	kept := layouts[:0]
	for _, l := range layouts {
		if l.Name != name {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(layouts) {
		return nil
	}
	return errors.Wrap(m.docs.Put(LayoutsKey, kept), "persist layouts")
}

func (m *Manager) loadLayoutsLocked() []models.SavedLayout {
	var layouts []models.SavedLayout
	if err := m.docs.Get(LayoutsKey, &layouts); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("saved layouts unreadable, treating as empty", zap.Error(err))
		}
		return nil
	}
	return layouts
}

// SaveGeometry stores the grid's current per-breakpoint geometry; the
// grid integration writes it, SaveLayout callers read it back.
func (m *Manager) SaveGeometry(geometry models.GridGeometry) error {
	return errors.Wrap(m.docs.Put(GeometryKey, geometry), "persist geometry")
}

// LoadGeometry returns the last written grid geometry, empty when
// nothing usable is stored.
func (m *Manager) LoadGeometry() models.GridGeometry {
	var g models.GridGeometry
	if err := m.docs.Get(GeometryKey, &g); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("grid geometry unreadable, treating as empty", zap.Error(err))
		}
		return models.GridGeometry{}
	}
	return g
}
