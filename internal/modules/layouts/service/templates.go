package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"market_movers/internal/models"
	"market_movers/internal/storage"
)

// SaveTemplate captures type/version/name/settings of the source widget
// as a reusable template; id and layout are not carried over.
func (m *Manager) SaveTemplate(name, description string, src models.WidgetConfig) (models.WidgetTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.WidgetTemplate{}, ErrEmptyName
	}

	tpl := models.WidgetTemplate{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		WidgetType:  src.Type,
		Config: models.ConfigFragment{
			Type:     src.Type,
			Version:  src.Version,
			Name:     src.Name,
			Settings: src.Settings,
		},
		Timestamp: m.now().UnixMilli(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	templates := append(m.loadTemplatesLocked(), tpl)
	if err := m.docs.Put(TemplatesKey, templates); err != nil {
		return models.WidgetTemplate{}, errors.Wrap(err, "persist templates")
	}
	return tpl, nil
}

func (m *Manager) ListTemplates() []models.WidgetTemplate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadTemplatesLocked()
}

// InstantiateTemplate builds a new widget configuration from the
// template fragment: fresh id, supplied placement, ready for AddWidget.
func (m *Manager) InstantiateTemplate(templateID string, placement models.WidgetLayout) (models.WidgetConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tpl := range m.loadTemplatesLocked() {
		if tpl.ID != templateID {
			continue
		}
		return models.WidgetConfig{
			ID:       uuid.NewString(),
			Type:     tpl.Config.Type,
			Version:  tpl.Config.Version,
			Name:     tpl.Config.Name,
			Settings: tpl.Config.Settings,
			Layout:   placement,
		}, nil
	}
	return models.WidgetConfig{}, ErrTemplateNotFound
}

// DeleteTemplate removes the template. No-op if absent.
func (m *Manager) DeleteTemplate(templateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	templates := m.loadTemplatesLocked()
	kept := templates[:0]
	for _, tpl := range templates {
		if tpl.ID != templateID {
			kept = append(kept, tpl)
		}
	}
	if len(kept) == len(templates) {
		return nil
	}
	return errors.Wrap(m.docs.Put(TemplatesKey, kept), "persist templates")
}

func (m *Manager) loadTemplatesLocked() []models.WidgetTemplate {
	var templates []models.WidgetTemplate
	if err := m.docs.Get(TemplatesKey, &templates); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("widget templates unreadable, treating as empty", zap.Error(err))
		}
		return nil
	}
	return templates
}
