package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"market_movers/internal/metrics"
	"market_movers/internal/models"
	"market_movers/internal/storage"
)

// StorageKey is the durable document holding the serialized store.
const StorageKey = "widget-storage"

// document matches the persisted wire shape {widgets: {byId, allIds}}.
type document struct {
	Widgets State `json:"widgets"`
}

// NewPersister returns a store listener that writes the full state to
// durable storage after every mutation. Attached at composition time so
// the store stays testable without a storage dependency.
func NewPersister(log *zap.Logger, docs *storage.Store) Listener {
	return func(state State) {
		if err := docs.Put(StorageKey, document{Widgets: state}); err != nil {
			metrics.PersistErrors.Inc()
			log.Error("failed to persist widget store", zap.Error(err))
		}
	}
}

// LoadPersisted reads the widget set saved by a previous session.
// Missing or corrupt documents recover to an empty collection.
func LoadPersisted(log *zap.Logger, docs *storage.Store) []models.WidgetConfig {
	var doc document
	err := docs.Get(StorageKey, &doc)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("widget storage is corrupt, starting empty", zap.Error(err))
		return nil
	default:
		log.Warn("widget storage unreadable, starting empty", zap.Error(err))
		return nil
	}

	out := make([]models.WidgetConfig, 0, len(doc.Widgets.AllIDs))
	for _, id := range doc.Widgets.AllIDs {
		if cfg, ok := doc.Widgets.ByID[id]; ok {
			out = append(out, cfg)
		}
	}
	return out
}
