package service

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"market_movers/internal/models"
	regsvc "market_movers/internal/modules/registry/service"
	widgetsvc "market_movers/internal/modules/widgets/service"
)

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.GetAll())
}

func (s *Server) handleWidgetTypes(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.Entries()
	out := make([]models.ConfigFragment, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.DefaultConfig)
	}
	s.writeJSON(w, http.StatusOK, out)
}

type addWidgetBody struct {
	Type models.WidgetType `json:"type"`
	Name string            `json:"name,omitempty"`
}

// handleAddWidget instantiates a widget of a registered type with the
// type's default settings, a numbered display name, and a computed
// placement.
func (s *Server) handleAddWidget(w http.ResponseWriter, r *http.Request) {
	var body addWidgetBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	entry, err := s.registry.Resolve(body.Type)
	if err != nil {
		if errors.Is(err, regsvc.ErrUnknownWidgetType) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := body.Name
	if name == "" {
		name = s.defaultName(body.Type, entry)
	}

	cfg := models.WidgetConfig{
		ID:       uuid.NewString(),
		Type:     entry.Type,
		Version:  entry.DefaultConfig.Version,
		Name:     name,
		Settings: cloneSettings(entry.DefaultConfig.Settings),
		Layout:   s.grid.NextPlacement(),
	}
	if err := models.ValidateConfig(&cfg); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.AddWidget(cfg); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, cfg)
}

// defaultName numbers per-instance widget names the way the dashboard
// does: scanners count every widget, watchlists and charts count their
// own type, the rest keep the registry default.
func (s *Server) defaultName(t models.WidgetType, entry regsvc.Entry) string {
	switch t {
	case models.WidgetTopListScanner:
		return fmt.Sprintf("Scanner %d", s.store.Count()+1)
	case models.WidgetWatchlist:
		return fmt.Sprintf("Watchlist %d", s.store.CountByType(t)+1)
	case models.WidgetChart:
		return fmt.Sprintf("Chart %d", s.store.CountByType(t)+1)
	default:
		return entry.DefaultConfig.Name
	}
}

type widgetPatchBody struct {
	Name     *string                `json:"name"`
	Version  *string                `json:"version"`
	Settings map[string]interface{} `json:"settings"`
	Layout   *models.WidgetLayout   `json:"layout"`
}

// handleUpdateWidget validates a partial update at the editing boundary
// and shallow-merges it into the store. Settings are checked against
// the widget type's schema before the store ever sees them.
func (s *Server) handleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body widgetPatchBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	existing, err := s.store.GetWidget(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "widget not found: "+id)
		return
	}

	if body.Name != nil && (*body.Name == "" || len(*body.Name) > 100) {
		s.writeError(w, http.StatusBadRequest, "name must be 1-100 characters")
		return
	}
	if body.Layout != nil {
		if err := models.Validate(body.Layout); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if body.Settings != nil {
		if _, err := models.DecodeSettings(existing.Type, body.Settings); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	patch := models.WidgetPatch{
		Name:     body.Name,
		Version:  body.Version,
		Settings: body.Settings,
		Layout:   body.Layout,
	}
	if err := s.store.UpdateWidget(id, patch); err != nil {
		if errors.Is(err, widgetsvc.ErrWidgetNotFound) {
			s.writeError(w, http.StatusNotFound, "widget not found: "+id)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, _ := s.store.GetWidget(id)
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleRemoveWidget(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveWidget(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearWidgets(w http.ResponseWriter, r *http.Request) {
	s.store.ClearWidgets()
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadWidgets replaces the whole collection.
func (s *Server) handleLoadWidgets(w http.ResponseWriter, r *http.Request) {
	var configs []models.WidgetConfig
	if !s.decodeBody(w, r, &configs) {
		return
	}
	for i := range configs {
		if err := models.ValidateConfig(&configs[i]); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s.store.LoadWidgets(configs)
	s.writeJSON(w, http.StatusOK, s.store.GetAll())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.grid.RenderPlan())
}

func (s *Server) handleGridItems(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.grid.ToGridItems())
}

func (s *Server) handleGridChange(w http.ResponseWriter, r *http.Request) {
	var items []models.GridItem
	if !s.decodeBody(w, r, &items) {
		return
	}
	s.grid.ApplyChanges(r.PathValue("breakpoint"), items)
	w.WriteHeader(http.StatusNoContent)
}

func cloneSettings(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
