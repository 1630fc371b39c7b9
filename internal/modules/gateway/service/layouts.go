package service

import (
	"net/http"

	"github.com/pkg/errors"

	layoutsvc "market_movers/internal/modules/layouts/service"
)

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.layouts.ListLayouts())
}

type saveLayoutBody struct {
	Name string `json:"name"`
}

// handleSaveLayout snapshots the current grid geometry plus the live
// widget set under the given name.
func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	var body saveLayoutBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	err := s.layouts.SaveLayout(body.Name, s.layouts.LoadGeometry(), s.store.GetAll())
	if err != nil {
		if errors.Is(err, layoutsvc.ErrEmptyName) {
			s.writeError(w, http.StatusBadRequest, "layout name is required")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handleLoadLayout restores a saved snapshot: the widget set replaces
// the store wholesale and the saved geometry becomes current.
func (s *Server) handleLoadLayout(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	layout, err := s.layouts.LoadLayout(name)
	if err != nil {
		if errors.Is(err, layoutsvc.ErrLayoutNotFound) {
			s.writeError(w, http.StatusNotFound, "layout not found: "+name)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.store.LoadWidgets(layout.Widgets)
	if err := s.layouts.SaveGeometry(layout.Layouts); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.layouts.DeleteLayout(r.PathValue("name")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.layouts.ListTemplates())
}

type saveTemplateBody struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WidgetID    string `json:"widgetId"`
}

// handleSaveTemplate captures an existing widget's configuration as a
// reusable template.
func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var body saveTemplateBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	src, err := s.store.GetWidget(body.WidgetID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "widget not found: "+body.WidgetID)
		return
	}

	tpl, err := s.layouts.SaveTemplate(body.Name, body.Description, src)
	if err != nil {
		if errors.Is(err, layoutsvc.ErrEmptyName) {
			s.writeError(w, http.StatusBadRequest, "template name is required")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, tpl)
}

// handleInstantiateTemplate builds a fresh widget from the template and
// adds it to the dashboard at the next computed placement.
func (s *Server) handleInstantiateTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	cfg, err := s.layouts.InstantiateTemplate(id, s.grid.NextPlacement())
	if err != nil {
		if errors.Is(err, layoutsvc.ErrTemplateNotFound) {
			s.writeError(w, http.StatusNotFound, "template not found: "+id)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.AddWidget(cfg); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, cfg)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.layouts.DeleteTemplate(r.PathValue("id")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
