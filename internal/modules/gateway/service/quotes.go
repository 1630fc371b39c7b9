package service

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	feedsvc "market_movers/internal/modules/feed/service"
)

func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0 // feed applies its default
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.feed.GetAllQuotes())
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	q, err := s.feed.GetQuote(symbol)
	if err != nil {
		if errors.Is(err, feedsvc.ErrSymbolNotFound) {
			s.writeError(w, http.StatusNotFound, "symbol not found: "+symbol)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleGainers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.feed.TopGainers(limitParam(r)))
}

func (s *Server) handleLosers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.feed.TopLosers(limitParam(r)))
}

func (s *Server) handleVolumeLeaders(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.feed.VolumeLeaders(limitParam(r)))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	s.writeJSON(w, http.StatusOK, s.feed.SearchSymbols(query, limitParam(r)))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		s.writeJSON(w, http.StatusOK, s.news.ForSymbol(symbol))
		return
	}
	s.writeJSON(w, http.StatusOK, s.news.Latest())
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sched.Alerts())
}

func (s *Server) handleClearAlerts(w http.ResponseWriter, r *http.Request) {
	s.sched.ClearAlerts()
	w.WriteHeader(http.StatusNoContent)
}
