package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleTaggerStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "tagger stats unavailable for backend "+s.cfg.TaggerBackend, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"backend": s.cfg.TaggerBackend,
		"stats":   s.stats.Snapshot(),
	})
}
