package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/linetag/internal/lines"
)

type analyzeRequest struct {
	Text *string `json:"text"`
}

type analyzeResponse struct {
	Result []lines.Line `json:"result"`
}

// handleAnalyze tags the posted text and returns its content tokens by line.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxTextBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == nil {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), *req.Text)
	if err != nil {
		s.log.Error("analyze failed", "error", err)
		msg := "tagger failed"
		if errors.Is(err, lines.ErrContractViolation) {
			msg = "tagger returned malformed tokens"
		}
		jsonError(w, msg+": "+err.Error(), http.StatusBadGateway)
		return
	}

	body, err := json.Marshal(analyzeResponse{Result: result})
	if err != nil {
		s.log.Error("encode result", "error", err)
		jsonError(w, "failed to encode result", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(body, '\n'))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
