package httpapi

import (
	"net/http"
)

type riskRequest struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Crop string  `json:"crop,omitempty"`
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := s.advisor.Analyze(r.Context(), req.Lat, req.Lon, req.Crop)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
