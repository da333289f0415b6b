package httpapi

import (
	"net/http"

	"github.com/croppilot/croppilot/internal/catalog"
	"github.com/croppilot/croppilot/internal/domain"
)

type schemesMetaResponse struct {
	DisasterTypes []catalog.DisasterType `json:"disaster_types"`
	Crops         []domain.Crop          `json:"crops"`
	States        []string               `json:"states"`
}

func (s *Server) handleSchemesMeta(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, schemesMetaResponse{
		DisasterTypes: s.catalog.DisasterTypes,
		Crops:         s.catalog.Crops,
		States:        s.catalog.States,
	})
}

type matchRequest struct {
	Crop             string  `json:"crop"`
	DisasterType     string  `json:"disaster_type"`
	LandSizeHectares float64 `json:"land_size_hectares"`
	HasInsurance     bool    `json:"has_insurance"`
	HasKCC           bool    `json:"has_kcc"`
}

type matchResponse struct {
	DisasterType catalog.DisasterType    `json:"disaster_type"`
	Matches      []domain.EligibleScheme `json:"matches"`
}

func (s *Server) handleSchemesMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := domain.DisasterQuery{
		Crop:             req.Crop,
		DisasterType:     req.DisasterType,
		LandSizeHectares: req.LandSizeHectares,
		HasInsurance:     req.HasInsurance,
		HasKCC:           req.HasKCC,
	}

	matches, err := domain.MatchSchemes(query, s.catalog.Schemes)
	if err != nil {
		s.metrics.SchemeMatches.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)
		return
	}

	// Zero matches is a valid answer, not a failure.
	outcome := "matched"
	if len(matches) == 0 {
		outcome = "empty"
	}
	s.metrics.SchemeMatches.WithLabelValues(outcome).Inc()

	writeJSON(w, http.StatusOK, matchResponse{
		DisasterType: s.catalog.DisasterTypeByID(req.DisasterType),
		Matches:      matches,
	})
}
