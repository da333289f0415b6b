package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/croppilot/croppilot/internal/auth"
	"github.com/croppilot/croppilot/internal/domain"
)

const dateLayout = "2006-01-02"

type logbookCreateRequest struct {
	CropName            string  `json:"crop_name"`
	SowingDate          string  `json:"sowing_date"`
	ExpectedHarvestDate string  `json:"expected_harvest_date,omitempty"`
	DurationDays        int     `json:"duration_days,omitempty"`
	MoneySpent          float64 `json:"money_spent"`
	MoneyEarned         float64 `json:"money_earned"`
	Notes               string  `json:"notes,omitempty"`
}

type logbookListResponse struct {
	Entries []domain.FarmLog `json:"entries"`
}

func (s *Server) handleLogbookList(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	entries, err := s.logs.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logbookListResponse{Entries: entries})
}

func (s *Server) handleLogbookCreate(w http.ResponseWriter, r *http.Request) {
	var req logbookCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.buildEntry(auth.UserID(r.Context()), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if err := s.logs.Append(r.Context(), entry); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// buildEntry validates the request and derives the expected harvest date from
// the crop duration when no explicit date is given.
func (s *Server) buildEntry(userID string, req logbookCreateRequest) (domain.FarmLog, error) {
	var err error
	entry := domain.FarmLog{
		ID:          uuid.NewString(),
		UserID:      userID,
		CropName:    req.CropName,
		MoneySpent:  req.MoneySpent,
		MoneyEarned: req.MoneyEarned,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}

	if req.SowingDate != "" {
		entry.SowingDate, err = time.Parse(dateLayout, req.SowingDate)
		if err != nil {
			return domain.FarmLog{}, errInvalidDate("sowing_date")
		}
	}
	if req.ExpectedHarvestDate != "" {
		entry.ExpectedHarvestDate, err = time.Parse(dateLayout, req.ExpectedHarvestDate)
		if err != nil {
			return domain.FarmLog{}, errInvalidDate("expected_harvest_date")
		}
	} else if req.DurationDays > 0 && !entry.SowingDate.IsZero() {
		entry.ExpectedHarvestDate = domain.HarvestFromDuration(entry.SowingDate, req.DurationDays)
	}

	if err := entry.Validate(); err != nil {
		return domain.FarmLog{}, err
	}
	return entry, nil
}

func errInvalidDate(field string) error {
	return fmt.Errorf("%w: %s must be in YYYY-MM-DD format", domain.ErrInvalidQuery, field)
}

func (s *Server) handleLogbookDelete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.logs.Delete(r.Context(), id, userID); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
