package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"intellicard/internal/log"
	"intellicard/internal/services"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.tracker.ListCards(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list cards failed", log.FieldError, err, log.FieldOperation, log.OpList)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	card, err := s.tracker.GetCard(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	card := req.toCard("")

	saved, err := s.tracker.SaveCard(r.Context(), card)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "create card failed",
			log.FieldError, err,
			log.FieldCardName, card.Name,
			log.FieldOperation, log.OpCreate)
		writeServiceError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "card created",
		log.FieldCardID, saved.ID,
		log.FieldCardName, saved.Name,
		log.FieldOperation, log.OpCreate)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.tracker.GetCard(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.tracker.SaveCard(r.Context(), req.toCard(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.tracker.DeleteCard(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "card deleted",
		log.FieldCardID, id,
		log.FieldOperation, log.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}

// cardSummaryResponse decorates the service summary with a display-ready
// used-limit string.
type cardSummaryResponse struct {
	services.CardSummary
	UsedLimitFormatted string `json:"usedLimitFormatted"`
}

func (s *Server) handleCardSummary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	summary, err := s.projection.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cardSummaryResponse{
		CardSummary:        summary,
		UsedLimitFormatted: FormatBRL(summary.UsedLimit, privateMode(r)),
	})
}
