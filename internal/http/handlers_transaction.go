package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"intellicard/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	cardID := strings.TrimSpace(r.URL.Query().Get("card"))
	search := sanitizeInput(r.URL.Query().Get("q"))

	txs, err := s.tracker.ListTransactions(r.Context(), cardID, search)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list transactions failed", log.FieldError, err, log.FieldOperation, log.OpList)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tx, err := s.tracker.GetTransaction(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx := req.toTransaction("")

	saved, err := s.tracker.SaveTransaction(r.Context(), tx)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "create transaction failed",
			log.FieldError, err,
			log.FieldCardID, tx.CardID,
			log.FieldOperation, log.OpCreate)
		writeServiceError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "transaction created",
		log.FieldTransactionID, saved.ID,
		log.FieldCardID, saved.CardID,
		log.FieldOperation, log.OpCreate)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.tracker.GetTransaction(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.tracker.SaveTransaction(r.Context(), req.toTransaction(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.tracker.DeleteTransaction(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "transaction deleted",
		log.FieldTransactionID, id,
		log.FieldOperation, log.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}
