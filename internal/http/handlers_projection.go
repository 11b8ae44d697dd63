package http

import (
	"net/http"

	"intellicard/internal/log"
	"intellicard/internal/projection"
)

// monthResponse decorates a projected month with a display-ready total.
type monthResponse struct {
	projection.MonthlyProjection
	TotalFormatted string `json:"totalFormatted"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	months, err := s.projection.Project(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "projection failed", log.FieldError, err, log.FieldOperation, log.OpProject)
		writeServiceError(w, err)
		return
	}

	private := privateMode(r)
	out := make([]monthResponse, len(months))
	for i, m := range months {
		out[i] = monthResponse{
			MonthlyProjection: m,
			TotalFormatted:    FormatBRL(m.Total, private),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type detailResponse struct {
	projection.Detail
	ValueFormatted string `json:"valueFormatted"`
}

func (s *Server) handleProjectionDetails(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := s.projection.Details(r.Context(), year, month)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "projection details failed",
			log.FieldError, err,
			log.FieldYear, year,
			log.FieldMonth, int(month),
			log.FieldOperation, log.OpProject)
		writeServiceError(w, err)
		return
	}

	private := privateMode(r)
	out := make([]detailResponse, len(details))
	for i, d := range details {
		out[i] = detailResponse{
			Detail:         d,
			ValueFormatted: FormatBRL(d.Value, private),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
