package google

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ekklesia/ekklesia/pkg/schedule_period"
)

type CalendarItemDTO struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type ExportResultDTO struct {
	Exported int `json:"exported"`
}

type exportRequest struct {
	CalendarId string `json:"calendarId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListCalendars godoc
// @Summary List the user's Google calendars
// @Tags Google
// @Produce json
// @Success 200 {array} CalendarItemDTO
// @Failure 401 {string} string "Google authentication required"
// @Router /api/integrations/google/calendars [get]
// @Security XUserId
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		writeExportError(w, err)
		return
	}
	dtos := make([]CalendarItemDTO, 0, len(calendars))
	for _, c := range calendars {
		dtos = append(dtos, CalendarItemDTO{Id: c.ID, Summary: c.Summary})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportPeriod godoc
// @Summary Export a schedule period to Google Calendar
// @Tags Google
// @Accept json
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Param request body exportRequest false "Export options"
// @Success 200 {object} ExportResultDTO
// @Failure 401 {string} string "Google authentication required"
// @Failure 404 {string} string "Schedule Period Not Found"
// @Router /api/schedule-period/{periodId}/export-to-google [post]
// @Security XUserId
func (h *Handler) ExportPeriod(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting schedule period to Google Calendar")
	w.Header().Set("Content-Type", "application/json")
	periodId, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req exportRequest
	if r.Body != nil {
		// calendarId is optional, a missing body means the primary calendar
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	exported, err := h.service.ExportPeriod(r.Context(), periodId, req.CalendarId)
	if err != nil {
		writeExportError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(ExportResultDTO{Exported: exported}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeExportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, schedule_period.ErrPeriodNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
