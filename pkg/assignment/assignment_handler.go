package assignment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
)

type AssignmentDTO struct {
	Id        int    `json:"id"`
	EventId   int    `json:"eventId"`
	AreaId    int    `json:"areaId"`
	ServantId int    `json:"servantId"`
	Note      string `json:"note,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListByEvent godoc
// @Summary List the assignments of an event
// @Tags Assignment
// @Produce json
// @Param eventId path int true "Schedule Event ID"
// @Success 200 {array} AssignmentDTO
// @Router /api/schedule-event/{eventId}/assignment [get]
// @Security XUserId
func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	assignments, err := h.service.ListByEvent(r.Context(), eventId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAssignments(w, assignments)
}

// ListByPeriod godoc
// @Summary List all assignments of a schedule period
// @Tags Assignment
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {array} AssignmentDTO
// @Router /api/schedule-period/{periodId}/assignment [get]
// @Security XUserId
func (h *Handler) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	periodId, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	assignments, err := h.service.ListByPeriod(r.Context(), periodId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAssignments(w, assignments)
}

// Assign godoc
// @Summary Assign a servant to an area of an event
// @Description Replaces the area's previous servant when one was already assigned.
// @Tags Assignment
// @Accept json
// @Produce json
// @Param eventId path int true "Schedule Event ID"
// @Param assignment body AssignmentDTO true "Assignment"
// @Success 200 {object} AssignmentDTO
// @Failure 404 {string} string "Event Not Found"
// @Failure 409 {string} string "Period is closed"
// @Router /api/schedule-event/{eventId}/assignment [post]
// @Security XUserId
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	log.Debug("Storing assignment")
	w.Header().Set("Content-Type", "application/json")
	eventId, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto AssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	assignment := ScheduleAssignment{
		EventId:   eventId,
		AreaId:    dto.AreaId,
		ServantId: dto.ServantId,
		Note:      dto.Note,
	}
	stored, err := h.service.Assign(r.Context(), assignment)
	if err != nil {
		switch {
		case errors.Is(err, schedule_event.ErrScheduleEventNotFound),
			errors.Is(err, schedule_period.ErrPeriodNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrPeriodClosed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete an assignment by ID
// @Tags Assignment
// @Param assignmentId path int true "Assignment ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Assignment Not Found"
// @Router /api/assignment/{assignmentId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting assignment")
	id, err := strconv.Atoi(mux.Vars(r)["assignmentId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteByEventAndArea godoc
// @Summary Clear the assignment of an event's area
// @Tags Assignment
// @Param eventId path int true "Schedule Event ID"
// @Param areaId path int true "Area ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Assignment Not Found"
// @Router /api/schedule-event/{eventId}/assignment/{areaId} [delete]
// @Security XUserId
func (h *Handler) DeleteByEventAndArea(w http.ResponseWriter, r *http.Request) {
	log.Debug("Clearing area assignment")
	vars := mux.Vars(r)
	eventId, err := strconv.Atoi(vars["eventId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	areaId, err := strconv.Atoi(vars["areaId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeleteByEventAndArea(r.Context(), eventId, areaId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAssignments(w http.ResponseWriter, assignments []ScheduleAssignment) {
	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, toDTO(a))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(a ScheduleAssignment) AssignmentDTO {
	return AssignmentDTO{
		Id:        a.Id,
		EventId:   a.EventId,
		AreaId:    a.AreaId,
		ServantId: a.ServantId,
		Note:      a.Note,
	}
}
