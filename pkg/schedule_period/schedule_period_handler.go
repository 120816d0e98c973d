package schedule_period

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ekklesia/ekklesia/pkg/schedule_event"
)

type SchedulePeriodDTO struct {
	Id                   int    `json:"id"`
	MinistryId           int    `json:"ministryId"`
	Month                int    `json:"month"`
	Year                 int    `json:"year"`
	Status               string `json:"status"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	AvailabilityDeadline string `json:"availabilityDeadline,omitempty"`
	AvailabilityToken    string `json:"availabilityToken,omitempty"`
	Notes                string `json:"notes,omitempty"`
	PublishedAt          string `json:"publishedAt,omitempty"`
}

type ScheduleEventDTO struct {
	Id         int    `json:"id"`
	PeriodId   int    `json:"periodId"`
	Title      string `json:"title"`
	EventDate  string `json:"eventDate"`
	EventTime  string `json:"eventTime"`
	EventType  string `json:"eventType"`
	Source     string `json:"source"`
	ExternalId string `json:"externalId,omitempty"`
}

type GenerationResultDTO struct {
	Created int `json:"created"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List schedule periods
// @Tags SchedulePeriod
// @Produce json
// @Param ministryId query int false "Filter by ministry"
// @Success 200 {array} SchedulePeriodDTO
// @Router /api/schedule-period [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing schedule periods")
	w.Header().Set("Content-Type", "application/json")
	ministryId := 0
	if raw := r.URL.Query().Get("ministryId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid ministryId", http.StatusBadRequest)
			return
		}
		ministryId = parsed
	}
	periods, err := h.service.List(r.Context(), ministryId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]SchedulePeriodDTO, 0, len(periods))
	for _, p := range periods {
		dtos = append(dtos, toPeriodDTO(p))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get a schedule period by ID
// @Tags SchedulePeriod
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {object} SchedulePeriodDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Router /api/schedule-period/{periodId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	period, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toPeriodDTO(period)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a schedule period for a ministry and month
// @Tags SchedulePeriod
// @Accept json
// @Produce json
// @Param period body SchedulePeriodDTO true "Schedule Period"
// @Success 201 {object} SchedulePeriodDTO
// @Failure 409 {string} string "Period already exists for this ministry and month"
// @Router /api/schedule-period [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new schedule period")
	w.Header().Set("Content-Type", "application/json")
	var dto SchedulePeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	period, err := fromPeriodDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toPeriodDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update a schedule period
// @Description Updates the deadline and notes, and moves the status along the period lifecycle.
// @Tags SchedulePeriod
// @Accept json
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Param period body SchedulePeriodDTO true "Schedule Period"
// @Success 200 {object} SchedulePeriodDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Failure 409 {string} string "Invalid status transition"
// @Router /api/schedule-period/{periodId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating schedule period")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto SchedulePeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	period, err := fromPeriodDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	period.Id = id
	updated, err := h.service.Update(r.Context(), period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toPeriodDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete a schedule period
// @Description Deletes the period together with its events, availability entries and assignments. Published periods cannot be deleted.
// @Tags SchedulePeriod
// @Param periodId path int true "Schedule Period ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Schedule Period Not Found"
// @Failure 409 {string} string "Period is published"
// @Router /api/schedule-period/{periodId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting schedule period")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "schedule period not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish godoc
// @Summary Publish a schedule period
// @Description Publishes the roster. Fails while the period has no events or while any event is left without an assignment.
// @Tags SchedulePeriod
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {object} SchedulePeriodDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Failure 409 {string} string "Period is not ready to publish"
// @Router /api/schedule-period/{periodId}/publish [post]
// @Security XUserId
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	log.Debug("Publishing schedule period")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	period, err := h.service.Publish(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toPeriodDTO(period)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GenerateEvents godoc
// @Summary Generate fixed events for a period
// @Description Expands the ministry's recurring event templates over the period's month. Safe to call repeatedly.
// @Tags SchedulePeriod
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {object} GenerationResultDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Router /api/schedule-period/{periodId}/generate-events [post]
// @Security XUserId
func (h *Handler) GenerateEvents(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating events for schedule period")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.GenerateEvents(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(GenerationResultDTO{Created: created}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ImportBookings godoc
// @Summary Import approved facility bookings into a period
// @Description Copies approved bookings that fall inside the period into the schedule. Already imported bookings are skipped.
// @Tags SchedulePeriod
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {object} GenerationResultDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Router /api/schedule-period/{periodId}/import-bookings [post]
// @Security XUserId
func (h *Handler) ImportBookings(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing bookings into schedule period")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.ImportBookings(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(GenerationResultDTO{Created: created}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListEvents godoc
// @Summary List the events of a schedule period
// @Tags SchedulePeriod
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {array} ScheduleEventDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Router /api/schedule-period/{periodId}/event [get]
// @Security XUserId
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	events, err := h.service.ListEvents(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]ScheduleEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, toEventDTO(e))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AddEvent godoc
// @Summary Add a one-off event to a schedule period
// @Tags SchedulePeriod
// @Accept json
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Param event body ScheduleEventDTO true "Schedule Event"
// @Success 201 {object} ScheduleEventDTO
// @Failure 404 {string} string "Schedule Period Not Found"
// @Failure 409 {string} string "Period is published"
// @Router /api/schedule-period/{periodId}/event [post]
// @Security XUserId
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding event to schedule period")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ScheduleEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	event, err := fromEventDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.AddEvent(r.Context(), id, event)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toEventDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteEvent godoc
// @Summary Delete a schedule event
// @Description Events can only be deleted while their period is still in draft.
// @Tags SchedulePeriod
// @Param eventId path int true "Schedule Event ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Schedule Event Not Found"
// @Failure 409 {string} string "Period is past draft"
// @Router /api/schedule-event/{eventId} [delete]
// @Security XUserId
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting schedule event")
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeleteEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "schedule event not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var unassigned *UnassignedEventsError
	switch {
	case errors.Is(err, ErrPeriodNotFound), errors.Is(err, schedule_event.ErrScheduleEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrPeriodExists),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrNoEvents),
		errors.Is(err, ErrPeriodLocked),
		errors.Is(err, ErrEventNotDeletable),
		errors.As(err, &unassigned):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toPeriodDTO(p SchedulePeriod) SchedulePeriodDTO {
	dto := SchedulePeriodDTO{
		Id:                p.Id,
		MinistryId:        p.MinistryId,
		Month:             p.Month,
		Year:              p.Year,
		Status:            string(p.Status),
		StartDate:         p.StartDate.Format(time.DateOnly),
		EndDate:           p.EndDate.Format(time.DateOnly),
		AvailabilityToken: p.AvailabilityToken,
		Notes:             p.Notes,
	}
	if p.AvailabilityDeadline != nil {
		dto.AvailabilityDeadline = p.AvailabilityDeadline.Format(time.RFC3339)
	}
	if p.PublishedAt != nil {
		dto.PublishedAt = p.PublishedAt.Format(time.RFC3339)
	}
	return dto
}

func fromPeriodDTO(dto SchedulePeriodDTO) (SchedulePeriod, error) {
	period := SchedulePeriod{
		Id:         dto.Id,
		MinistryId: dto.MinistryId,
		Month:      dto.Month,
		Year:       dto.Year,
		Notes:      dto.Notes,
	}
	if dto.Status != "" {
		status, err := ParseStatus(dto.Status)
		if err != nil {
			return SchedulePeriod{}, err
		}
		period.Status = status
	}
	if dto.AvailabilityDeadline != "" {
		deadline, err := time.Parse(time.RFC3339, dto.AvailabilityDeadline)
		if err != nil {
			return SchedulePeriod{}, err
		}
		period.AvailabilityDeadline = &deadline
	}
	return period, nil
}

func toEventDTO(e schedule_event.ScheduleEvent) ScheduleEventDTO {
	dto := ScheduleEventDTO{
		Id:        e.Id,
		PeriodId:  e.PeriodId,
		Title:     e.Title,
		EventDate: e.EventDate.Format(time.DateOnly),
		EventTime: e.EventTime,
		EventType: string(e.EventType),
		Source:    string(e.Source),
	}
	if e.ExternalId != nil {
		dto.ExternalId = *e.ExternalId
	}
	return dto
}

func fromEventDTO(dto ScheduleEventDTO) (schedule_event.ScheduleEvent, error) {
	var eventDate time.Time
	if dto.EventDate != "" {
		parsed, err := time.Parse(time.DateOnly, dto.EventDate)
		if err != nil {
			return schedule_event.ScheduleEvent{}, err
		}
		eventDate = parsed
	}
	return schedule_event.ScheduleEvent{
		Id:        dto.Id,
		PeriodId:  dto.PeriodId,
		Title:     dto.Title,
		EventDate: eventDate,
		EventTime: dto.EventTime,
		EventType: schedule_event.EventType(dto.EventType),
		Source:    schedule_event.Source(dto.Source),
	}, nil
}
