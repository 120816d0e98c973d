package regular_event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RegularEventDTO struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	DayOfWeek   int    `json:"dayOfWeek"`
	EventTime   string `json:"eventTime"`
	WeekOfMonth *int   `json:"weekOfMonth,omitempty"`
	MinistryIds []int  `json:"ministryIds,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List regular event templates
// @Tags RegularEvent
// @Produce json
// @Param ministryId query int false "Filter by ministry"
// @Success 200 {array} RegularEventDTO
// @Router /api/regular-event [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing regular events")
	w.Header().Set("Content-Type", "application/json")

	var events []RegularEvent
	var err error
	if ministryIdParam := r.URL.Query().Get("ministryId"); ministryIdParam != "" {
		ministryId, convErr := strconv.Atoi(ministryIdParam)
		if convErr != nil {
			http.Error(w, convErr.Error(), http.StatusBadRequest)
			return
		}
		events, err = h.service.ListByMinistry(r.Context(), ministryId)
	} else {
		events, err = h.service.List(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RegularEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, toDTO(e))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get a regular event template by ID
// @Tags RegularEvent
// @Produce json
// @Param eventId path int true "Regular Event ID"
// @Success 200 {object} RegularEventDTO
// @Failure 404 {string} string "Regular Event Not Found"
// @Router /api/regular-event/{eventId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRegularEventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a regular event template
// @Tags RegularEvent
// @Accept json
// @Produce json
// @Param event body RegularEventDTO true "Regular Event"
// @Success 201 {object} RegularEventDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/regular-event [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new regular event")
	w.Header().Set("Content-Type", "application/json")
	var dto RegularEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update a regular event template
// @Tags RegularEvent
// @Accept json
// @Produce json
// @Param eventId path int true "Regular Event ID"
// @Param event body RegularEventDTO true "Regular Event"
// @Success 200 {object} RegularEventDTO
// @Failure 404 {string} string "Regular Event Not Found"
// @Router /api/regular-event/{eventId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating regular event")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto RegularEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e := fromDTO(dto)
	e.Id = id
	updated, err := h.service.Update(r.Context(), e)
	if err != nil {
		if errors.Is(err, ErrRegularEventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Deactivate a regular event template
// @Tags RegularEvent
// @Param eventId path int true "Regular Event ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Regular Event Not Found"
// @Router /api/regular-event/{eventId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting regular event")
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
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
		http.Error(w, "regular event not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(e RegularEvent) RegularEventDTO {
	return RegularEventDTO{
		Id:          e.Id,
		Title:       e.Title,
		DayOfWeek:   int(e.DayOfWeek),
		EventTime:   e.EventTime,
		WeekOfMonth: e.WeekOfMonth,
		MinistryIds: e.MinistryIds,
	}
}

func fromDTO(dto RegularEventDTO) RegularEvent {
	return RegularEvent{
		Id:          dto.Id,
		Title:       dto.Title,
		DayOfWeek:   time.Weekday(dto.DayOfWeek),
		EventTime:   dto.EventTime,
		WeekOfMonth: dto.WeekOfMonth,
		MinistryIds: dto.MinistryIds,
	}
}
