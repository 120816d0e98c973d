package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ekklesia/ekklesia/pkg/schedule_period"
)

type FormPeriodDTO struct {
	Id       int    `json:"id"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Deadline string `json:"deadline,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type FormEventDTO struct {
	Id        int    `json:"id"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
	EventTime string `json:"eventTime"`
}

type FormServantDTO struct {
	Id     int    `json:"id"`
	Name   string `json:"name"`
	AreaId int    `json:"areaId"`
}

type EntryDTO struct {
	ServantId   int    `json:"servantId"`
	EventId     int    `json:"eventId"`
	IsAvailable bool   `json:"isAvailable"`
	Note        string `json:"note,omitempty"`
	SubmittedAt string `json:"submittedAt,omitempty"`
}

type FormDTO struct {
	Period   FormPeriodDTO    `json:"period"`
	Events   []FormEventDTO   `json:"events"`
	Servants []FormServantDTO `json:"servants"`
	Entries  []EntryDTO       `json:"entries"`
}

type SubmissionDTO struct {
	ServantId int        `json:"servantId"`
	Entries   []EntryDTO `json:"entries"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetForm godoc
// @Summary Get the public availability form for a period
// @Description Resolves the form behind an availability link. Available only while the period is collecting and before the deadline.
// @Tags Availability
// @Produce json
// @Param token path string true "Availability token"
// @Success 200 {object} FormDTO
// @Failure 404 {string} string "Unknown token"
// @Failure 409 {string} string "Collection is not open"
// @Failure 410 {string} string "Deadline has passed"
// @Router /api/availability/{token} [get]
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	log.Debug("Serving availability form")
	w.Header().Set("Content-Type", "application/json")
	form, err := h.service.GetForm(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		writeFormError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toFormDTO(form)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Submit godoc
// @Summary Submit a servant's availability
// @Description Stores the servant's answers for the period. A resubmission replaces the previous one in full.
// @Tags Availability
// @Accept json
// @Param token path string true "Availability token"
// @Param submission body SubmissionDTO true "Submission"
// @Success 204 "No Content"
// @Failure 403 {string} string "Servant is not part of this ministry"
// @Failure 404 {string} string "Unknown token"
// @Failure 409 {string} string "Collection is not open"
// @Failure 410 {string} string "Deadline has passed"
// @Router /api/availability/{token} [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log.Debug("Storing availability submission")
	var dto SubmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries := make([]ServantAvailability, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		entries = append(entries, ServantAvailability{
			ServantId:   dto.ServantId,
			EventId:     e.EventId,
			IsAvailable: e.IsAvailable,
			Note:        e.Note,
		})
	}
	if err := h.service.Submit(r.Context(), mux.Vars(r)["token"], dto.ServantId, entries); err != nil {
		writeFormError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListForPeriod godoc
// @Summary List all availability entries of a period
// @Tags Availability
// @Produce json
// @Param periodId path int true "Schedule Period ID"
// @Success 200 {array} EntryDTO
// @Router /api/schedule-period/{periodId}/availability [get]
// @Security XUserId
func (h *Handler) ListForPeriod(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	periodId, err := strconv.Atoi(mux.Vars(r)["periodId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries, err := h.service.ListByPeriod(r.Context(), periodId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toEntryDTO(e))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule_period.ErrPeriodNotFound):
		http.Error(w, "availability form not found", http.StatusNotFound)
	case errors.Is(err, ErrFormClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrDeadlinePassed):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.Is(err, ErrServantNotInMinistry):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrUnknownEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toFormDTO(form Form) FormDTO {
	dto := FormDTO{
		Period: FormPeriodDTO{
			Id:    form.Period.Id,
			Month: form.Period.Month,
			Year:  form.Period.Year,
			Notes: form.Period.Notes,
		},
		Events:   make([]FormEventDTO, 0, len(form.Events)),
		Servants: make([]FormServantDTO, 0, len(form.Servants)),
		Entries:  make([]EntryDTO, 0, len(form.Entries)),
	}
	if form.Period.AvailabilityDeadline != nil {
		dto.Period.Deadline = form.Period.AvailabilityDeadline.Format(time.RFC3339)
	}
	for _, e := range form.Events {
		dto.Events = append(dto.Events, FormEventDTO{
			Id:        e.Id,
			Title:     e.Title,
			EventDate: e.EventDate.Format(time.DateOnly),
			EventTime: e.EventTime,
		})
	}
	for _, s := range form.Servants {
		dto.Servants = append(dto.Servants, FormServantDTO{Id: s.Id, Name: s.Name, AreaId: s.AreaId})
	}
	for _, entry := range form.Entries {
		dto.Entries = append(dto.Entries, toEntryDTO(entry))
	}
	return dto
}

func toEntryDTO(e ServantAvailability) EntryDTO {
	dto := EntryDTO{
		ServantId:   e.ServantId,
		EventId:     e.EventId,
		IsAvailable: e.IsAvailable,
		Note:        e.Note,
	}
	if !e.SubmittedAt.IsZero() {
		dto.SubmittedAt = e.SubmittedAt.Format(time.RFC3339)
	}
	return dto
}
