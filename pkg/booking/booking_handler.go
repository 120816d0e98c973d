package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BookingDTO struct {
	Id            int    `json:"id"`
	EnvironmentId int    `json:"environmentId"`
	Title         string `json:"title"`
	EventDate     string `json:"eventDate"`
	EventTime     string `json:"eventTime"`
	Status        string `json:"status"`
	RequestedBy   string `json:"requestedBy,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Success 200 {array} BookingDTO
// @Router /api/booking [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing bookings")
	w.Header().Set("Content-Type", "application/json")
	bookings, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dtos = append(dtos, toDTO(b))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param bookingId path int true "Booking ID"
// @Success 200 {object} BookingDTO
// @Failure 404 {string} string "Booking Not Found"
// @Router /api/booking/{bookingId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["bookingId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(b)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param booking body BookingDTO true "Booking"
// @Success 201 {object} BookingDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/booking [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new booking")
	w.Header().Set("Content-Type", "application/json")
	var dto BookingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), b)
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
// @Summary Update a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingId path int true "Booking ID"
// @Param booking body BookingDTO true "Booking"
// @Success 200 {object} BookingDTO
// @Failure 404 {string} string "Booking Not Found"
// @Router /api/booking/{bookingId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating booking")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["bookingId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto BookingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.Id = id
	updated, err := h.service.Update(r.Context(), b)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
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
// @Summary Delete a booking
// @Tags Booking
// @Param bookingId path int true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Booking Not Found"
// @Router /api/booking/{bookingId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting booking")
	id, err := strconv.Atoi(mux.Vars(r)["bookingId"])
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
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(b Booking) BookingDTO {
	return BookingDTO{
		Id:            b.Id,
		EnvironmentId: b.EnvironmentId,
		Title:         b.Title,
		EventDate:     b.EventDate.Format(time.DateOnly),
		EventTime:     b.EventTime,
		Status:        string(b.Status),
		RequestedBy:   b.RequestedBy,
	}
}

func fromDTO(dto BookingDTO) (Booking, error) {
	var eventDate time.Time
	if dto.EventDate != "" {
		parsed, err := time.Parse(time.DateOnly, dto.EventDate)
		if err != nil {
			return Booking{}, err
		}
		eventDate = parsed
	}
	return Booking{
		Id:            dto.Id,
		EnvironmentId: dto.EnvironmentId,
		Title:         dto.Title,
		EventDate:     eventDate,
		EventTime:     dto.EventTime,
		Status:        Status(dto.Status),
		RequestedBy:   dto.RequestedBy,
	}, nil
}
