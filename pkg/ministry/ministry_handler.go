package ministry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type MinistryDTO struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List active ministries
// @Tags Ministry
// @Produce json
// @Success 200 {array} MinistryDTO
// @Router /api/ministry [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing ministries")
	w.Header().Set("Content-Type", "application/json")
	ministries, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]MinistryDTO, 0, len(ministries))
	for _, m := range ministries {
		dtos = append(dtos, toDTO(m))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get a ministry by ID
// @Tags Ministry
// @Produce json
// @Param ministryId path int true "Ministry ID"
// @Success 200 {object} MinistryDTO
// @Failure 404 {string} string "Ministry Not Found"
// @Router /api/ministry/{ministryId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["ministryId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMinistryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(m)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a new ministry
// @Tags Ministry
// @Accept json
// @Produce json
// @Param ministry body MinistryDTO true "Ministry"
// @Success 201 {object} MinistryDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 409 {string} string "Ministry already exists"
// @Router /api/ministry [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new ministry")
	w.Header().Set("Content-Type", "application/json")
	var dto MinistryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrMinistryExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update a ministry
// @Tags Ministry
// @Accept json
// @Produce json
// @Param ministryId path int true "Ministry ID"
// @Param ministry body MinistryDTO true "Ministry"
// @Success 200 {object} MinistryDTO
// @Failure 404 {string} string "Ministry Not Found"
// @Failure 409 {string} string "Ministry already exists"
// @Router /api/ministry/{ministryId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating ministry")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["ministryId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto MinistryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m := fromDTO(dto)
	m.Id = id
	updated, err := h.service.Update(r.Context(), m)
	if err != nil {
		if errors.Is(err, ErrMinistryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrMinistryExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Deactivate a ministry
// @Tags Ministry
// @Param ministryId path int true "Ministry ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Ministry Not Found"
// @Router /api/ministry/{ministryId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting ministry")
	id, err := strconv.Atoi(mux.Vars(r)["ministryId"])
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
		http.Error(w, "ministry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(m Ministry) MinistryDTO {
	return MinistryDTO{Id: m.Id, Name: m.Name, Color: m.Color}
}

func fromDTO(dto MinistryDTO) Ministry {
	return Ministry{Id: dto.Id, Name: dto.Name, Color: dto.Color}
}
