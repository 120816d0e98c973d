package environment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EnvironmentDTO struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List bookable environments
// @Tags Environment
// @Produce json
// @Success 200 {array} EnvironmentDTO
// @Router /api/environment [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing environments")
	w.Header().Set("Content-Type", "application/json")
	environments, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]EnvironmentDTO, 0, len(environments))
	for _, e := range environments {
		dtos = append(dtos, toDTO(e))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get an environment by ID
// @Tags Environment
// @Produce json
// @Param environmentId path int true "Environment ID"
// @Success 200 {object} EnvironmentDTO
// @Failure 404 {string} string "Environment Not Found"
// @Router /api/environment/{environmentId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["environmentId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEnvironmentNotFound) {
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
// @Summary Create an environment
// @Tags Environment
// @Accept json
// @Produce json
// @Param environment body EnvironmentDTO true "Environment"
// @Success 201 {object} EnvironmentDTO
// @Failure 409 {string} string "Environment already exists"
// @Router /api/environment [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new environment")
	w.Header().Set("Content-Type", "application/json")
	var dto EnvironmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrEnvironmentExists) {
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
// @Summary Update an environment
// @Tags Environment
// @Accept json
// @Produce json
// @Param environmentId path int true "Environment ID"
// @Param environment body EnvironmentDTO true "Environment"
// @Success 200 {object} EnvironmentDTO
// @Failure 404 {string} string "Environment Not Found"
// @Router /api/environment/{environmentId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating environment")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["environmentId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto EnvironmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e := fromDTO(dto)
	e.Id = id
	updated, err := h.service.Update(r.Context(), e)
	if err != nil {
		if errors.Is(err, ErrEnvironmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrEnvironmentExists) {
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
// @Summary Deactivate an environment
// @Tags Environment
// @Param environmentId path int true "Environment ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Environment Not Found"
// @Router /api/environment/{environmentId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting environment")
	id, err := strconv.Atoi(mux.Vars(r)["environmentId"])
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
		http.Error(w, "environment not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(e Environment) EnvironmentDTO {
	return EnvironmentDTO{Id: e.Id, Name: e.Name, Description: e.Description, Capacity: e.Capacity}
}

func fromDTO(dto EnvironmentDTO) Environment {
	return Environment{Id: dto.Id, Name: dto.Name, Description: dto.Description, Capacity: dto.Capacity}
}
