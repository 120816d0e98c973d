package servant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ServantDTO struct {
	Id       int    `json:"id"`
	AreaId   int    `json:"areaId"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsLeader bool   `json:"isLeader"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListByArea godoc
// @Summary List servants of an area
// @Tags Servant
// @Produce json
// @Param areaId path int true "Area ID"
// @Success 200 {array} ServantDTO
// @Router /api/area/{areaId}/servant [get]
// @Security XUserId
func (h *Handler) ListByArea(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing servants")
	w.Header().Set("Content-Type", "application/json")
	areaId, err := strconv.Atoi(mux.Vars(r)["areaId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	servants, err := h.service.ListByArea(r.Context(), areaId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ServantDTO, 0, len(servants))
	for _, s := range servants {
		dtos = append(dtos, toDTO(s))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get a servant by ID
// @Tags Servant
// @Produce json
// @Param servantId path int true "Servant ID"
// @Success 200 {object} ServantDTO
// @Failure 404 {string} string "Servant Not Found"
// @Router /api/servant/{servantId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["servantId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrServantNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(s)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Register a servant in an area
// @Tags Servant
// @Accept json
// @Produce json
// @Param areaId path int true "Area ID"
// @Param servant body ServantDTO true "Servant"
// @Success 201 {object} ServantDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/area/{areaId}/servant [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new servant")
	w.Header().Set("Content-Type", "application/json")
	areaId, err := strconv.Atoi(mux.Vars(r)["areaId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ServantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s := fromDTO(dto)
	s.AreaId = areaId
	created, err := h.service.Create(r.Context(), s)
	if err != nil {
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
// @Summary Update a servant
// @Tags Servant
// @Accept json
// @Produce json
// @Param servantId path int true "Servant ID"
// @Param servant body ServantDTO true "Servant"
// @Success 200 {object} ServantDTO
// @Failure 404 {string} string "Servant Not Found"
// @Router /api/servant/{servantId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating servant")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["servantId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ServantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s := fromDTO(dto)
	s.Id = id
	updated, err := h.service.Update(r.Context(), s)
	if err != nil {
		if errors.Is(err, ErrServantNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
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
// @Summary Deactivate a servant
// @Tags Servant
// @Param servantId path int true "Servant ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Servant Not Found"
// @Router /api/servant/{servantId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting servant")
	id, err := strconv.Atoi(mux.Vars(r)["servantId"])
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
		http.Error(w, "servant not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(s Servant) ServantDTO {
	return ServantDTO{
		Id:       s.Id,
		AreaId:   s.AreaId,
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		IsLeader: s.IsLeader,
	}
}

func fromDTO(dto ServantDTO) Servant {
	return Servant{
		Id:       dto.Id,
		AreaId:   dto.AreaId,
		Name:     dto.Name,
		Email:    dto.Email,
		Phone:    dto.Phone,
		IsLeader: dto.IsLeader,
	}
}
