package area

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type AreaDTO struct {
	Id          int    `json:"id"`
	MinistryId  int    `json:"ministryId"`
	Name        string `json:"name"`
	MinServants int    `json:"minServants"`
	MaxServants *int   `json:"maxServants,omitempty"`
	OrderIndex  int    `json:"orderIndex"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListByMinistry godoc
// @Summary List areas of a ministry
// @Tags Area
// @Produce json
// @Param ministryId path int true "Ministry ID"
// @Success 200 {array} AreaDTO
// @Router /api/ministry/{ministryId}/area [get]
// @Security XUserId
func (h *Handler) ListByMinistry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing areas")
	w.Header().Set("Content-Type", "application/json")
	ministryId, err := strconv.Atoi(mux.Vars(r)["ministryId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	areas, err := h.service.ListByMinistry(r.Context(), ministryId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]AreaDTO, 0, len(areas))
	for _, a := range areas {
		dtos = append(dtos, toDTO(a))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get an area by ID
// @Tags Area
// @Produce json
// @Param areaId path int true "Area ID"
// @Success 200 {object} AreaDTO
// @Failure 404 {string} string "Area Not Found"
// @Router /api/area/{areaId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["areaId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAreaNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(a)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create an area within a ministry
// @Tags Area
// @Accept json
// @Produce json
// @Param ministryId path int true "Ministry ID"
// @Param area body AreaDTO true "Area"
// @Success 201 {object} AreaDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/ministry/{ministryId}/area [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new area")
	w.Header().Set("Content-Type", "application/json")
	ministryId, err := strconv.Atoi(mux.Vars(r)["ministryId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto AreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a := fromDTO(dto)
	a.MinistryId = ministryId
	created, err := h.service.Create(r.Context(), a)
	if err != nil {
		if errors.Is(err, ErrInvalidCapacity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
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
// @Summary Update an area
// @Tags Area
// @Accept json
// @Produce json
// @Param areaId path int true "Area ID"
// @Param area body AreaDTO true "Area"
// @Success 200 {object} AreaDTO
// @Failure 404 {string} string "Area Not Found"
// @Router /api/area/{areaId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating area")
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["areaId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto AreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a := fromDTO(dto)
	a.Id = id
	updated, err := h.service.Update(r.Context(), a)
	if err != nil {
		if errors.Is(err, ErrAreaNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidCapacity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
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
// @Summary Deactivate an area
// @Tags Area
// @Param areaId path int true "Area ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Area Not Found"
// @Router /api/area/{areaId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting area")
	id, err := strconv.Atoi(mux.Vars(r)["areaId"])
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
		http.Error(w, "area not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(a Area) AreaDTO {
	return AreaDTO{
		Id:          a.Id,
		MinistryId:  a.MinistryId,
		Name:        a.Name,
		MinServants: a.MinServants,
		MaxServants: a.MaxServants,
		OrderIndex:  a.OrderIndex,
	}
}

func fromDTO(dto AreaDTO) Area {
	return Area{
		Id:          dto.Id,
		MinistryId:  dto.MinistryId,
		Name:        dto.Name,
		MinServants: dto.MinServants,
		MaxServants: dto.MaxServants,
		OrderIndex:  dto.OrderIndex,
	}
}
