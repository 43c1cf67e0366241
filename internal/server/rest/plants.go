package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

// PlantProvider is the slice of PlantService the plant handlers need.
type PlantProvider interface {
	List(ctx context.Context, userID string) ([]*models.Plant, error)
	Create(ctx context.Context, userID string, plant *models.Plant) (*models.Plant, error)
	Delete(ctx context.Context, userID, plantID string) error
}

// GeoProvider extracts GPS coordinates from uploaded images.
type GeoProvider interface {
	ExtractCoordinates(ctx context.Context, imageURL string) (float64, float64, error)
}

type plantResponse struct {
	ID         string    `json:"id"`
	ImageName  string    `json:"imageName"`
	ImageURL   string    `json:"imageUrl"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type createPlantRequest struct {
	ImageName string  `json:"imageName"`
	ImageURL  string  `json:"imageUrl"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type coordinatesRequest struct {
	ImageName string `json:"imageName"`
	ImageURL  string `json:"imageUrl" binding:"required"`
}

type coordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toPlantResponse(p *models.Plant) plantResponse {
	return plantResponse{
		ID:         p.ID,
		ImageName:  p.ImageName,
		ImageURL:   p.ImageURL,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		UploadedAt: p.UploadedAt,
	}
}

// PlantHandler serves the per-user plant collection.
type PlantHandler struct {
	plants PlantProvider
	geo    GeoProvider
}

func NewPlantHandler(plants PlantProvider, geo GeoProvider) *PlantHandler {
	return &PlantHandler{plants: plants, geo: geo}
}

func userID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserIDKey)
}

func (h *PlantHandler) List(ctx *gin.Context) {
	plants, err := h.plants.List(ctx.Request.Context(), userID(ctx))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list plants")
		return
	}

	out := make([]plantResponse, 0, len(plants))
	for _, p := range plants {
		out = append(out, toPlantResponse(p))
	}
	Success(ctx, http.StatusOK, out)
}

func (h *PlantHandler) Create(ctx *gin.Context) {
	var req createPlantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "malformed plant payload")
		return
	}

	plant, err := h.plants.Create(ctx.Request.Context(), userID(ctx), &models.Plant{
		ImageName: req.ImageName,
		ImageURL:  req.ImageURL,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyImageName):
			Error(ctx, http.StatusBadRequest, "imageName is required")
		case errors.Is(err, common.ErrInvalidCoordinates):
			Error(ctx, http.StatusBadRequest, "coordinates out of range")
		default:
			Error(ctx, http.StatusInternalServerError, "failed to save plant")
		}
		return
	}

	Success(ctx, http.StatusCreated, toPlantResponse(plant))
}

func (h *PlantHandler) Delete(ctx *gin.Context) {
	err := h.plants.Delete(ctx.Request.Context(), userID(ctx), ctx.Param("id"))
	// Deletes are idempotent: an id already gone reads as success so a
	// client retrying an interrupted delete settles cleanly.
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		Error(ctx, http.StatusInternalServerError, "failed to delete plant")
		return
	}

	Success(ctx, http.StatusOK, nil)
}

func (h *PlantHandler) Coordinates(ctx *gin.Context) {
	var req coordinatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "imageUrl is required")
		return
	}

	lat, lon, err := h.geo.ExtractCoordinates(ctx.Request.Context(), req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNoGPSData):
			Error(ctx, http.StatusUnprocessableEntity, "image has no gps data")
		case errors.Is(err, common.ErrInvalidCoordinates):
			Error(ctx, http.StatusUnprocessableEntity, "image gps data out of range")
		default:
			Error(ctx, http.StatusBadGateway, "failed to read image")
		}
		return
	}

	Success(ctx, http.StatusOK, coordinatesResponse{Latitude: lat, Longitude: lon})
}
