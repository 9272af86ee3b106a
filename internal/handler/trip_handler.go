package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/service"
	"github.com/estudo-naturalistico/dashboard-backend-go/pkg/response"
)

// TripHandler handles HTTP requests for the trip attribute table
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.tripService.GetTrips(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// GetTripIDs handles GET /api/v1/trips/ids
func (h *TripHandler) GetTripIDs(c *gin.Context) {
	ids, err := h.tripService.GetTripIDs()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  ids,
		"count": len(ids),
	})
}
