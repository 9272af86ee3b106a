package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/routing"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/service"
	"github.com/estudo-naturalistico/dashboard-backend-go/pkg/response"
)

// NavigateRequest is a sidebar button press on the current page
type NavigateRequest struct {
	Current string `json:"current"`
	Event   string `json:"event"`
}

// PageHandler serves whole page payloads and sidebar navigation
type PageHandler struct {
	viz *service.VisualizationService
}

// NewPageHandler creates a new page handler
func NewPageHandler(viz *service.VisualizationService) *PageHandler {
	return &PageHandler{viz: viz}
}

// Navigate handles POST /api/v1/navigate
func (h *PageHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	next, err := routing.Navigate(routing.Route(req.Current), routing.Event(req.Event))
	if err != nil {
		if errors.Is(err, routing.ErrUnknownRoute) {
			response.BadRequest(c, err.Error())
			return
		}
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"route": next})
}

// GetRoutes handles GET /api/v1/pages
func (h *PageHandler) GetRoutes(c *gin.Context) {
	response.Success(c, routing.Routes())
}

// GetPage handles GET /api/v1/pages/:route
func (h *PageHandler) GetPage(c *gin.Context) {
	route, err := routing.ParseRoute(c.Param("route"))
	if err != nil {
		writeError(c, err)
		return
	}

	var page interface{}
	switch route {
	case routing.RouteHome:
		page, err = h.viz.GetOverview()
	case routing.RouteSpeed:
		page, err = h.viz.GetTripSpeed(c.Query("trip"))
	case routing.RouteSpeedOverTime:
		filter, ok := bindRecordFilter(c)
		if !ok {
			return
		}
		withTimeline, perr := strconv.ParseBool(c.DefaultQuery("timeline", "false"))
		if perr != nil {
			response.BadRequest(c, "Invalid timeline parameter")
			return
		}
		page, err = h.viz.GetSpeedOverTime(filter, c.Query("scale"), withTimeline)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"route": route,
		"page":  page,
	})
}
