package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/service"
	"github.com/estudo-naturalistico/dashboard-backend-go/pkg/response"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// VisualizationHandler handles HTTP requests for map and chart data
type VisualizationHandler struct {
	service *service.VisualizationService
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(service *service.VisualizationService) *VisualizationHandler {
	return &VisualizationHandler{service: service}
}

// GetOverview handles GET /api/v1/overview
func (h *VisualizationHandler) GetOverview(c *gin.Context) {
	page, err := h.service.GetOverview()
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, page)
}

// GetTripSpeed handles GET /api/v1/speed/trip
func (h *VisualizationHandler) GetTripSpeed(c *gin.Context) {
	page, err := h.service.GetTripSpeed(c.Query("trip"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, page)
}

// GetHeatmap handles GET /api/v1/speed/heatmap
func (h *VisualizationHandler) GetHeatmap(c *gin.Context) {
	filter, ok := bindRecordFilter(c)
	if !ok {
		return
	}

	samples, err := h.service.GetHeatmap(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":    samples,
		"count":   len(samples),
		"options": service.HeatOptions,
	})
}

// GetClassified handles GET /api/v1/speed/classified
func (h *VisualizationHandler) GetClassified(c *gin.Context) {
	filter, ok := bindRecordFilter(c)
	if !ok {
		return
	}

	layer, legend, err := h.service.GetClassified(filter, c.Query("scale"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"layer":  layer,
		"legend": legend,
	})
}

// GetSpeedOverTime handles GET /api/v1/speed
func (h *VisualizationHandler) GetSpeedOverTime(c *gin.Context) {
	filter, ok := bindRecordFilter(c)
	if !ok {
		return
	}

	withTimeline, err := strconv.ParseBool(c.DefaultQuery("timeline", "false"))
	if err != nil {
		response.BadRequest(c, "Invalid timeline parameter")
		return
	}

	page, err := h.service.GetSpeedOverTime(filter, c.Query("scale"), withTimeline)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, page)
}

// GetTimeline handles GET /api/v1/speed/timeline
func (h *VisualizationHandler) GetTimeline(c *gin.Context) {
	filter, ok := bindRecordFilter(c)
	if !ok {
		return
	}

	buckets, err := h.service.GetTimelineBuckets(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  buckets,
		"count": len(buckets),
	})
}

// StreamTimeline handles GET /api/v1/speed/timeline/ws.
// Each time bucket is sent as one text message in ascending order, then the
// connection is closed normally.
func (h *VisualizationHandler) StreamTimeline(c *gin.Context) {
	filter, ok := bindRecordFilter(c)
	if !ok {
		return
	}

	seq, err := h.service.GetTimeline(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Timeline] ws upgrade error: %v", err)
		return
	}
	defer conn.Close()

	sent := 0
	for bucket, err := range seq {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": err.Error()})
			closeWith(conn, websocket.CloseInternalServerErr, "timeline failed")
			return
		}
		if err := conn.WriteJSON(bucket); err != nil {
			log.Printf("[Timeline] ws write error after %d buckets: %v", sent, err)
			return
		}
		sent++
	}

	closeWith(conn, websocket.CloseNormalClosure, "end of timeline")
	log.Printf("[Timeline] Streamed %d buckets", sent)
}

// GetHierarchyLayer handles GET /api/v1/hierarchy
func (h *VisualizationHandler) GetHierarchyLayer(c *gin.Context) {
	filter, ok := bindRecordFilter(c)
	if !ok {
		return
	}

	layer, err := h.service.GetHierarchyLayer(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, layer)
}

// GetPalettes handles GET /api/v1/palettes
func (h *VisualizationHandler) GetPalettes(c *gin.Context) {
	response.Success(c, h.service.GetPalettes())
}

func bindRecordFilter(c *gin.Context) (models.RecordFilter, bool) {
	var filter models.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return filter, false
	}
	return filter, true
}

func closeWith(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteTimeout))
}
