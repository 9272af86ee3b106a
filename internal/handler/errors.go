package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/routing"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/service"
	"github.com/estudo-naturalistico/dashboard-backend-go/pkg/response"
)

// writeError maps domain errors onto HTTP statuses
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTrip),
		errors.Is(err, routing.ErrUnknownRoute):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUnknownScale),
		errors.Is(err, routing.ErrUnknownEvent):
		response.BadRequest(c, err.Error())
	default:
		log.Printf("[Handler] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
		response.InternalError(c, err.Error())
	}
}
