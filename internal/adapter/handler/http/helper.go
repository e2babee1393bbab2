package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/services"
)

func getAuthPayload(ctx *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := ctx.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	if !ok {
		return nil, false
	}
	return payload, true
}

// lookupForm resolves the :id path parameter, answering 404 itself when the
// session is gone.
func lookupForm(c *gin.Context, registry *services.FormRegistry) (*services.Form, bool) {
	form, err := registry.Get(c.Param("id"))
	if errors.Is(err, services.ErrSessionNotFound) {
		newErrorResponse(c, http.StatusNotFound, "Form session not found")
		return nil, false
	}
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to load form session")
		return nil, false
	}
	return form, true
}
