package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/station_control_console/internal/adapter/stationapi"
	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

const (
	authorizationHeaderKey  = "authorization"
	authorizationType       = "bearer"
	authorizationPayloadKey = "authorization_payload"
)

// AuthMiddleware verifies the bearer token and forwards it to the station
// API through the request context.
func AuthMiddleware(token ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Auth header required")
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 {
			newErrorResponse(c, http.StatusUnauthorized, "Auth fields required")
			return
		}

		if strings.ToLower(fields[0]) != authorizationType {
			newErrorResponse(c, http.StatusUnauthorized, "Unsupported authorization type")
			return
		}

		payload, err := token.VerifyToken(fields[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(authorizationPayloadKey, &payload)
		c.Request = c.Request.WithContext(stationapi.ContextWithToken(c.Request.Context(), payload.Raw))
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := getAuthPayload(c, authorizationPayloadKey)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization required")
			return
		}

		if payload.Role != domain.Admin {
			newErrorResponse(c, http.StatusForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}
