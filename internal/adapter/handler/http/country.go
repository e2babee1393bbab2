package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

type CountryHandler struct {
	countries ports.CountryProvider
	logger    ports.LoggerPort
	metrics   ports.MetricsPort
}

func NewCountryHandler(
	countries ports.CountryProvider,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CountryHandler {
	return &CountryHandler{
		countries: countries,
		logger:    logger,
		metrics:   metrics,
	}
}

// @Summary List countries
// @Description Countries an employee can be registered under
// @Tags countries
// @Security BearerAuth
// @Produce json
// @Param nome query string false "Name filter"
// @Success 200 {object} successResponse{data=[]domain.Country} "Countries"
// @Failure 502 {object} errorResponse "Station API unavailable"
// @Router /countries [get]
func (h *CountryHandler) ListCountries(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var filter domain.CountryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	countries, err := h.countries.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list countries", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadGateway, "Não foi possível carregar os paises.")
		return
	}
	if countries == nil {
		countries = []domain.Country{}
	}
	newSuccessResponse(c, http.StatusOK, "Countries", countries)
}
