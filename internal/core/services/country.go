package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

// CountryService serves the country list from the cache, falling back to
// the station API.
type CountryService struct {
	api     ports.CountryProvider
	cache   ports.CachePort
	logger  ports.LoggerPort
	metrics ports.MetricsPort
	ttl     time.Duration
}

func NewCountryService(
	api ports.CountryProvider,
	cache ports.CachePort,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
	ttl time.Duration,
) *CountryService {
	return &CountryService{
		api:     api,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
		ttl:     ttl,
	}
}

func (s *CountryService) FindAll(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	cacheKey := fmt.Sprintf("countries:%s", strings.ToLower(strings.TrimSpace(filter.Name)))

	// Tries to take from cache
	cachedData, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		var countries []domain.Country
		if err := json.Unmarshal(cachedData, &countries); err == nil {
			s.logger.Debug("Countries found in cache", map[string]interface{}{
				"key":   cacheKey,
				"count": len(countries),
			})
			s.metrics.IncrementCounter(ports.MetricCountryFetch, map[string]string{"source": "cache"})
			return countries, nil
		}
		// Corrupt entry, drop it so the refill below replaces it.
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			s.logger.Warn("Failed to evict countries from cache", map[string]interface{}{
				"error": err.Error(),
				"key":   cacheKey,
			})
		}
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.Warn("Failed to read countries from cache", map[string]interface{}{
			"error": err.Error(),
			"key":   cacheKey,
		})
	}

	countries, err := s.api.FindAll(ctx, filter)
	if err != nil {
		s.metrics.IncrementCounter(ports.MetricCountryFetch, map[string]string{"source": "error"})
		s.logger.Error("Failed to load countries", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	s.metrics.IncrementCounter(ports.MetricCountryFetch, map[string]string{"source": "api"})

	data, err := json.Marshal(countries)
	if err != nil {
		s.logger.Warn("Failed to marshal countries for cache", map[string]interface{}{
			"error": err.Error(),
		})
		return countries, nil
	}
	if err := s.cache.Set(ctx, cacheKey, data, s.ttl); err != nil {
		s.logger.Warn("Failed to cache countries", map[string]interface{}{
			"error": err.Error(),
			"key":   cacheKey,
		})
	}

	return countries, nil
}

var _ ports.CountryProvider = (*CountryService)(nil)
