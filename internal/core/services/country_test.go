package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/station_control_console/internal/adapter/logger"
	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

func newCountryServiceForTest() (*CountryService, *MockCountryProvider, *MockCache, *countingMetrics) {
	api := &MockCountryProvider{}
	cache := &MockCache{}
	metrics := newCountingMetrics()
	return NewCountryService(api, cache, logger.NewDiscard(), metrics, time.Hour), api, cache, metrics
}

func TestCountryService_FindAll_CacheHit(t *testing.T) {
	svc, api, cache, metrics := newCountryServiceForTest()
	ctx := context.Background()

	data, err := json.Marshal(testCountries)
	require.NoError(t, err)
	cache.On("Get", ctx, "countries:").Return(data, nil)

	countries, err := svc.FindAll(ctx, domain.CountryFilter{})

	require.NoError(t, err)
	assert.Equal(t, testCountries, countries)
	assert.Equal(t, 1, metrics.count(ports.MetricCountryFetch+"/cache"))
	api.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestCountryService_FindAll_CacheMissFillsCache(t *testing.T) {
	svc, api, cache, metrics := newCountryServiceForTest()
	ctx := context.Background()
	filter := domain.CountryFilter{Name: "  Port "}

	data, err := json.Marshal(testCountries)
	require.NoError(t, err)
	cache.On("Get", ctx, "countries:port").Return(nil, ports.ErrCacheMiss)
	api.On("FindAll", ctx, filter).Return(testCountries, nil)
	cache.On("Set", ctx, "countries:port", data, time.Hour).Return(nil)

	countries, err := svc.FindAll(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, testCountries, countries)
	assert.Equal(t, 1, metrics.count(ports.MetricCountryFetch+"/api"))
	api.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCountryService_FindAll_CacheDownStillServes(t *testing.T) {
	svc, api, cache, _ := newCountryServiceForTest()
	ctx := context.Background()

	cache.On("Get", ctx, "countries:").Return(nil, errors.New("connection refused"))
	api.On("FindAll", ctx, domain.CountryFilter{}).Return(testCountries, nil)
	cache.On("Set", ctx, "countries:", mock.Anything, time.Hour).Return(errors.New("connection refused"))

	countries, err := svc.FindAll(ctx, domain.CountryFilter{})

	require.NoError(t, err)
	assert.Len(t, countries, 2)
}

func TestCountryService_FindAll_UpstreamError(t *testing.T) {
	svc, api, cache, metrics := newCountryServiceForTest()
	ctx := context.Background()
	upstream := &domain.APIError{StatusCode: 503, Message: "Serviço indisponível"}

	cache.On("Get", ctx, "countries:").Return(nil, ports.ErrCacheMiss)
	api.On("FindAll", ctx, domain.CountryFilter{}).Return(nil, upstream)

	countries, err := svc.FindAll(ctx, domain.CountryFilter{})

	assert.ErrorIs(t, err, upstream)
	assert.Nil(t, countries)
	assert.Equal(t, 1, metrics.count(ports.MetricCountryFetch+"/error"))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCountryService_FindAll_CorruptCacheEntry(t *testing.T) {
	svc, api, cache, _ := newCountryServiceForTest()
	ctx := context.Background()

	cache.On("Get", ctx, "countries:").Return([]byte("{not json"), nil)
	cache.On("Delete", ctx, "countries:").Return(nil).Once()
	api.On("FindAll", ctx, domain.CountryFilter{}).Return(testCountries, nil)
	cache.On("Set", ctx, "countries:", mock.Anything, time.Hour).Return(nil)

	countries, err := svc.FindAll(ctx, domain.CountryFilter{})

	require.NoError(t, err)
	assert.Equal(t, testCountries, countries)
	cache.AssertExpectations(t)
}
