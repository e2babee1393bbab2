package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/station_control_console/internal/adapter/logger"
	"github.com/sm8ta/station_control_console/internal/adapter/notify"
	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

const testCountryID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

var (
	fixedNow      = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	testCountries = []domain.Country{
		{ID: testCountryID, Name: "Portugal"},
		{ID: "9b2f7c1e-1d2a-4c3b-8e4f-5a6b7c8d9e0f", Name: "Angola"},
	}
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	textBytes = []byte("just a plain text file, definitely not an image")
)

// MockEmployeeAPI is a mock implementation of ports.EmployeeAPI.
type MockEmployeeAPI struct {
	mock.Mock
}

func (m *MockEmployeeAPI) CreateEmployee(ctx context.Context, countryID string, payload *domain.MultipartPayload) (*domain.Employee, error) {
	args := m.Called(ctx, countryID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// MockCountryProvider is a mock implementation of ports.CountryProvider.
type MockCountryProvider struct {
	mock.Mock
}

func (m *MockCountryProvider) FindAll(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

// MockCache is a mock implementation of ports.CachePort.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// countingMetrics records counter increments as "name/label value".
type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{counts: make(map[string]int)}
}

func (m *countingMetrics) IncrementCounter(name string, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := make([]string, 0, len(labels))
	for _, v := range labels {
		values = append(values, v)
	}
	m.counts[name+"/"+strings.Join(values, ",")]++
}

func (m *countingMetrics) RecordDuration(string, time.Duration, map[string]string) {}

func (m *countingMetrics) RecordMetrics(*gin.Context, time.Time) {}

func (m *countingMetrics) count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

var _ ports.MetricsPort = (*countingMetrics)(nil)

func newTestValidator(t *testing.T) *DraftValidator {
	t.Helper()
	v, err := NewDraftValidator(validator.New(), func() time.Time { return fixedNow })
	require.NoError(t, err)
	return v
}

func validDraft() domain.EmployeeDraft {
	return domain.EmployeeDraft{
		Name:                 "Ana Silva",
		Email:                "ana@x.com",
		Gender:               domain.Female,
		Role:                 domain.AppUser,
		BirthDate:            "1990-05-01",
		Address:              "Rua 1",
		CountryID:            testCountryID,
		PhoneNumber:          "+351911111111",
		Password:             "12345678",
		PasswordConfirmation: "12345678",
		Biography:            "bio",
	}
}

// validUpdates fills a fresh draft through field events, overriding the
// default gender.
func validUpdates() []domain.FieldUpdate {
	return []domain.FieldUpdate{
		{Field: domain.FieldName, Value: "Ana Silva"},
		{Field: domain.FieldGender, Value: "MASCULINO"},
		{Field: domain.FieldGender, Value: "FEMININO"},
		{Field: domain.FieldBirthDate, Value: "1990-05-01"},
		{Field: domain.FieldEmail, Value: "ana@x.com"},
		{Field: domain.FieldAddress, Value: "Rua 1"},
		{Field: domain.FieldRole, Value: "USUARIO"},
		{Field: domain.FieldBiography, Value: "bio"},
		{Field: domain.FieldCountry, Value: testCountryID},
		{Field: domain.FieldPhoneNumber, Value: "+351911111111"},
		{Field: domain.FieldPassword, Value: "12345678"},
		{Field: domain.FieldPasswordConfirmation, Value: "12345678"},
	}
}

type formFixture struct {
	form      *Form
	api       *MockEmployeeAPI
	countries *MockCountryProvider
	inbox     *notify.Inbox
	metrics   *countingMetrics
}

func newFormFixture(t *testing.T) *formFixture {
	t.Helper()
	f := &formFixture{
		api:       &MockEmployeeAPI{},
		countries: &MockCountryProvider{},
		inbox:     notify.NewInbox(0),
		metrics:   newCountingMetrics(),
	}
	f.form = NewForm(uuid.New(), f.deps(t), f.inbox)
	return f
}

func (f *formFixture) deps(t *testing.T) FormDeps {
	return FormDeps{
		Validator: newTestValidator(t),
		Countries: f.countries,
		API:       f.api,
		Logger:    logger.NewDiscard(),
		Metrics:   f.metrics,
	}
}
