package ports

import (
	"context"

	"github.com/sm8ta/station_control_console/internal/core/domain"
)

// CountryProvider lists the countries an employee can belong to.
type CountryProvider interface {
	FindAll(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)
}

// EmployeeAPI creates employees on the station-control API.
type EmployeeAPI interface {
	CreateEmployee(ctx context.Context, countryID string, payload *domain.MultipartPayload) (*domain.Employee, error)
}
