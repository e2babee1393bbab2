package ports

import (
	"github.com/sm8ta/station_control_console/internal/core/domain"
)

type TokenService interface {
	VerifyToken(token string) (domain.TokenPayload, error)
}
