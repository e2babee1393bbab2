package http

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

// JWTTokenService verifies the HS256 tokens issued by the station-control
// API. The console never issues tokens itself.
type JWTTokenService struct {
	secretKey []byte
	logger    ports.LoggerPort
}

func NewJWTTokenService(secretKey string, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

func (j *JWTTokenService) VerifyToken(token string) (domain.TokenPayload, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		j.logger.Debug("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "VerifyToken",
		})
		return domain.TokenPayload{}, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		j.logger.Error("Failed claims from token", map[string]interface{}{
			"method": "VerifyToken",
		})
		return domain.TokenPayload{}, errors.New("failed to verify")
	}

	idStr, ok := claims["id"].(string)
	if !ok {
		return domain.TokenPayload{}, errors.New("invalid id claims")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return domain.TokenPayload{}, errors.New("invalid parse id")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return domain.TokenPayload{}, errors.New("invalid user_id claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return domain.TokenPayload{}, errors.New("invalid parse user_id")
	}

	roleClaimed, ok := claims["role"].(string)
	if !ok {
		return domain.TokenPayload{}, errors.New("invalid role")
	}

	role := domain.Role(roleClaimed)
	if role != domain.Admin && role != domain.AppUser {
		j.logger.Warn("Invalid role in token", map[string]interface{}{
			"role":   roleClaimed,
			"method": "VerifyToken",
		})
		return domain.TokenPayload{}, errors.New("invalid role value")
	}

	return domain.TokenPayload{
		ID:     id,
		UserID: userID,
		Role:   role,
		Raw:    token,
	}, nil
}

var _ ports.TokenService = (*JWTTokenService)(nil)
