package domain

import (
	"github.com/google/uuid"
)

type TokenPayload struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Role   Role
	// Raw is the bearer token, forwarded to the station API.
	Raw string
}
