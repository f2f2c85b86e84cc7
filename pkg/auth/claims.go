package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// AccessTokenPayload is the identity minted into an access token.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	TenantID   uuid.UUID
	TenantType enums.TenantType
	JTI        string
}

// AccessTokenClaims is the JWT claim set carried on every request.
type AccessTokenClaims struct {
	UserID     uuid.UUID        `json:"uid"`
	TenantID   uuid.UUID        `json:"tid"`
	TenantType enums.TenantType `json:"tty"`
	jwt.RegisteredClaims
}
