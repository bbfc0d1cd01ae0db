package usecase

import (
	"errors"

	"fuel-quota-service/internal/domain/auth"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal is the authenticated caller as attested by the external auth
// collaborator. StationID is present only for station operators.
type Principal struct {
	SubjectID uuid.UUID
	Role      auth.Role
	StationID *uuid.UUID
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (*Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// An expired token maps to the session sentinel so the transport layer can
// tell the client to re-authenticate rather than reject the credential.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (*Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, errs.ErrSessionExpired
		}
		return nil, err
	}

	role, err := auth.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	return &Principal{
		SubjectID: claims.SubjectID,
		Role:      role,
		StationID: claims.StationID,
	}, nil
}
