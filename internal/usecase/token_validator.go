package usecase

import (
	"parkflow/internal/domain/operator"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the operator identity the route
// gates check.
type TokenValidator interface {
	ValidateToken(tokenString string) (operator.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// ValidateToken rejects tokens without an expiry: tokengen always sets one,
// so a token lacking it was not minted for a gate terminal.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (operator.Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return operator.Identity{}, err
	}
	if claims.ExpiresAt == nil {
		return operator.Identity{}, errs.Wrap(jwt.ErrInvalidToken, "token has no expiry")
	}

	identity, err := operator.NewIdentity(claims.OperatorID, claims.Role)
	if err != nil {
		return operator.Identity{}, errs.Wrapf(err, "token for operator %s", claims.OperatorID)
	}
	return identity, nil
}
