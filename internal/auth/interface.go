package auth

import "vellum/internal/domain/models"

// TokenVerifier validates a bearer token and resolves the principal it
// represents. Session issuance lives with the external identity provider;
// this side only consumes tokens.
type TokenVerifier interface {
	// VerifyToken validates a JWT string and returns the principal it
	// carries. Returns domain.ErrUnauthorized for anything invalid, expired
	// or incomplete - the caller never learns why a token was rejected.
	VerifyToken(tokenString string) (*models.Principal, error)

	// Close releases any resources held by the verifier.
	Close() error
}
