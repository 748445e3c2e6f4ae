package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure issued by the identity provider.
// The subject is the user ID; "app_role" carries the application role.
type Claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	AppRole string `json:"app_role"` // reader, editor or admin
}

// DisplayName returns the best available human-readable name for the user.
func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}
