// Package identity extracts the identity reference from the provider's ID
// token. The token arrives already verified by the identity provider's own
// flow; the client only reads the profile claims out of it, so the signature
// is deliberately not checked here.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

var ErrNoSubject = errors.New("identity: token has no subject claim")

// FromToken reads the external id, display name and email claims from an ID
// token.
func FromToken(token string) (model.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.Identity{}, fmt.Errorf("parse id token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.Identity{}, ErrNoSubject
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return model.Identity{Auth0ID: sub, Name: name, Email: email}, nil
}
