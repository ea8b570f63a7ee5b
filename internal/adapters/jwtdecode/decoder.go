package jwtdecode

// Package jwtdecode decodes identity credentials offline, without signature
// verification, the way the original browser client did. The claim schema is
// strict: a credential missing any required claim is rejected outright
// rather than producing a partially populated identity.

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

var _ ports.CredentialDecoder = (*Decoder)(nil)

// Decoder is an offline ports.CredentialDecoder for JWT credentials.
type Decoder struct {
	parser *jwt.Parser
}

// New constructs an offline decoder.
func New() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// identityClaims is the strict claim schema a credential must satisfy.
type identityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Decode parses the credential's claims. It does not enforce expiry; the
// auth session owns that decision so it can distinguish "expired" from
// "malformed".
func (d *Decoder) Decode(_ context.Context, credential string) (domainauth.Identity, error) {
	if credential == "" {
		return domainauth.Identity{}, errors.New("empty credential")
	}

	var claims identityClaims
	if _, _, err := d.parser.ParseUnverified(credential, &claims); err != nil {
		return domainauth.Identity{}, fmt.Errorf("parse credential: %w", err)
	}
	if err := validateClaims(claims); err != nil {
		return domainauth.Identity{}, fmt.Errorf("credential claims: %w", err)
	}

	return domainauth.Identity{
		Name:      claims.Name,
		Email:     claims.Email,
		Picture:   claims.Picture,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func validateClaims(c identityClaims) error {
	switch {
	case c.Name == "":
		return errors.New("missing name")
	case c.Email == "":
		return errors.New("missing email")
	case c.ExpiresAt == nil || c.ExpiresAt.Time.IsZero():
		return errors.New("missing exp")
	}
	return nil
}
