package oidcverify

// Package oidcverify decodes identity credentials by verifying them against
// the issuer's published keys. This is the production counterpart of the
// offline decoder: same strict claim schema, but the signature and audience
// are checked too.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

var _ ports.CredentialDecoder = (*Decoder)(nil)

// Config holds settings for the verifying decoder.
type Config struct {
	// IssuerURL is the OIDC issuer (default Google).
	IssuerURL string
	// ClientID is the expected audience. When empty the audience check is
	// skipped, which is only acceptable behind a trusted front channel.
	ClientID string
	// HTTPClient overrides the discovery/JWKS client. Optional.
	HTTPClient *http.Client
}

// Decoder verifies ID tokens and maps their claims to an identity.
type Decoder struct {
	verifier *gooidc.IDTokenVerifier
}

// New performs OIDC discovery against the issuer and builds a verifier.
func New(ctx context.Context, cfg Config) (*Decoder, error) {
	issuer := strings.TrimSuffix(strings.TrimSpace(cfg.IssuerURL), "/")
	if issuer == "" {
		return nil, errors.New("issuer URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	// Expiry is deliberately not enforced by the verifier: a stored
	// credential that has lapsed must still decode so the auth session can
	// classify it as "expired" rather than "invalid".
	vc := &gooidc.Config{ClientID: cfg.ClientID, SkipExpiryCheck: true}
	if cfg.ClientID == "" {
		vc.SkipClientIDCheck = true
	}
	return &Decoder{verifier: provider.Verifier(vc)}, nil
}

// tokenClaims is the strict claim schema a verified credential must satisfy.
type tokenClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Decode verifies the credential and extracts the identity. Expiry is
// reported through the identity, not enforced here.
func (d *Decoder) Decode(ctx context.Context, credential string) (domainauth.Identity, error) {
	if credential == "" {
		return domainauth.Identity{}, errors.New("empty credential")
	}

	idToken, err := d.verifier.Verify(ctx, credential)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify credential: %w", err)
	}

	var claims tokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return domainauth.Identity{}, fmt.Errorf("parse credential claims: %w", err)
	}
	if claims.Name == "" {
		return domainauth.Identity{}, errors.New("credential claims: missing name")
	}
	if claims.Email == "" {
		return domainauth.Identity{}, errors.New("credential claims: missing email")
	}

	return domainauth.Identity{
		Name:      claims.Name,
		Email:     claims.Email,
		Picture:   claims.Picture,
		ExpiresAt: idToken.Expiry,
	}, nil
}
