package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerview/txn-ui-api/config"
	"github.com/ledgerview/txn-ui-api/internal/adapters/jwtdecode"
	"github.com/ledgerview/txn-ui-api/internal/adapters/oidcverify"
	redisadapter "github.com/ledgerview/txn-ui-api/internal/adapters/redis"
	"github.com/ledgerview/txn-ui-api/internal/adapters/upstream"
	"github.com/ledgerview/txn-ui-api/internal/ports"
	"github.com/ledgerview/txn-ui-api/internal/service"
)

// devFallbackPassword is the admin password seeded in dev mode when no
// hash is configured.
const devFallbackPassword = "password"

// ServiceDeps carries the infrastructure the service layer is built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the wired service layer.
type ServiceContainer struct {
	Sessions *service.SessionRegistry
	Gateway  ports.RecordGateway
}

// NewServices wires the adapters and services from configuration.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seedDevAdminPassword(cfg, logger)

	tokens := redisadapter.NewTokenStore(redisadapter.TokenStoreOptions{
		Client:    deps.RedisClient,
		Retention: cfg.Auth.TokenTTL,
	})

	decoder, err := newCredentialDecoder(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	gateway, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build upstream client: %w", err)
	}

	sessions := service.NewSessionRegistry(service.RegistryOptions{
		Tokens:  tokens,
		Decoder: decoder,
		Gateway: gateway,
		Config: service.SessionConfig{
			IdleTimeout: cfg.Auth.IdleTimeout,
			AdminName:   cfg.Auth.Admin.Name,
			AdminEmail:  cfg.Auth.Admin.Email,
		},
		Logger: logger,
	})

	return &ServiceContainer{Sessions: sessions, Gateway: gateway}, nil
}

//nolint:ireturn // decoder selection is the point of this function.
func newCredentialDecoder(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (ports.CredentialDecoder, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeOIDC:
		decoder, err := oidcverify.New(ctx, oidcverify.Config{
			IssuerURL: cfg.Auth.OIDC.IssuerURL,
			ClientID:  cfg.Auth.OIDC.ClientID,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc decoder: %w", err)
		}
		return decoder, nil
	case config.AuthModeOffline:
		logger.Warn("credential signatures are NOT verified", "auth_mode", cfg.Auth.Mode)
		return jwtdecode.New(), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

// seedDevAdminPassword fills in a well-known admin password hash in dev
// mode so the fallback login form works out of the box. Production with no
// configured hash keeps the password login disabled.
func seedDevAdminPassword(cfg *config.AppConfig, logger *slog.Logger) {
	if !cfg.IsDev || cfg.Auth.Admin.PasswordHash != "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(devFallbackPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Warn("seed dev admin password failed", "error", err)
		return
	}
	cfg.Auth.Admin.PasswordHash = string(hash)
	logger.Warn("seeded default admin password for dev mode", "username", cfg.Auth.Admin.Username)
}
