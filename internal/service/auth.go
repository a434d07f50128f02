package service

import (
	"context"
	"warzone-tracker/internal/config"
	"warzone-tracker/pkg/warzone"

	"github.com/rs/zerolog"
)

type AuthService struct {
	client *warzone.Client
	cfg    *config.Config
	logger zerolog.Logger
}

func NewAuthService(client *warzone.Client, cfg *config.Config, logger zerolog.Logger) *AuthService {
	return &AuthService{client: client, cfg: cfg, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, email, password string) bool {
	s.logger.Info().Str("email", maskEmail(email)).Msg("logging in")

	ok := s.client.Login(ctx, email, password)
	if !ok {
		s.logger.Warn().Str("email", maskEmail(email)).Msg("login failed")
	}
	return ok
}

// LoginWithConfig logs in with the configured account, if there is one.
func (s *AuthService) LoginWithConfig(ctx context.Context) bool {
	if !s.cfg.HasCredentials() {
		s.logger.Debug().Msg("no configured credentials, skipping login")
		return false
	}
	return s.Login(ctx, s.cfg.CodEmail, s.cfg.CodPassword)
}

func (s *AuthService) LoggedIn() bool {
	return s.client.IsLoggedIn()
}

func maskEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			if i <= 1 {
				return "*" + email[i:]
			}
			return email[:1] + "***" + email[i:]
		}
	}
	return "***"
}
