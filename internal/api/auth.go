package api

import (
	"context"
	"errors"
	"fmt"
	"warzone-tracker/internal/config"
	"warzone-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var (
	errMissingXSRF         = errors.New("login page did not issue an XSRF token")
	errCredentialsRejected = errors.New("credentials rejected")
)

// AuthHandler performs the profile-site login and owns the resulting session.
type AuthHandler struct {
	transport  *Transport
	session    *Session
	profileURL string
	logger     zerolog.Logger
}

func NewAuthHandler(cfg *config.Config, transport *Transport, session *Session, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		transport:  transport,
		session:    session,
		profileURL: cfg.ProfileURL,
		logger:     logger,
	}
}

// Login never returns an error: any failure leaves the session logged out
// and reports false.
func (h *AuthHandler) Login(ctx context.Context, email, password string) bool {
	h.session.Invalidate()

	if email == "" || password == "" {
		h.logger.Warn().Msg("login attempted without credentials")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, constants.LoginTimeout)
	defer cancel()

	xsrf, err := h.fetchXSRF(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to fetch login page")
		return false
	}

	tokens, err := h.submitCredentials(ctx, email, password, xsrf)
	if err != nil {
		h.logger.Warn().Err(err).Msg("login failed")
		return false
	}

	h.session.Establish(tokens)
	h.logger.Info().Msg("logged in")
	return true
}

func (h *AuthHandler) IsLoggedIn() bool {
	return h.session.IsLoggedIn()
}

func (h *AuthHandler) Invalidate() {
	if h.session.IsLoggedIn() {
		h.logger.Info().Msg("session invalidated")
	}
	h.session.Invalidate()
}

func (h *AuthHandler) fetchXSRF(ctx context.Context) (string, error) {
	rep, err := h.transport.Do(ctx, exchange{
		method:      fasthttp.MethodGet,
		url:         h.profileURL + "/cod/login",
		wantCookies: []string{cookieXSRF},
	})
	if err != nil {
		return "", fmt.Errorf("failed to request login page: %w", err)
	}
	if rep.status != fasthttp.StatusOK {
		return "", fmt.Errorf("login page returned status %d", rep.status)
	}

	xsrf := rep.cookies[cookieXSRF]
	if xsrf == "" {
		return "", errMissingXSRF
	}
	return xsrf, nil
}

func (h *AuthHandler) submitCredentials(ctx context.Context, email, password, xsrf string) (Tokens, error) {
	args := fasthttp.AcquireArgs()
	args.Set("username", email)
	args.Set("password", password)
	args.Set("remember_me", "true")
	args.Set("_csrf", xsrf)
	body := append([]byte(nil), args.QueryString()...)
	fasthttp.ReleaseArgs(args)

	rep, err := h.transport.Do(ctx, exchange{
		method:      fasthttp.MethodPost,
		url:         h.profileURL + "/do_login?new_SiteId=cod",
		cookies:     map[string]string{cookieXSRF: xsrf},
		contentType: "application/x-www-form-urlencoded",
		body:        body,
		wantCookies: []string{cookieSSO, cookieSSOExpiry, cookieATKN},
	})
	if err != nil {
		return Tokens{}, fmt.Errorf("failed to submit credentials: %w", err)
	}

	// a successful login answers with a redirect carrying the sso cookie
	if rep.status >= fasthttp.StatusBadRequest {
		return Tokens{}, fmt.Errorf("login returned status %d", rep.status)
	}

	sso := rep.cookies[cookieSSO]
	if sso == "" {
		return Tokens{}, errCredentialsRejected
	}

	return Tokens{
		SSO:       sso,
		SSOExpiry: rep.cookies[cookieSSOExpiry],
		ATKN:      rep.cookies[cookieATKN],
	}, nil
}
