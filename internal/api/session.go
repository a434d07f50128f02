package api

import (
	"sync"
	"sync/atomic"
)

const (
	cookieXSRF      = "XSRF-TOKEN"
	cookieSSO       = "ACT_SSO_COOKIE"
	cookieSSOExpiry = "ACT_SSO_COOKIE_EXPIRY"
	cookieATKN      = "atkn"
)

type Tokens struct {
	SSO       string
	SSOExpiry string
	ATKN      string
}

func (t Tokens) Cookies() map[string]string {
	cookies := make(map[string]string, 3)
	if t.SSO != "" {
		cookies[cookieSSO] = t.SSO
	}
	if t.SSOExpiry != "" {
		cookies[cookieSSOExpiry] = t.SSOExpiry
	}
	if t.ATKN != "" {
		cookies[cookieATKN] = t.ATKN
	}
	return cookies
}

// Session holds the login state of one account. The flag is read on every
// query so it is atomic; tokens only change on login and invalidation.
type Session struct {
	loggedIn atomic.Bool
	mu       sync.RWMutex
	tokens   Tokens
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) IsLoggedIn() bool {
	return s.loggedIn.Load()
}

func (s *Session) Establish(tokens Tokens) {
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	s.loggedIn.Store(true)
}

func (s *Session) Invalidate() {
	s.loggedIn.Store(false)
	s.mu.Lock()
	s.tokens = Tokens{}
	s.mu.Unlock()
}

func (s *Session) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}
