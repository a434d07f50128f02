package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"warzone-tracker/internal/config"

	"github.com/rs/zerolog"
)

type testStack struct {
	server  *httptest.Server
	session *Session
	auth    *AuthHandler
	cod     *CodClient
}

func newTestStack(t *testing.T, handler http.Handler) *testStack {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{ProfileURL: srv.URL, APIURL: srv.URL}
	logger := zerolog.Nop()
	transport := NewTransport(logger)
	session := NewSession()

	return &testStack{
		server:  srv,
		session: session,
		auth:    NewAuthHandler(cfg, transport, session, logger),
		cod:     NewCodClient(cfg, transport, session, logger),
	}
}

// profileHandler mimics the login endpoints; only password "pw" is accepted.
func profileHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cod/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "xsrf-123"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /do_login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse login form: %v", err)
		}
		if c, err := r.Cookie("XSRF-TOKEN"); err != nil || c.Value != "xsrf-123" {
			t.Errorf("Expected XSRF cookie on login, got %v", c)
		}
		if r.Form.Get("_csrf") != "xsrf-123" {
			t.Errorf("Expected _csrf form value 'xsrf-123', got '%s'", r.Form.Get("_csrf"))
		}
		if r.Form.Get("password") != "pw" {
			http.Redirect(w, r, "/cod/login?failure=true", http.StatusFound)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "ACT_SSO_COOKIE", Value: "sso-abc"})
		http.SetCookie(w, &http.Cookie{Name: "ACT_SSO_COOKIE_EXPIRY", Value: "1700000000000"})
		http.SetCookie(w, &http.Cookie{Name: "atkn", Value: "atkn-xyz"})
		http.Redirect(w, r, "/cod/profile", http.StatusFound)
	})
	return mux
}
