package warzone

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"warzone-tracker/internal/api"
	"warzone-tracker/internal/config"

	"github.com/rs/zerolog"
)

func TestClient_LoginFetchThenSessionExpires(t *testing.T) {
	var expired atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cod/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "xsrf"})
	})
	mux.HandleFunc("POST /do_login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "ACT_SSO_COOKIE", Value: "sso"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/papi-client/", func(w http.ResponseWriter, r *http.Request) {
		if expired.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"status":"success","data":{"matches":[{"matchID":"111"},{"matchID":"222"}]}}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{ProfileURL: srv.URL, APIURL: srv.URL}
	logger := zerolog.Nop()
	transport := api.NewTransport(logger)
	session := api.NewSession()
	c := New(
		api.NewAuthHandler(cfg, transport, session, logger),
		api.NewCodClient(cfg, transport, session, logger),
		logger,
	)

	if !c.Login(context.Background(), "user@example.com", "pw") {
		t.Fatal("Expected login to succeed")
	}
	if !c.IsLoggedIn() {
		t.Fatal("Expected IsLoggedIn after login")
	}

	resp, err := c.GetRecentMatches(context.Background(), "Player1", "battlenet")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(resp.Data.Matches) != 2 || resp.Data.Matches[1].MatchID != "222" {
		t.Errorf("Unexpected payload: %+v", resp.Data)
	}

	expired.Store(true)
	if _, err := c.GetRecentMatches(context.Background(), "Player1", "battlenet"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Expected ErrNotAuthenticated after 401, got %v", err)
	}
	if c.IsLoggedIn() {
		t.Error("Expected session invalidated after 401")
	}
}
