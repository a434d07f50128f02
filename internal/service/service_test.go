package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
	"warzone-tracker/internal/api"
	"warzone-tracker/internal/config"
	"warzone-tracker/internal/database"
	"warzone-tracker/internal/db"
	"warzone-tracker/internal/domain"
	"warzone-tracker/internal/repository"
	"warzone-tracker/pkg/warzone"

	"github.com/rs/zerolog"
)

type testEnv struct {
	auth    *AuthService
	matches *MatchService
	status  atomic.Int32
}

// newTestEnv wires the services against a fake upstream whose match endpoint
// answers with env.status (200 by default).
func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	env := &testEnv{}
	env.status.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cod/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "xsrf"})
	})
	mux.HandleFunc("POST /do_login", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("password") == "pw" {
			http.SetCookie(w, &http.Cookie{Name: "ACT_SSO_COOKIE", Value: "sso"})
		}
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("GET /api/papi-client/", func(w http.ResponseWriter, r *http.Request) {
		status := int(env.status.Load())
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"status":"success","data":{"matches":[{"matchID":"1"},{"matchID":"2"},{"matchID":"3"}]}}`))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg.ProfileURL = srv.URL
	cfg.APIURL = srv.URL
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")

	logger := zerolog.Nop()
	sqlDB, err := database.New(cfg, logger)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	transport := api.NewTransport(logger)
	session := api.NewSession()
	client := warzone.New(
		api.NewAuthHandler(cfg, transport, session, logger),
		api.NewCodClient(cfg, transport, session, logger),
		logger,
	)

	env.auth = NewAuthService(client, cfg, logger)
	env.matches = NewMatchService(client, repository.NewLookupRepository(db.New(sqlDB), logger), logger)
	return env
}

func TestAuthService_LoginWithConfig(t *testing.T) {
	env := newTestEnv(t, &config.Config{CodEmail: "user@example.com", CodPassword: "pw"})

	if !env.auth.LoginWithConfig(context.Background()) {
		t.Fatal("Expected configured login to succeed")
	}
	if !env.auth.LoggedIn() {
		t.Error("Expected LoggedIn after configured login")
	}
}

func TestAuthService_LoginWithoutConfig(t *testing.T) {
	env := newTestEnv(t, &config.Config{})

	if env.auth.LoginWithConfig(context.Background()) {
		t.Error("Expected no login without configured credentials")
	}
	if env.auth.Login(context.Background(), "user@example.com", "bad") {
		t.Error("Expected bad password to be rejected")
	}
	if env.auth.LoggedIn() {
		t.Error("Expected session to stay logged out")
	}
}

func TestMatchService_RecordsLookups(t *testing.T) {
	env := newTestEnv(t, &config.Config{})
	ctx := context.Background()

	if _, err := env.matches.GetRecentMatches(ctx, "Player1", "battlenet"); !errors.Is(err, warzone.ErrNotAuthenticated) {
		t.Fatalf("Expected ErrNotAuthenticated before login, got %v", err)
	}

	env.auth.Login(ctx, "user@example.com", "pw")

	resp, err := env.matches.GetRecentMatches(ctx, "Player1", "battlenet")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(resp.Data.Matches) != 3 {
		t.Errorf("Expected 3 matches, got %d", len(resp.Data.Matches))
	}

	env.status.Store(http.StatusInternalServerError)
	start := time.Now().Add(-24 * time.Hour)
	resp, err = env.matches.GetMatchesInRange(ctx, "Player1", "battlenet", &start, nil)
	if !errors.Is(err, warzone.ErrUpstreamFailure) {
		t.Fatalf("Expected ErrUpstreamFailure, got %v", err)
	}
	if resp == nil || resp.ErrorMessage == "" {
		t.Error("Expected response with error message on upstream failure")
	}

	if err := env.matches.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lookups, err := env.matches.PlayerLookups(ctx, "Player1", "battle", 0)
	if err != nil {
		t.Fatalf("PlayerLookups() error = %v", err)
	}
	if len(lookups) != 3 {
		t.Fatalf("Expected 3 lookups, got %d", len(lookups))
	}

	outcomes := map[domain.Outcome]domain.Lookup{}
	for _, l := range lookups {
		outcomes[l.Outcome] = l
	}
	if l, ok := outcomes[domain.OutcomeOK]; !ok || l.MatchCount != 3 || l.Kind != domain.LookupRecent {
		t.Errorf("Expected ok recent lookup with 3 matches, got %+v", l)
	}
	if _, ok := outcomes[domain.OutcomeUnauthenticated]; !ok {
		t.Error("Expected unauthenticated lookup to be recorded")
	}
	if l, ok := outcomes[domain.OutcomeUpstreamError]; !ok || l.Status != http.StatusInternalServerError || l.Kind != domain.LookupRange || l.RangeStart == nil {
		t.Errorf("Expected upstream error range lookup with status 500, got %+v", l)
	}
}

func TestMatchService_UnauthorizedLogsOut(t *testing.T) {
	env := newTestEnv(t, &config.Config{})
	ctx := context.Background()

	env.auth.Login(ctx, "user@example.com", "pw")
	env.status.Store(http.StatusUnauthorized)

	if _, err := env.matches.GetRecentMatches(ctx, "Player1", "battle"); !errors.Is(err, warzone.ErrNotAuthenticated) {
		t.Fatalf("Expected ErrNotAuthenticated, got %v", err)
	}
	if env.auth.LoggedIn() {
		t.Error("Expected session invalidated after upstream 401")
	}
	env.matches.Flush()
}

func TestMaskEmail(t *testing.T) {
	tests := map[string]string{
		"user@example.com": "u***@example.com",
		"a@example.com":    "*@example.com",
		"not-an-email":     "***",
	}
	for in, want := range tests {
		if got := maskEmail(in); got != want {
			t.Errorf("maskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	if got := clampLimit(0); got != 20 {
		t.Errorf("Expected default 20, got %d", got)
	}
	if got := clampLimit(500); got != 100 {
		t.Errorf("Expected max 100, got %d", got)
	}
	if got := clampLimit(7); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
}
