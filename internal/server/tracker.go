package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"warzone-tracker/internal/domain"
	"warzone-tracker/internal/middleware"
	"warzone-tracker/internal/service"
	"warzone-tracker/pkg/models"
	"warzone-tracker/pkg/warzone"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// statusClientClosedRequest is nginx's code for a request the caller abandoned.
const statusClientClosedRequest = 499

type TrackerServer struct {
	authSvc  *service.AuthService
	matchSvc *service.MatchService
	logger   zerolog.Logger
}

func NewTrackerServer(authSvc *service.AuthService, matchSvc *service.MatchService, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{authSvc: authSvc, matchSvc: matchSvc, logger: logger}
}

func (s *TrackerServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/login", s.Login)
		r.Get("/session", s.Session)
		r.Get("/players/{platform}/{name}/matches", s.GetMatches)
		r.Get("/lookups", s.GetLookups)
	})
	for procedure, h := range s.sessionHandlers() {
		r.Handle(procedure, h)
	}
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	LoggedIn bool `json:"logged_in"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type lookupResponse struct {
	ID           string     `json:"id"`
	PlayerName   string     `json:"player_name"`
	Platform     string     `json:"platform"`
	Kind         string     `json:"kind"`
	Start        *time.Time `json:"start,omitempty"`
	End          *time.Time `json:"end,omitempty"`
	Outcome      string     `json:"outcome"`
	Status       int        `json:"status,omitempty"`
	MatchCount   int        `json:"match_count"`
	ErrorMessage string     `json:"error,omitempty"`
	DurationMs   int64      `json:"duration_ms"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (s *TrackerServer) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	ok := s.authSvc.Login(r.Context(), req.Email, req.Password)
	status := http.StatusOK
	if !ok {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, sessionResponse{LoggedIn: ok})
}

func (s *TrackerServer) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{LoggedIn: s.authSvc.LoggedIn()})
}

func (s *TrackerServer) GetMatches(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	platform := chi.URLParam(r, "platform")
	name := chi.URLParam(r, "name")
	// chi routes on RawPath when the request carries encoded slashes
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player name"})
			return
		}
		name = unescaped
	}

	start, err := parseTime(r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start must be RFC3339"})
		return
	}
	end, err := parseTime(r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "end must be RFC3339"})
		return
	}

	var resp *warzone.Response[models.Summaries]
	if start == nil && end == nil {
		resp, err = s.matchSvc.GetRecentMatches(r.Context(), name, platform)
	} else {
		resp, err = s.matchSvc.GetMatchesInRange(r.Context(), name, platform, start, end)
	}
	if err != nil {
		logger.Warn().Err(err).Str("player_name", name).Str("platform", platform).Msg("match query failed")
		s.writeMatchError(w, resp, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *TrackerServer) writeMatchError(w http.ResponseWriter, resp *warzone.Response[models.Summaries], err error) {
	switch {
	case errors.Is(err, warzone.ErrInvalidQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, warzone.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: err.Error()})
	case errors.Is(err, warzone.ErrCancelled):
		writeJSON(w, statusClientClosedRequest, errorResponse{Error: err.Error()})
	case resp != nil:
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}

func (s *TrackerServer) GetLookups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	var (
		lookups []domain.Lookup
		err     error
	)
	if player := q.Get("player"); player != "" {
		lookups, err = s.matchSvc.PlayerLookups(r.Context(), player, q.Get("platform"), limit)
	} else {
		lookups, err = s.matchSvc.RecentLookups(r.Context(), limit)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list lookups")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list lookups"})
		return
	}

	out := make([]lookupResponse, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, lookupResponse{
			ID:           l.ID,
			PlayerName:   l.PlayerName,
			Platform:     l.Platform,
			Kind:         string(l.Kind),
			Start:        l.RangeStart,
			End:          l.RangeEnd,
			Outcome:      string(l.Outcome),
			Status:       l.Status,
			MatchCount:   l.MatchCount,
			ErrorMessage: l.ErrorMessage,
			DurationMs:   l.Duration.Milliseconds(),
			CreatedAt:    l.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"lookups": out})
}

func parseTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
