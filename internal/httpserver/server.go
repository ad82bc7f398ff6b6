// internal/httpserver/server.go
//
// HTTP surface for the bot process.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON).
//   - Diagnostics: "/", "/health", "/debug/words", "/debug/sessions".
//   - Gateway entry points: POST /connect (token handshake) and GET /ws
//     (authenticated websocket upgrade).
//   - Admin view of recent finished games, gated on a session token.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbot/internal/config"
	"github.com/robalobadob/wordbot/internal/gateway"
	"github.com/robalobadob/wordbot/internal/history"
	"github.com/robalobadob/wordbot/internal/session"
	"github.com/robalobadob/wordbot/internal/words"
)

// Server bundles the router with everything the routes touch.
type Server struct {
	r    *chi.Mux
	cfg  config.Config
	reg  *session.Registry
	lex  *words.Lexicon
	gw   *gateway.Gateway
	hist *history.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, reg *session.Registry, lex *words.Lexicon, gw *gateway.Gateway, hist *history.Store) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, reg: reg, lex: lex, gw: gw, hist: hist}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordbot","endpoints":["/health","POST /connect","GET /ws","GET /results"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"words":    s.lex.Size(),
			"degraded": s.lex.Degraded(),
		})
	})
	s.r.Get("/debug/sessions", func(w http.ResponseWriter, r *http.Request) {
		games, capacity, joined := s.reg.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{
			"games":    games,
			"capacity": capacity,
			"joined":   joined,
		})
	})

	s.r.Post("/connect", s.handleConnect)
	s.r.Get("/ws", s.handleWS)
	s.r.With(s.requireSession).Get("/results", s.handleResults)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

type connectReq struct {
	Token  string `json:"token"`
	Player string `json:"player"`
}
type connectRes struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// handleConnect exchanges the shared connect token for a session token.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Player == "" {
		http.Error(w, `{"error":"bad_request"}`, http.StatusBadRequest)
		return
	}
	if !gateway.VerifyConnectToken(s.cfg.GatewayTokenHash, req.Token) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := gateway.SignSessionToken([]byte(s.cfg.JWTSecret), req.Player, gateway.DefaultSessionTTL)
	if err != nil {
		log.Error().Err(err).Msg("signing session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(connectRes{Token: tok, ExpiresAt: exp.UTC().Format(time.RFC3339)})
}

// handleWS authenticates the request and hands it to the gateway.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	player, err := gateway.ParseSessionToken([]byte(s.cfg.JWTSecret), gateway.BearerOrQuery(r))
	if err != nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	s.gw.HandleUpgrade(w, r, player)
}

// handleResults lists recent finished games.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.hist.Recent(r.Context(), 50)
	if err != nil {
		log.Error().Err(err).Msg("listing results")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(results)
}

// requireSession gates a route on a valid session token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := gateway.ParseSessionToken([]byte(s.cfg.JWTSecret), gateway.BearerOrQuery(r)); err != nil {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
