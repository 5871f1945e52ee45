// internal/httpserver/server.go
//
// HTTP server wiring for the word-guessing backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Websocket endpoint: "/ws" (mounted outside the timeout middleware).
//   - Diagnostics: "/", "/health", "/debug/words".
//   - Read-only helpers for clients: hint validation, zhuyin lookup, public
//     rooms and recent results.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled for CLIENT_ORIGIN.
//   - Gameplay happens over the websocket only; nothing here mutates a room.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/guessword/go-server/internal/hub"
	"github.com/guessword/go-server/internal/room"
	"github.com/guessword/go-server/internal/store"
	"github.com/guessword/go-server/internal/words"
	"github.com/guessword/go-server/internal/zhuyin"
)

// Lobby is the read side of the hub.
type Lobby interface {
	Stats() hub.Stats
	PublicRooms() []room.Info
}

type Validator interface {
	ValidateHintPair(secret, hint string) words.Validation
	Stats() (n, chars int, fallback bool)
}

type Converter interface {
	CharToZhuyin(char string) (string, error)
}

// Socket is the websocket endpoint.
type Socket interface {
	http.Handler
	Len() int
}

// Deps are the components the routes read from.
type Deps struct {
	Lobby        Lobby
	Words        Validator
	Zhuyin       Converter
	Archive      store.Archive
	Socket       Socket
	ClientOrigin string
}

// Server bundles the router and its dependencies.
type Server struct {
	r *chi.Mux
	d Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.ClientOrigin == "" {
		d.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), d: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)         // recover from panics
	s.r.Use(jsonContentType)         // default JSON responses
	s.r.Use(corsFor(d.ClientOrigin)) // credentials-friendly CORS

	// Long-lived; must not be cut off by the timeout below.
	if d.Socket != nil {
		s.r.Get("/ws", d.Socket.ServeHTTP)
	}

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"guessword-go","endpoints":["/ws","/health","/api/validate","/api/zhuyin","/api/rooms","/api/results"]}`))
		})
		r.Get("/health", s.handleHealth)
		r.Get("/debug/words", s.handleWordStats)

		r.Route("/api", func(r chi.Router) {
			r.Get("/validate", s.handleValidate)
			r.Get("/zhuyin", s.handleZhuyin)
			r.Get("/rooms", s.handleRooms)
			r.Get("/results", s.handleResults)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ handlers -----------------------------------

type healthRes struct {
	OK          bool `json:"ok"`
	Rooms       int  `json:"rooms"`
	Games       int  `json:"games"`
	Connections int  `json:"connections"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := healthRes{OK: true}
	if s.d.Lobby != nil {
		st := s.d.Lobby.Stats()
		res.Rooms, res.Games = st.Rooms, st.Games
	}
	if s.d.Socket != nil {
		res.Connections = s.d.Socket.Len()
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	n, chars, fallback := s.d.Words.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"words":     n,
		"chars":     chars,
		"fallback":  fallback,
		"syllables": zhuyin.Size(),
	})
}

// handleValidate answers whether hint and main form a known word, e.g.
// GET /api/validate?main=河&hint=流.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	main := strings.TrimSpace(r.URL.Query().Get("main"))
	hint := strings.TrimSpace(r.URL.Query().Get("hint"))
	if !singleChar(main) || !singleChar(hint) {
		writeError(w, http.StatusBadRequest, "single_char_required")
		return
	}
	writeJSON(w, http.StatusOK, s.d.Words.ValidateHintPair(main, hint))
}

type zhuyinRes struct {
	Char   string `json:"char"`
	Zhuyin string `json:"zhuyin"`
}

func (s *Server) handleZhuyin(w http.ResponseWriter, r *http.Request) {
	char := strings.TrimSpace(r.URL.Query().Get("char"))
	z, err := s.d.Zhuyin.CharToZhuyin(char)
	if err != nil {
		writeError(w, http.StatusBadRequest, "single_char_required")
		return
	}
	writeJSON(w, http.StatusOK, zhuyinRes{Char: char, Zhuyin: z})
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.d.Lobby.PublicRooms()
	if rooms == nil {
		rooms = []room.Info{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	out, err := s.d.Archive.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent results")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if out == nil {
		out = []store.Result{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func singleChar(s string) bool { return utf8.RuneCountInString(s) == 1 }
