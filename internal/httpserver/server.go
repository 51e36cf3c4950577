// internal/httpserver/server.go
//
// HTTP server wiring for the wordplay backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/debug/content".
//   - Game endpoints: mounted under /quiz, /matching and /sorting (see routes_*.go).
//   - Pronunciation clips: GET /audio/{cardId}.
//
// Notes:
//   - Every play-through is an anonymous session held in the store; the client
//     keeps the session id and sends it back in the path.
//   - Ignored game events are not errors: they answer 200 with accepted=false.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordplay/internal/audio"
	"github.com/robalobadob/wordplay/internal/config"
	"github.com/robalobadob/wordplay/internal/content"
	"github.com/robalobadob/wordplay/internal/game"
	"github.com/robalobadob/wordplay/internal/store"
)

// Options carries the server dependencies.
type Options struct {
	Content   content.Set
	Store     store.Store
	Scheduler game.Scheduler    // nil selects game.TimerScheduler
	Audio     *audio.Client     // nil disables pronunciation
	Timing    config.GameConfig // zero values select the engine defaults
	Origins   []string
}

// Server bundles router, session store, and game content.
type Server struct {
	r       *chi.Mux
	http    *http.Server
	content content.Set
	store   store.Store
	sched   game.Scheduler
	audio   *audio.Client
	timing  config.GameConfig
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		content: opts.Content,
		store:   opts.Store,
		sched:   opts.Scheduler,
		audio:   opts.Audio,
		timing:  opts.Timing,
	}
	if s.sched == nil {
		s.sched = game.TimerScheduler{}
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))   // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordplay","endpoints":["/health","/quiz","/matching","/sorting","/audio/{cardId}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/content", func(w http.ResponseWriter, r *http.Request) {
		stats := map[string]int{
			"quiz":       len(s.content.Quiz),
			"cards":      len(s.content.Cards),
			"pairs":      s.content.PairCount(),
			"words":      len(s.content.Words),
			"categories": len(s.content.Categories),
			"sessions":   s.store.Len(),
		}
		_ = json.NewEncoder(w).Encode(stats)
	})

	// --- games ---
	s.mountQuiz(s.r)
	s.mountMatching(s.r)
	s.mountSorting(s.r)
	s.r.Get("/audio/{cardId}", s.handleAudio)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

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

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// ------------------------------ sessions -----------------------------------

// eventRes is the answer to any input event.
type eventRes struct {
	Accepted bool `json:"accepted"`
	State    any  `json:"state"`
}

// newSession stores a freshly created session and answers 201 with its view.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request, sess game.Session, view any) {
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Debug().Str("session", sess.ID()).Str("kind", string(sess.Kind())).Msg("session started")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(view)
}

// loadSession fetches the {id} session and checks it is a T.
// On failure it writes a 404 and returns ok=false.
func loadSession[T game.Session](s *Server, w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return zero, false
	}
	typed, ok := sess.(T)
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return zero, false
	}
	return typed, true
}

// deleteSession disposes the {id} session, as when the player leaves the page.
func (s *Server) deleteSession(kind game.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := s.store.Get(r.Context(), id)
		if err != nil || sess.Kind() != kind {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		if err := s.store.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ------------------------------- audio -------------------------------------

// handleAudio serves the pronunciation clip of a word card.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "cardId"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	var url string
	for _, c := range s.content.Cards {
		if c.ID == id && c.Kind == content.KindWord {
			url = c.Audio
			break
		}
	}
	if url == "" || s.audio == nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	clip, err := s.audio.Clip(r.Context(), url)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Int("card", id).Msg("audio fetch failed")
		http.Error(w, `{"error":"audio_unavailable"}`, http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", clip.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(clip.Data)
}

// pronouncer returns the engine-facing side of the audio client.
func (s *Server) pronouncer() game.Pronouncer {
	if s.audio == nil {
		return game.Silent{}
	}
	return s.audio
}
