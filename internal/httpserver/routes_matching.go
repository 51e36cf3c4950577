// internal/httpserver/routes_matching.go
//
// HTTP routes for the memory-matching game:
//   - POST   /matching              → start a session (201, view)
//   - GET    /matching/{id}         → current view
//   - POST   /matching/{id}/flip    → turn a card face up
//   - POST   /matching/{id}/restart → all cards face down again
//   - DELETE /matching/{id}         → end the session

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordplay/internal/game"
)

// mountMatching registers all /matching routes.
func (s *Server) mountMatching(r chi.Router) {
	r.Route("/matching", func(r chi.Router) {
		r.Post("/", s.handleMatchingNew)
		r.Get("/{id}", s.handleMatchingGet)
		r.Post("/{id}/flip", s.handleMatchingFlip)
		r.Post("/{id}/restart", s.handleMatchingRestart)
		r.Delete("/{id}", s.deleteSession(game.KindMatching))
	})
}

func (s *Server) handleMatchingNew(w http.ResponseWriter, r *http.Request) {
	m := game.NewMatching(s.content.Cards, s.sched, s.pronouncer(), s.timing.MatchFeedbackDelay)
	s.newSession(w, r, m, m.View())
}

func (s *Server) handleMatchingGet(w http.ResponseWriter, r *http.Request) {
	m, ok := loadSession[*game.Matching](s, w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(m.View())
}

// flipReq is the payload for POST /matching/{id}/flip.
type flipReq struct {
	CardID int `json:"cardId"`
}

func (s *Server) handleMatchingFlip(w http.ResponseWriter, r *http.Request) {
	var req flipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	m, ok := loadSession[*game.Matching](s, w, r)
	if !ok {
		return
	}
	accepted := m.Flip(req.CardID)
	_ = json.NewEncoder(w).Encode(eventRes{Accepted: accepted, State: m.View()})
}

func (s *Server) handleMatchingRestart(w http.ResponseWriter, r *http.Request) {
	m, ok := loadSession[*game.Matching](s, w, r)
	if !ok {
		return
	}
	m.Restart()
	_ = json.NewEncoder(w).Encode(m.View())
}
