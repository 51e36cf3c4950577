// internal/httpserver/routes_quiz.go
//
// HTTP routes for the multiple-choice quiz:
//   - POST   /quiz              → start a session (201, view)
//   - GET    /quiz/{id}         → current view
//   - POST   /quiz/{id}/answer  → submit an option
//   - POST   /quiz/{id}/restart → back to the first question
//   - DELETE /quiz/{id}         → end the session

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordplay/internal/game"
)

// mountQuiz registers all /quiz routes.
func (s *Server) mountQuiz(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Post("/", s.handleQuizNew)
		r.Get("/{id}", s.handleQuizGet)
		r.Post("/{id}/answer", s.handleQuizAnswer)
		r.Post("/{id}/restart", s.handleQuizRestart)
		r.Delete("/{id}", s.deleteSession(game.KindQuiz))
	})
}

func (s *Server) handleQuizNew(w http.ResponseWriter, r *http.Request) {
	q := game.NewQuiz(s.content.Quiz, s.sched, s.timing.QuizFeedbackDelay)
	s.newSession(w, r, q, q.View())
}

func (s *Server) handleQuizGet(w http.ResponseWriter, r *http.Request) {
	q, ok := loadSession[*game.Quiz](s, w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(q.View())
}

// answerReq is the payload for POST /quiz/{id}/answer.
type answerReq struct {
	Option string `json:"option"`
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	q, ok := loadSession[*game.Quiz](s, w, r)
	if !ok {
		return
	}
	accepted := q.Submit(req.Option)
	_ = json.NewEncoder(w).Encode(eventRes{Accepted: accepted, State: q.View()})
}

func (s *Server) handleQuizRestart(w http.ResponseWriter, r *http.Request) {
	q, ok := loadSession[*game.Quiz](s, w, r)
	if !ok {
		return
	}
	q.Restart()
	_ = json.NewEncoder(w).Encode(q.View())
}
