// internal/httpserver/routes_sorting.go
//
// HTTP routes for the drag-and-drop sorting game:
//   - POST   /sorting              → start a session (201, view)
//   - GET    /sorting/{id}         → current view
//   - POST   /sorting/{id}/drop    → release a word over a bin (or nowhere)
//   - POST   /sorting/{id}/restart → every word back in the pool
//   - DELETE /sorting/{id}         → end the session
//
// A drop names its target either directly ("category") or by geometry
// ("point" plus the on-screen "bins"), in which case the server hit-tests it.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordplay/internal/game"
)

// mountSorting registers all /sorting routes.
func (s *Server) mountSorting(r chi.Router) {
	r.Route("/sorting", func(r chi.Router) {
		r.Post("/", s.handleSortingNew)
		r.Get("/{id}", s.handleSortingGet)
		r.Post("/{id}/drop", s.handleSortingDrop)
		r.Post("/{id}/restart", s.handleSortingRestart)
		r.Delete("/{id}", s.deleteSession(game.KindSorting))
	})
}

func (s *Server) handleSortingNew(w http.ResponseWriter, r *http.Request) {
	so := game.NewSorting(s.content.Words, s.content.Categories, s.sched, s.timing.SortFeedbackDelay)
	s.newSession(w, r, so, so.View())
}

func (s *Server) handleSortingGet(w http.ResponseWriter, r *http.Request) {
	so, ok := loadSession[*game.Sorting](s, w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(so.View())
}

// dropReq is the payload for POST /sorting/{id}/drop.
type dropReq struct {
	WordID   string      `json:"wordId"`
	Category string      `json:"category,omitempty"` // empty: released outside every bin
	Point    *game.Point `json:"point,omitempty"`
	Bins     []game.Bin  `json:"bins,omitempty"`
}

// dropRes is the response for POST /sorting/{id}/drop.
type dropRes struct {
	game.DropResult
	State game.SortingView `json:"state"`
}

func (s *Server) handleSortingDrop(w http.ResponseWriter, r *http.Request) {
	var req dropReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WordID == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	so, ok := loadSession[*game.Sorting](s, w, r)
	if !ok {
		return
	}

	var res game.DropResult
	if req.Point != nil {
		res = so.DropAt(req.WordID, *req.Point, req.Bins)
	} else {
		res = so.Drop(req.WordID, req.Category)
	}
	_ = json.NewEncoder(w).Encode(dropRes{DropResult: res, State: so.View()})
}

func (s *Server) handleSortingRestart(w http.ResponseWriter, r *http.Request) {
	so, ok := loadSession[*game.Sorting](s, w, r)
	if !ok {
		return
	}
	so.Restart()
	_ = json.NewEncoder(w).Encode(so.View())
}
