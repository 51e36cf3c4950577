package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordplay/internal/audio"
	"github.com/robalobadob/wordplay/internal/config"
	"github.com/robalobadob/wordplay/internal/content"
	"github.com/robalobadob/wordplay/internal/game"
	"github.com/robalobadob/wordplay/internal/game/gametest"
	"github.com/robalobadob/wordplay/internal/store"
)

var timing = config.GameConfig{
	QuizFeedbackDelay:  game.DefaultQuizDelay,
	MatchFeedbackDelay: game.DefaultMatchDelay,
	SortFeedbackDelay:  game.DefaultSortDelay,
}

func testContent(audioURL string) content.Set {
	return content.Set{
		Quiz: []content.QuizItem{
			{Prompt: "What is the opposite of 'big'?", Options: []string{"Small", "Large", "Tall", "Wide"}, Correct: "Small"},
			{Prompt: "What do you call a young dog?", Options: []string{"Kitten", "Puppy", "Cub", "Foal"}, Correct: "Puppy"},
		},
		Cards: []content.MatchCard{
			{ID: 1, Kind: content.KindWord, Content: "Big", PairKey: 1, Audio: audioURL},
			{ID: 2, Kind: content.KindMeaning, Content: "Large in size", PairKey: 1},
			{ID: 3, Kind: content.KindWord, Content: "Puppy", PairKey: 2},
			{ID: 4, Kind: content.KindMeaning, Content: "Young dog", PairKey: 2},
		},
		Words: []content.SortableWord{
			{ID: "1", Word: "Puppy", Category: "Animals"},
			{ID: "3", Word: "Happy", Category: "Emotions"},
		},
		Categories: []string{"Animals", "Emotions", "Colors"},
	}
}

type harness struct {
	srv   *Server
	sched *gametest.ManualScheduler
	store store.Store
}

func newHarness(t *testing.T, set content.Set, client *audio.Client) *harness {
	t.Helper()
	h := &harness{sched: &gametest.ManualScheduler{}, store: store.NewMemoryStore()}
	h.srv = New(Options{
		Content:   set,
		Store:     h.store,
		Scheduler: h.sched,
		Audio:     client,
		Timing:    timing,
		Origins:   []string{"http://localhost:5173"},
	})
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

type event[T any] struct {
	Accepted bool `json:"accepted"`
	State    T    `json:"state"`
}

func TestHealthAndDiagnostics(t *testing.T) {
	h := newHarness(t, testContent(""), nil)

	rec := h.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	h.do(t, http.MethodPost, "/quiz", nil)
	rec = h.do(t, http.MethodGet, "/debug/content", nil)
	stats := decode[map[string]int](t, rec)
	assert.Equal(t, map[string]int{
		"quiz": 2, "cards": 4, "pairs": 2, "words": 2, "categories": 3, "sessions": 1,
	}, stats)

	rec = h.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func TestQuizFlow(t *testing.T) {
	h := newHarness(t, testContent(""), nil)

	rec := h.do(t, http.MethodPost, "/quiz", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decode[game.QuizView](t, rec)
	require.NotEmpty(t, view.SessionID)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "What is the opposite of 'big'?", view.Prompt)
	base := "/quiz/" + view.SessionID

	rec = h.do(t, http.MethodPost, base+"/answer", map[string]string{"option": "Small"})
	require.Equal(t, http.StatusOK, rec.Code)
	ev := decode[event[game.QuizView]](t, rec)
	assert.True(t, ev.Accepted)
	assert.Equal(t, "Small", ev.State.Selected)
	assert.Equal(t, game.FeedbackCorrect, ev.State.Feedback)
	assert.Equal(t, 1, ev.State.Score)

	// latched until the delay fires
	rec = h.do(t, http.MethodPost, base+"/answer", map[string]string{"option": "Large"})
	ev = decode[event[game.QuizView]](t, rec)
	assert.False(t, ev.Accepted)
	assert.Equal(t, "Small", ev.State.Selected)

	h.sched.Advance(game.DefaultQuizDelay)

	rec = h.do(t, http.MethodGet, base, nil)
	view = decode[game.QuizView](t, rec)
	assert.Equal(t, 1, view.Index)
	assert.Empty(t, view.Selected)
	assert.Empty(t, view.Feedback)

	rec = h.do(t, http.MethodPost, base+"/answer", map[string]string{"option": "Kitten"})
	ev = decode[event[game.QuizView]](t, rec)
	assert.True(t, ev.Accepted)
	assert.Equal(t, 1, ev.State.Score)
	h.sched.Advance(game.DefaultQuizDelay)

	view = decode[game.QuizView](t, h.do(t, http.MethodGet, base, nil))
	assert.True(t, view.Finished)
	assert.Equal(t, 1, view.Score)

	rec = h.do(t, http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[game.QuizView](t, rec)
	assert.False(t, view.Finished)
	assert.Equal(t, 0, view.Score)
	assert.Equal(t, 0, view.Index)

	rec = h.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = h.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchingFlow(t *testing.T) {
	h := newHarness(t, testContent(""), nil)

	rec := h.do(t, http.MethodPost, "/matching", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decode[game.MatchingView](t, rec)
	assert.Equal(t, 2, view.TotalPairs)
	for _, c := range view.Cards {
		assert.False(t, c.FaceUp)
		assert.Empty(t, c.Content)
	}
	base := "/matching/" + view.SessionID

	flip := func(id int) event[game.MatchingView] {
		rec := h.do(t, http.MethodPost, base+"/flip", map[string]int{"cardId": id})
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[event[game.MatchingView]](t, rec)
	}

	ev := flip(1)
	assert.True(t, ev.Accepted)
	assert.Equal(t, []int{1}, ev.State.Flipped)

	ev = flip(4)
	assert.True(t, ev.Accepted)
	assert.Equal(t, game.FeedbackTryAgain, ev.State.Feedback)

	// hand is full until the cards turn back
	ev = flip(2)
	assert.False(t, ev.Accepted)

	h.sched.Advance(game.DefaultMatchDelay)
	view = decode[game.MatchingView](t, h.do(t, http.MethodGet, base, nil))
	assert.Empty(t, view.Flipped)
	assert.Empty(t, view.Feedback)

	flip(2)
	ev = flip(1)
	assert.Equal(t, game.FeedbackCorrect, ev.State.Feedback)
	assert.Equal(t, 1, ev.State.MatchedPairs)

	flip(3)
	ev = flip(4)
	assert.True(t, ev.State.Complete)

	ev = flip(1)
	assert.False(t, ev.Accepted)
}

func TestSortingFlow(t *testing.T) {
	h := newHarness(t, testContent(""), nil)

	rec := h.do(t, http.MethodPost, "/sorting", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decode[game.SortingView](t, rec)
	assert.Equal(t, []string{"Animals", "Emotions", "Colors"}, view.Categories)
	assert.Len(t, view.Words, 2)
	base := "/sorting/" + view.SessionID

	type dropEvent struct {
		Accepted bool             `json:"accepted"`
		Target   string           `json:"target"`
		Correct  bool             `json:"correct"`
		State    game.SortingView `json:"state"`
	}

	rec = h.do(t, http.MethodPost, base+"/drop", map[string]string{"wordId": "1", "category": "Emotions"})
	require.Equal(t, http.StatusOK, rec.Code)
	ev := decode[dropEvent](t, rec)
	assert.True(t, ev.Accepted)
	assert.False(t, ev.Correct)
	assert.Equal(t, game.FeedbackIncorrect, ev.State.Feedback)

	rec = h.do(t, http.MethodPost, base+"/drop", map[string]string{"wordId": "1"})
	ev = decode[dropEvent](t, rec)
	assert.True(t, ev.Accepted)
	assert.Empty(t, ev.Target)
	assert.Equal(t, game.FeedbackNoTarget, ev.State.Feedback)

	// geometry: overlapping bins resolve to the first declared category
	rec = h.do(t, http.MethodPost, base+"/drop", `{
		"wordId": "1",
		"point": {"x": 50, "y": 50},
		"bins": [
			{"category": "Emotions", "left": 0, "top": 0, "right": 100, "bottom": 100},
			{"category": "Animals", "left": 0, "top": 0, "right": 100, "bottom": 100}
		]
	}`)
	ev = decode[dropEvent](t, rec)
	assert.True(t, ev.Correct)
	assert.Equal(t, "Animals", ev.Target)
	assert.Equal(t, "Correct! Puppy belongs to Animals", ev.State.Feedback)
	assert.Equal(t, 1, ev.State.Score)

	h.sched.Advance(game.DefaultSortDelay)
	view = decode[game.SortingView](t, h.do(t, http.MethodGet, base, nil))
	assert.Empty(t, view.Feedback)
	assert.Len(t, view.Words, 1)

	rec = h.do(t, http.MethodPost, base+"/drop", map[string]string{"wordId": "3", "category": "Emotions"})
	ev = decode[dropEvent](t, rec)
	assert.True(t, ev.State.Complete)
	assert.Equal(t, 2, ev.State.Score)

	view = decode[game.SortingView](t, h.do(t, http.MethodPost, base+"/restart", nil))
	assert.Len(t, view.Words, 2)
	assert.Equal(t, 0, view.Score)
}

func TestBadRequests(t *testing.T) {
	h := newHarness(t, testContent(""), nil)
	quiz := decode[game.QuizView](t, h.do(t, http.MethodPost, "/quiz", nil))
	sorting := decode[game.SortingView](t, h.do(t, http.MethodPost, "/sorting", nil))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{name: "bad json", method: http.MethodPost, path: "/quiz/" + quiz.SessionID + "/answer", body: "{", status: http.StatusBadRequest},
		{name: "drop without word", method: http.MethodPost, path: "/sorting/" + sorting.SessionID + "/drop", body: `{"category":"Animals"}`, status: http.StatusBadRequest},
		{name: "unknown session", method: http.MethodGet, path: "/quiz/missing", status: http.StatusNotFound},
		{name: "wrong kind", method: http.MethodGet, path: "/matching/" + quiz.SessionID, status: http.StatusNotFound},
		{name: "wrong kind delete", method: http.MethodDelete, path: "/sorting/" + quiz.SessionID, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), `"error"`))
		})
	}

	// the quiz session survives the wrong-kind delete
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/quiz/"+quiz.SessionID, nil).Code)
}

func TestAudio(t *testing.T) {
	var hits atomic.Int32
	clips := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("src") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-big"))
	}))
	defer clips.Close()

	client := audio.NewClient(clips.Client(), time.Second)
	set := testContent(clips.URL + "/?src=Big")
	set.Cards[2].Audio = clips.URL + "/?src=broken"
	h := newHarness(t, set, client)

	rec := h.do(t, http.MethodGet, "/audio/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ID3-big", rec.Body.String())

	// flipping the word card warms the same cached clip
	m := decode[game.MatchingView](t, h.do(t, http.MethodPost, "/matching", nil))
	h.do(t, http.MethodPost, "/matching/"+m.SessionID+"/flip", map[string]int{"cardId": 1})
	client.Wait()
	assert.Equal(t, int32(1), hits.Load())

	assert.Equal(t, http.StatusBadGateway, h.do(t, http.MethodGet, "/audio/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/audio/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/audio/x", nil).Code)
}
