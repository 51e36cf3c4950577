// internal/game/sorting.go
//
// Sorting engine: drag word tokens into category bins.
//
// Rules for Drop(word, category):
//   - No target (empty category): hint feedback only.
//   - Word not remaining, or category not declared: ignored.
//   - Matching category: score+1 and the word leaves the pool.
//   - Other category: "Incorrect. Try again!" and the word stays.
// Every accepted drop clears its feedback after the delay. A clear only removes
// the message it was scheduled for; a newer message survives.

package game

import (
	"fmt"
	"time"

	"github.com/robalobadob/wordplay/internal/content"
)

// Sorting is a word-sorting session.
type Sorting struct {
	session

	words      []content.SortableWord
	byID       map[string]content.SortableWord
	categories []string
	delay      time.Duration

	remaining map[string]struct{}
	score     int
	feedback  string
	seq       uint64 // bumped on every feedback change
}

// WordView is a remaining word token.
type WordView struct {
	ID   string `json:"id"`
	Word string `json:"word"`
}

// SortingView is the renderable state of a sorting session.
type SortingView struct {
	SessionID  string     `json:"sessionId"`
	Categories []string   `json:"categories"`
	Words      []WordView `json:"words"`
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Feedback   string     `json:"feedback,omitempty"`
	Complete   bool       `json:"complete"`
}

// DropResult describes how a drop was handled.
type DropResult struct {
	Accepted bool   `json:"accepted"`
	Target   string `json:"target,omitempty"`
	Correct  bool   `json:"correct"`
}

// NewSorting starts a sorting game over words and the declared categories.
// A zero delay selects DefaultSortDelay.
func NewSorting(words []content.SortableWord, categories []string, sched Scheduler, delay time.Duration) *Sorting {
	if delay <= 0 {
		delay = DefaultSortDelay
	}
	byID := make(map[string]content.SortableWord, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}
	s := &Sorting{
		session:    newSession(KindSorting, sched),
		words:      words,
		byID:       byID,
		categories: categories,
		delay:      delay,
	}
	s.refill()
	return s
}

// Drop handles a word released over category; an empty category means the
// word was released outside every bin.
func (s *Sorting) Drop(wordID, category string) DropResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return DropResult{}
	}
	if category == "" {
		s.touch()
		s.say(FeedbackNoTarget)
		return DropResult{Accepted: true}
	}
	if _, ok := s.remaining[wordID]; !ok || !s.declared(category) {
		return DropResult{}
	}

	s.touch()
	word := s.byID[wordID]
	res := DropResult{Accepted: true, Target: category}
	if word.Category == category {
		s.score++
		delete(s.remaining, wordID)
		s.say(fmt.Sprintf(sortingCorrectFmt, word.Word, category))
		res.Correct = true
	} else {
		s.say(FeedbackIncorrect)
	}
	return res
}

// DropAt resolves the release point against bins and then drops the word.
func (s *Sorting) DropAt(wordID string, p Point, bins []Bin) DropResult {
	category, _ := HitTest(p, s.categories, bins)
	return s.Drop(wordID, category)
}

// say sets feedback and schedules its clear. Caller holds mu.
func (s *Sorting) say(msg string) {
	s.seq++
	s.feedback = msg
	seq := s.seq
	s.later(s.delay, func() {
		if s.seq == seq {
			s.feedback = ""
		}
	})
}

// Restart returns every word to the pool and zeroes the score.
func (s *Sorting) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.refill()
	s.score = 0
	s.feedback = ""
	s.seq++
}

// Complete reports whether every word has been sorted.
func (s *Sorting) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.remaining) == 0
}

// View snapshots the session for rendering.
func (s *Sorting) View() SortingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := SortingView{
		SessionID:  s.id,
		Categories: append([]string(nil), s.categories...),
		Words:      make([]WordView, 0, len(s.remaining)),
		Score:      s.score,
		Total:      len(s.words),
		Feedback:   s.feedback,
		Complete:   len(s.remaining) == 0,
	}
	for _, w := range s.words {
		if _, ok := s.remaining[w.ID]; ok {
			v.Words = append(v.Words, WordView{ID: w.ID, Word: w.Word})
		}
	}
	return v
}

// refill puts every word back in the pool. Caller holds mu or owns s.
func (s *Sorting) refill() {
	s.remaining = make(map[string]struct{}, len(s.words))
	for _, w := range s.words {
		s.remaining[w.ID] = struct{}{}
	}
}

func (s *Sorting) declared(category string) bool {
	for _, c := range s.categories {
		if c == category {
			return true
		}
	}
	return false
}
