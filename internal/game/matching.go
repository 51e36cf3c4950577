// internal/game/matching.go
//
// Matching engine: a grid of face-down cards, two revealed at a time.
//
// Rules:
//   - Flip is ignored when two cards are face up, when the card is already face up,
//     when its pair is already matched, or when the card id is unknown.
//   - The first flip of a word card with an audio URL triggers a pronunciation.
//   - A second flip with the same pair key matches immediately ("Correct!").
//   - A second flip with a different pair key shows "Try again!" and both cards
//     turn back after the delay.
//   - The game is complete once every pair key is matched.

package game

import (
	"time"

	"github.com/robalobadob/wordplay/internal/content"
)

// Matching is a memory-matching session.
type Matching struct {
	session

	cards []content.MatchCard
	byID  map[int]content.MatchCard
	pairs int
	voice Pronouncer
	delay time.Duration

	flipped  []int
	matched  map[int]struct{}
	feedback string
}

// CardView is a card as the player sees it. Content is hidden while face down.
type CardView struct {
	ID       int              `json:"id"`
	Kind     content.CardKind `json:"kind,omitempty"`
	Content  string           `json:"content,omitempty"`
	FaceUp   bool             `json:"faceUp"`
	Matched  bool             `json:"matched"`
	HasAudio bool             `json:"hasAudio"`
}

// MatchingView is the renderable state of a matching session.
type MatchingView struct {
	SessionID    string     `json:"sessionId"`
	Cards        []CardView `json:"cards"`
	Flipped      []int      `json:"flipped"`
	MatchedPairs int        `json:"matchedPairs"`
	TotalPairs   int        `json:"totalPairs"`
	Feedback     string     `json:"feedback,omitempty"`
	Complete     bool       `json:"complete"`
}

// NewMatching starts a matching game over cards. voice may be nil.
// A zero delay selects DefaultMatchDelay.
func NewMatching(cards []content.MatchCard, sched Scheduler, voice Pronouncer, delay time.Duration) *Matching {
	if delay <= 0 {
		delay = DefaultMatchDelay
	}
	if voice == nil {
		voice = Silent{}
	}
	byID := make(map[int]content.MatchCard, len(cards))
	keys := make(map[int]struct{}, len(cards)/2)
	for _, c := range cards {
		byID[c.ID] = c
		keys[c.PairKey] = struct{}{}
	}
	return &Matching{
		session: newSession(KindMatching, sched),
		cards:   cards,
		byID:    byID,
		pairs:   len(keys),
		voice:   voice,
		delay:   delay,
		matched: make(map[int]struct{}, len(keys)),
	}
}

// Flip turns card id face up and reports whether the event was accepted.
func (m *Matching) Flip(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.byID[id]
	if m.disposed || !ok || len(m.flipped) >= 2 || m.isFlipped(id) {
		return false
	}
	if _, done := m.matched[card.PairKey]; done {
		return false
	}

	m.touch()
	if m.feedback == FeedbackCorrect {
		m.feedback = ""
	}
	m.flipped = append(m.flipped, id)

	if len(m.flipped) == 1 {
		if card.Kind == content.KindWord && card.Audio != "" {
			m.voice.Pronounce(card.Audio)
		}
		return true
	}

	first := m.byID[m.flipped[0]]
	if first.PairKey == card.PairKey && first.ID != card.ID {
		m.matched[card.PairKey] = struct{}{}
		m.flipped = nil
		m.feedback = FeedbackCorrect
		return true
	}

	m.feedback = FeedbackTryAgain
	m.later(m.delay, func() {
		m.flipped = nil
		m.feedback = ""
	})
	return true
}

// Restart turns every card face down and forgets all matches.
func (m *Matching) Restart() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
	m.flipped = nil
	m.matched = make(map[int]struct{}, m.pairs)
	m.feedback = ""
}

// Complete reports whether every pair has been matched.
func (m *Matching) Complete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matched) == m.pairs
}

// View snapshots the session for rendering.
func (m *Matching) View() MatchingView {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := MatchingView{
		SessionID:    m.id,
		Cards:        make([]CardView, 0, len(m.cards)),
		Flipped:      append([]int{}, m.flipped...),
		MatchedPairs: len(m.matched),
		TotalPairs:   m.pairs,
		Feedback:     m.feedback,
		Complete:     len(m.matched) == m.pairs,
	}
	for _, c := range m.cards {
		_, matched := m.matched[c.PairKey]
		cv := CardView{
			ID:       c.ID,
			FaceUp:   matched || m.isFlipped(c.ID),
			Matched:  matched,
			HasAudio: c.Kind == content.KindWord && c.Audio != "",
		}
		if cv.FaceUp {
			cv.Kind, cv.Content = c.Kind, c.Content
		}
		v.Cards = append(v.Cards, cv)
	}
	return v
}

// isFlipped reports whether id is currently face up. Caller holds mu.
func (m *Matching) isFlipped(id int) bool {
	for _, f := range m.flipped {
		if f == id {
			return true
		}
	}
	return false
}
