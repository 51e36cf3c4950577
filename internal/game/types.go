// internal/game/types.go
//
// Core type definitions shared by the mini-game engines.
// Defines:
//   - Kind:       which mini-game a session plays.
//   - Session:    what the session store needs from any engine.
//   - Scheduler:  runs delayed, non-cancellable transitions.
//   - Pronouncer: best-effort pronunciation side effect for word cards.
//   - Feedback texts shown after each graded action.

package game

import "time"

// Kind identifies the mini-game a session belongs to.
type Kind string

const (
	KindQuiz     Kind = "quiz"
	KindMatching Kind = "matching"
	KindSorting  Kind = "sorting"
)

// Default delays before feedback clears.
const (
	DefaultQuizDelay  = 2000 * time.Millisecond
	DefaultMatchDelay = 1500 * time.Millisecond
	DefaultSortDelay  = 1500 * time.Millisecond
)

// Feedback texts.
const (
	FeedbackCorrect   = "Correct!"
	FeedbackTryAgain  = "Try again!"
	FeedbackNoTarget  = "Drop the word in a category bin!"
	FeedbackIncorrect = "Incorrect. Try again!"
	quizIncorrectFmt  = "Incorrect! The correct answer is %s."
	sortingCorrectFmt = "Correct! %s belongs to %s"
)

//go:generate mockgen -destination=mock/pronouncer_mock.go -package=mock_game github.com/robalobadob/wordplay/internal/game Pronouncer

// Session is a single play-through of one mini-game.
type Session interface {
	ID() string
	Kind() Kind
	// LastActive reports when the session last accepted an input event.
	LastActive() time.Time
	// Dispose ends the session. Delayed transitions that fire afterwards are no-ops.
	Dispose()
}

// Scheduler runs f once after d. Scheduled tasks are never cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Pronouncer plays a pronunciation clip by URL. Implementations must not
// block the caller; failures are theirs to log.
type Pronouncer interface {
	Pronounce(url string)
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Silent is a Pronouncer that does nothing.
type Silent struct{}

// Pronounce implements Pronouncer.
func (Silent) Pronounce(string) {}
