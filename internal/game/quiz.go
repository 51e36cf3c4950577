// internal/game/quiz.go
//
// Quiz engine: one multiple-choice question at a time.
//
// States:
//   - Answering(i), 0 <= i < N, with or without a latched selection.
//   - Ended.
//
// Transitions:
//   - Submit latches the selection, grades it, and schedules the advance.
//   - The advance (after delay) clears selection and feedback, then moves to i+1 or Ended.
//   - Restart returns to Answering(0) from any state.
//
// While a selection is latched further submits are ignored, so each question
// contributes at most one point.

package game

import (
	"fmt"
	"time"

	"github.com/robalobadob/wordplay/internal/content"
)

// Quiz is a quiz session.
type Quiz struct {
	session

	items []content.QuizItem
	delay time.Duration

	index    int
	selected string
	latched  bool
	correct  bool
	feedback string
	score    int
	finished bool
}

// QuizView is the renderable state of a quiz session.
type QuizView struct {
	SessionID string   `json:"sessionId"`
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Prompt    string   `json:"prompt,omitempty"`
	Options   []string `json:"options,omitempty"`
	Selected  string   `json:"selected,omitempty"`
	Correct   *bool    `json:"correct,omitempty"` // set while a selection is latched
	Feedback  string   `json:"feedback,omitempty"`
	Score     int      `json:"score"`
	Finished  bool     `json:"finished"`
}

// NewQuiz starts a quiz over items. A zero delay selects DefaultQuizDelay.
func NewQuiz(items []content.QuizItem, sched Scheduler, delay time.Duration) *Quiz {
	if delay <= 0 {
		delay = DefaultQuizDelay
	}
	return &Quiz{
		session:  newSession(KindQuiz, sched),
		items:    items,
		delay:    delay,
		finished: len(items) == 0,
	}
}

// Submit answers the current question with option. It reports whether the
// event was accepted; events during a latched selection, after the quiz
// ended, or naming an option the question does not offer are ignored.
func (q *Quiz) Submit(option string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.disposed || q.finished || q.latched || q.index >= len(q.items) {
		return false
	}
	item := q.items[q.index]
	if !offers(item, option) {
		return false
	}

	q.touch()
	q.selected, q.latched = option, true
	q.correct = option == item.Correct
	if q.correct {
		q.feedback = FeedbackCorrect
		q.score++
	} else {
		q.feedback = fmt.Sprintf(quizIncorrectFmt, item.Correct)
	}

	q.later(q.delay, q.advance)
	return true
}

// advance is the delayed transition after a submit. Caller holds mu.
func (q *Quiz) advance() {
	q.selected, q.latched, q.correct = "", false, false
	q.feedback = ""
	if q.index+1 < len(q.items) {
		q.index++
		return
	}
	q.finished = true
}

// Restart resets the quiz to its first question with a zero score.
func (q *Quiz) Restart() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.reset()
	q.index, q.score = 0, 0
	q.selected, q.latched, q.correct = "", false, false
	q.feedback = ""
	q.finished = len(q.items) == 0
}

// View snapshots the session for rendering.
func (q *Quiz) View() QuizView {
	q.mu.Lock()
	defer q.mu.Unlock()

	v := QuizView{
		SessionID: q.id,
		Index:     q.index,
		Total:     len(q.items),
		Selected:  q.selected,
		Feedback:  q.feedback,
		Score:     q.score,
		Finished:  q.finished,
	}
	if !q.finished && q.index < len(q.items) {
		item := q.items[q.index]
		v.Prompt = item.Prompt
		v.Options = append([]string(nil), item.Options...)
	}
	if q.latched {
		c := q.correct
		v.Correct = &c
	}
	return v
}

func offers(item content.QuizItem, option string) bool {
	for _, o := range item.Options {
		if o == option {
			return true
		}
	}
	return false
}
