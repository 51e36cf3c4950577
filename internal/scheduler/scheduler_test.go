package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordplay/internal/content"
	"github.com/robalobadob/wordplay/internal/game"
	"github.com/robalobadob/wordplay/internal/game/gametest"
	"github.com/robalobadob/wordplay/internal/store"
)

func TestJanitor_SweepEvictsIdle(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	q := game.NewQuiz([]content.QuizItem{
		{Prompt: "p", Options: []string{"a", "b", "c", "d"}, Correct: "a"},
	}, &gametest.ManualScheduler{}, 0)
	require.NoError(t, st.Save(context.Background(), q))

	New(st, time.Hour, time.Minute).Sweep()
	assert.Equal(t, 1, st.Len())

	New(st, -time.Second, time.Minute).Sweep()
	assert.Equal(t, 0, st.Len())
	assert.True(t, q.Disposed())
}

func TestJanitor_StartStop(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	j := New(st, time.Hour, time.Second)
	require.NoError(t, j.Start())
	assert.NotPanics(t, j.Stop)
}
