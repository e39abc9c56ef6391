package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTimer(t *testing.T) {
	t.Parallel()

	t.Run("expires exactly once", func(t *testing.T) {
		t.Parallel()
		timer := NewRoundTimer(&manualTickers{}, func(uint64) {})
		timer.Start(2)
		gen := timer.Generation()

		remaining, expired, ok := timer.Tick(gen)
		assert.Equal(t, []any{1, false, true}, []any{remaining, expired, ok})
		remaining, expired, ok = timer.Tick(gen)
		assert.Equal(t, []any{0, true, true}, []any{remaining, expired, ok})
		_, _, ok = timer.Tick(gen)
		assert.False(t, ok)
		assert.False(t, timer.Running())
	})

	t.Run("cancel is idempotent and suppresses expiry", func(t *testing.T) {
		t.Parallel()
		timer := NewRoundTimer(&manualTickers{}, func(uint64) {})
		timer.Cancel()
		timer.Start(1)
		gen := timer.Generation()
		timer.Cancel()
		timer.Cancel()

		_, expired, ok := timer.Tick(gen)
		assert.False(t, ok)
		assert.False(t, expired)
		assert.Equal(t, 1, timer.TimeLeft())
	})

	t.Run("restart invalidates the previous run", func(t *testing.T) {
		t.Parallel()
		tickers := &manualTickers{}
		timer := NewRoundTimer(tickers, func(uint64) {})
		timer.Start(5)
		old := timer.Generation()
		timer.Start(3)

		_, _, ok := timer.Tick(old)
		assert.False(t, ok)
		assert.Equal(t, 3, timer.TimeLeft())
		assert.Equal(t, 2, tickers.Count())
		timer.Cancel()
	})
}
