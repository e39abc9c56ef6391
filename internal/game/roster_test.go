package game

import (
	"testing"
	"time"

	"github.com/scythe504/sketchrooms/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRoster(3)

	for _, p := range []struct{ id, name string }{{"a", "Ann"}, {"b", "Bob"}, {"c", "Cat"}} {
		_, err := r.Add(p.id, p.name, nil, now)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.IDs())

	_, err := r.Add("d", "Dan", nil, now)
	assert.ErrorIs(t, err, ErrRoomFull)
	_, err = r.Add("a", "Ann", nil, now)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	p, ok := r.Remove("b")
	require.True(t, ok)
	assert.False(t, p.Connected)
	assert.Equal(t, []string{"a", "c"}, r.IDs())

	_, ok = r.Remove("b")
	assert.False(t, ok)

	_, err = r.Add("e", "Cat", nil, now)
	assert.ErrorIs(t, err, ErrNameTaken)
	added, err := r.Add("e", "Bob", nil, now)
	require.NoError(t, err)
	assert.Zero(t, added.Score, "a returning name starts from zero")
	assert.Equal(t, now, added.JoinedAt)

	assert.Equal(t, []internal.PlayerScore{{Name: "Ann"}, {Name: "Cat"}, {Name: "Bob"}}, r.Scores())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 3, r.Capacity())
}
