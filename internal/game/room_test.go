package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/scythe504/sketchrooms/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	s, err := f.reg.CreateRoom("r1")
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, internal.PhaseLobby, snap.Phase)
	assert.Zero(t, snap.Round)
	assert.Zero(t, snap.Players)
	assert.NotEmpty(t, currentWord(s), "a word is sampled at creation")
	assert.Empty(t, s.Strokes())

	_, err = f.reg.CreateRoom("r1")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	for _, bad := range []string{" ", "", "a/b", "/"} {
		_, err = f.reg.CreateRoom(bad)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", bad)
	}

	got, err := f.reg.GetRoom("r1")
	require.NoError(t, err)
	assert.Same(t, s, got)
	_, err = f.reg.GetRoom("nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistry_ConcurrentCreate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.reg.CreateRoom("same"); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, f.reg.Len())
}

func TestRegistry_StaleReleaseKeepsSuccessor(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.room(t, "r1")
	join(t, s, "a", "Ann")
	s.Leave("a")

	_, err := s.Join("b", "Bob", &recordingSender{})
	assert.ErrorIs(t, err, ErrRoomNotFound, "a destroyed session admits nobody")

	again, err := f.reg.CreateRoom("r1")
	require.NoError(t, err)
	f.reg.release(s)
	got, err := f.reg.GetRoom("r1")
	require.NoError(t, err, "a stale session must not remove its successor")
	assert.Same(t, again, got)
}

func TestRegistry_SelfDeletionAllowsRecreate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.room(t, "r1")
	join(t, s, "a", "Ann")
	s.Leave("a")

	assert.Zero(t, f.reg.Len())
	_, err := f.reg.CreateRoom("r1")
	assert.NoError(t, err)
}

func TestRegistry_ListAndJoinable(t *testing.T) {
	t.Parallel()
	f := newFixture(t, func(st *Settings) { st.MaxPlayers = 2 })
	full := f.room(t, "b-full")
	join(t, full, "a", "Ann")
	join(t, full, "b", "Bob")
	lobby := f.room(t, "c-open")
	join(t, lobby, "c", "Cat")
	f.room(t, "a-empty")

	list := f.reg.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a-empty", "b-full", "c-open"}, []string{list[0].Name, list[1].Name, list[2].Name})
	assert.Equal(t, "Ann", list[1].Host)

	sum, ok := f.reg.Joinable()
	require.True(t, ok)
	assert.Equal(t, "a-empty", sum.Name)

	require.NoError(t, full.Start("a"))
	empty, err := f.reg.GetRoom("a-empty")
	require.NoError(t, err)
	join(t, empty, "x", "Xan")
	empty.Leave("x")
	sum, ok = f.reg.Joinable()
	require.True(t, ok)
	assert.Equal(t, "c-open", sum.Name)

	lobby.Leave("c")
	_, ok = f.reg.Joinable()
	assert.False(t, ok)
}

func TestRegistry_Reap(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var clockMu sync.Mutex
	clock := func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		clockMu.Lock()
		defer clockMu.Unlock()
		now = now.Add(d)
	}

	reg := NewRegistry(RegistryConfig{
		Settings: DefaultSettings(),
		Words:    &fixedWords{words: []string{"x"}},
		Tickers:  &manualTickers{},
		Clock:    clock,
	})
	_, err := reg.CreateRoom("idle")
	require.NoError(t, err)
	busy, err := reg.CreateRoom("busy")
	require.NoError(t, err)
	join(t, busy, "a", "Ann")

	assert.Zero(t, reg.Reap(time.Minute))
	advance(2 * time.Minute)
	assert.Equal(t, 1, reg.Reap(time.Minute))

	_, err = reg.GetRoom("idle")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = reg.GetRoom("busy")
	assert.NoError(t, err)
}

func TestRegistry_RunReaperStopsWithContext(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.reg.RunReaper(ctx, time.Millisecond, 0)
		close(done)
	}()

	f.room(t, "short-lived")
	require.Eventually(t, func() bool { return f.reg.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestRegistry_Stats(t *testing.T) {
	t.Parallel()
	stats := &MockStats{}
	stats.On("RoomOpened").Once()
	stats.On("PlayerJoined").Twice()
	stats.On("JoinRejected", "name-taken").Once()
	stats.On("RoundResolved", OutcomeGuess).Once()
	stats.On("GameFinished").Once()
	stats.On("PlayerLeft").Twice()
	stats.On("RoomClosed").Once()

	reg := NewRegistry(RegistryConfig{
		Settings: Settings{MaxPlayers: 4, MaxRounds: 1, RoundDuration: 5 * time.Second},
		Words:    &fixedWords{words: []string{"one", "two"}},
		Tickers:  &manualTickers{},
		Stats:    stats,
	})
	s, err := reg.CreateRoom("r1")
	require.NoError(t, err)
	join(t, s, "a", "Ann")
	join(t, s, "b", "Bob")
	_, err = s.Join("c", "Bob", &recordingSender{})
	require.ErrorIs(t, err, ErrNameTaken)

	require.NoError(t, s.Start("a"))
	require.Equal(t, ChatCorrectGuess, s.Chat("b", currentWord(s)))
	s.Leave("a")
	s.Leave("b")

	stats.AssertExpectations(t)
	stats.AssertNotCalled(t, "RoundResolved", OutcomeTimeout)
	stats.AssertNumberOfCalls(t, "RoomClosed", 1)
}

type recordingEvents struct {
	mu      sync.Mutex
	created []internal.RoomSummary
}

func (e *recordingEvents) RoomCreated(sum internal.RoomSummary) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, sum)
}

func TestRegistry_RoomCreatedEvent(t *testing.T) {
	t.Parallel()
	events := &recordingEvents{}
	reg := NewRegistry(RegistryConfig{
		Settings: Settings{MaxPlayers: 4, MaxRounds: 1, RoundDuration: 5 * time.Second},
		Words:    &fixedWords{words: []string{"x"}},
		Tickers:  &manualTickers{},
		Events:   events,
	})

	_, err := reg.CreateRoom("r1")
	require.NoError(t, err)
	_, err = reg.CreateRoom("r1")
	require.ErrorIs(t, err, ErrAlreadyExists)
	_, err = reg.CreateRoom("a/b")
	require.ErrorIs(t, err, ErrInvalidName)

	events.mu.Lock()
	defer events.mu.Unlock()
	require.Len(t, events.created, 1, "rejected creations are not announced")
	assert.Equal(t, "r1", events.created[0].Name)
	assert.Equal(t, internal.PhaseLobby, events.created[0].Phase)
	assert.Equal(t, 4, events.created[0].MaxPlayers)
}
