package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/scythe504/sketchrooms/internal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Sender ---

type recordingSender struct {
	mu   sync.Mutex
	msgs []internal.Message[any]
}

func (r *recordingSender) Send(msg internal.Message[any]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		types[i] = m.Type
	}
	return types
}

func (r *recordingSender) Count(typ string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.Type == typ {
			n++
		}
	}
	return n
}

// Last returns the data of the most recent message of typ.
func (r *recordingSender) Last(t *testing.T, typ string) any {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Type == typ {
			return r.msgs[i].Data
		}
	}
	require.Failf(t, "message not sent", "no %q message in %v", typ, r.msgs)
	return nil
}

func (r *recordingSender) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

// --- TickerFactory ---

type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.once.Do(func() { close(m.stopped) }) }

// manualTickers hands out tickers that only tick when the test says so.
type manualTickers struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (f *manualTickers) NewTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *manualTickers) Latest() *manualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickers[len(f.tickers)-1]
}

func (f *manualTickers) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// --- Stats ---

type MockStats struct {
	mock.Mock
}

func (m *MockStats) RoomOpened()                  { m.Called() }
func (m *MockStats) RoomClosed()                  { m.Called() }
func (m *MockStats) PlayerJoined()                { m.Called() }
func (m *MockStats) PlayerLeft()                  { m.Called() }
func (m *MockStats) JoinRejected(reason string)   { m.Called(reason) }
func (m *MockStats) RoundResolved(outcome string) { m.Called(outcome) }
func (m *MockStats) GameFinished()                { m.Called() }

// --- WordPicker ---

type fixedWords struct {
	mu    sync.Mutex
	words []string
	next  int
}

// Pick cycles through words in order.
func (f *fixedWords) Pick() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.words[f.next%len(f.words)]
	f.next++
	return w
}

// --- fixtures ---

type fixture struct {
	reg     *Registry
	tickers *manualTickers
	words   *fixedWords
}

func newFixture(t *testing.T, mutate ...func(*Settings)) *fixture {
	t.Helper()
	settings := Settings{
		MaxPlayers:    4,
		MaxRounds:     3,
		RoundDuration: 10 * time.Second,
	}
	for _, m := range mutate {
		m(&settings)
	}
	f := &fixture{
		tickers: &manualTickers{},
		words:   &fixedWords{words: []string{"apple", "banana", "cherry", "damson", "elder", "fig"}},
	}
	f.reg = NewRegistry(RegistryConfig{
		Settings: settings,
		Words:    f.words,
		Tickers:  f.tickers,
	})
	return f
}

func (f *fixture) room(t *testing.T, name string) *Session {
	t.Helper()
	s, err := f.reg.CreateRoom(name)
	require.NoError(t, err)
	return s
}

func join(t *testing.T, s *Session, id, name string) *recordingSender {
	t.Helper()
	out := &recordingSender{}
	_, err := s.Join(id, name, out)
	require.NoError(t, err)
	return out
}

// tick delivers n timer ticks for the current run, as the ticker goroutine would.
func tick(s *Session, n int) {
	for range n {
		s.mu.Lock()
		gen := s.timer.Generation()
		s.mu.Unlock()
		s.onTimerFire(gen)
	}
}

func currentWord(s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWord
}

func artistID(s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artistID
}

func hostID(s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostID
}

func seededSource() rand.Source {
	return rand.NewSource(1)
}
