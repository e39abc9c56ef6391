package game

import "time"

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// Ticker is the subset of time.Ticker the round timer needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates tickers. Tests substitute a manual implementation.
type TickerFactory interface {
	NewTicker(d time.Duration) Ticker
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

type RealTickers struct{}

func (RealTickers) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// RoundTimer is a cancellable one-second countdown. Each run owns a generation
// number; the ticking goroutine only forwards that generation to fire, and the
// owner validates it through Tick. Start, Cancel and Tick must all be called
// under the owner's lock, which makes a cancel atomic with respect to a tick
// of the same run: once Cancel returns, no Tick for the old run succeeds.
type RoundTimer struct {
	tickers    TickerFactory
	resolution time.Duration
	fire       func(gen uint64)

	gen      uint64
	timeLeft int
	running  bool
	stop     chan struct{}
}

func NewRoundTimer(tickers TickerFactory, fire func(gen uint64)) *RoundTimer {
	if tickers == nil {
		tickers = RealTickers{}
	}
	return &RoundTimer{tickers: tickers, resolution: time.Second, fire: fire}
}

// Start (re)initializes the countdown. A running countdown is cancelled first.
func (t *RoundTimer) Start(seconds int) {
	t.Cancel()

	t.gen++
	t.timeLeft = max(seconds, 0)
	t.running = true
	t.stop = make(chan struct{})

	go t.run(t.gen, t.tickers.NewTicker(t.resolution), t.stop)
}

// Cancel stops ticking without expiring. Cancelling a stopped timer is a no-op.
func (t *RoundTimer) Cancel() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
}

// Tick applies one elapsed second for run gen. ok is false for a stale or
// stopped run. expired is true exactly once per run, when the count reaches 0.
func (t *RoundTimer) Tick(gen uint64) (remaining int, expired bool, ok bool) {
	if !t.running || gen != t.gen {
		return 0, false, false
	}
	if t.timeLeft > 0 {
		t.timeLeft--
	}
	if t.timeLeft == 0 {
		t.running = false
		close(t.stop)
		return 0, true, true
	}
	return t.timeLeft, false, true
}

func (t *RoundTimer) TimeLeft() int {
	return t.timeLeft
}

func (t *RoundTimer) Running() bool {
	return t.running
}

func (t *RoundTimer) Generation() uint64 {
	return t.gen
}

func (t *RoundTimer) run(gen uint64, ticker Ticker, stop <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			select {
			case <-stop:
				return
			default:
			}
			t.fire(gen)
		}
	}
}
