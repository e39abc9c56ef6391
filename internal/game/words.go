package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// WordPicker produces secret words for rounds.
type WordPicker interface {
	Pick() string
}

// DefaultWords is the built-in word list used when no other source is configured.
func DefaultWords() []string {
	return []string{"monkey", "elephant", "zebra", "lion", "dolphin"}
}

// WordBank is a fixed pool of candidate words. Picks are uniform and may repeat
// across rounds. It is safe for concurrent use by many rooms.
type WordBank struct {
	words []string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewWordBank trims and de-blanks words. A nil src seeds from the clock.
func NewWordBank(words []string, src rand.Source) (*WordBank, error) {
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyWordBank
	}

	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &WordBank{words: cleaned, rng: rand.New(src)}, nil
}

func (b *WordBank) Pick() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.words[b.rng.Intn(len(b.words))]
}

func (b *WordBank) Len() int {
	return len(b.words)
}

// Words returns a copy of the pool.
func (b *WordBank) Words() []string {
	return append([]string(nil), b.words...)
}
