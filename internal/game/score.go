package game

import (
	"github.com/scythe504/sketchrooms/internal"
)

// Winners returns every entry whose score equals the maximum, in scoreboard
// order. Ties produce several winners; an empty scoreboard has none.
func Winners(scoreboard []internal.PlayerScore) []internal.PlayerScore {
	if len(scoreboard) == 0 {
		return nil
	}

	best := scoreboard[0].Score
	for _, ps := range scoreboard[1:] {
		best = max(best, ps.Score)
	}

	winners := make([]internal.PlayerScore, 0, 1)
	for _, ps := range scoreboard {
		if ps.Score == best {
			winners = append(winners, ps)
		}
	}
	return winners
}
