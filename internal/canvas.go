package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Stroke is one line segment drawn by the artist. The server stores and relays it
// as-is; only the fields needed to keep the log well formed are validated.
type Stroke struct {
	X0      float64   `json:"x0"`
	Y0      float64   `json:"y0"`
	X1      float64   `json:"x1"`
	Y1      float64   `json:"y1"`
	Color   string    `json:"color"`
	Size    BrushSize `json:"size"`
	Erasing bool      `json:"erasing"`
}

// BrushSize accepts either a JSON number or a numeric string, since range inputs
// in the browser report their value as a string.
type BrushSize float64

func (b *BrushSize) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*b = BrushSize(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("brush size must be a number: %w", err)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("brush size %q: %w", s, err)
	}
	*b = BrushSize(n)
	return nil
}

// Valid reports whether the stroke can be appended to a stroke log.
func (s Stroke) Valid() bool {
	for _, v := range []float64{s.X0, s.Y0, s.X1, s.Y1, float64(s.Size)} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Size > 0
}
