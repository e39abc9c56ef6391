package internal

// PlayerScore is the public view of a roster member used in scoreboards and results.
type PlayerScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
