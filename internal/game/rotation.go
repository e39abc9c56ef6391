package game

// nextInOrder returns the id following current in order, wrapping to the first.
// When current is not in order the rotation anchors at the first member.
// order must not be empty.
func nextInOrder(order []string, current string) string {
	for i, id := range order {
		if id == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// NextArtist picks who draws after currentArtistID.
func NextArtist(order []string, currentArtistID string) string {
	return nextInOrder(order, currentArtistID)
}

// NextHost picks the host that replaces currentHostID. A departed host has
// already been removed from order, so this yields the earliest-joined member.
func NextHost(order []string, currentHostID string) string {
	return nextInOrder(order, currentHostID)
}
