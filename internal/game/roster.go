package game

import (
	"slices"
	"time"

	"github.com/scythe504/sketchrooms/internal"
)

// Sender delivers outbound messages to one connection. Implementations must not
// block: sessions call Send while holding their lock.
type Sender interface {
	Send(msg internal.Message[any])
}

type Player struct {
	ID        string
	Name      string
	Score     int
	Connected bool
	JoinedAt  time.Time

	out Sender
}

func (p *Player) send(msg internal.Message[any]) {
	if p.out != nil {
		p.out.Send(msg)
	}
}

// Roster is the insertion-ordered membership of one room. Join order is the
// rotation order for artist and host. Not safe for concurrent use; the owning
// session serializes access.
type Roster struct {
	capacity int
	order    []*Player
	byID     map[string]*Player
}

func NewRoster(capacity int) *Roster {
	return &Roster{
		capacity: capacity,
		order:    make([]*Player, 0, capacity),
		byID:     make(map[string]*Player, capacity),
	}
}

// Add appends a connected player with a zero score.
func (r *Roster) Add(id, name string, out Sender, now time.Time) (*Player, error) {
	if _, exists := r.byID[id]; exists {
		return nil, ErrAlreadyMember
	}
	if len(r.order) >= r.capacity {
		return nil, ErrRoomFull
	}
	if r.HasName(name) {
		return nil, ErrNameTaken
	}

	p := &Player{ID: id, Name: name, Connected: true, JoinedAt: now, out: out}
	r.order = append(r.order, p)
	r.byID[id] = p
	return p, nil
}

// Remove drops the player. Score and identity are not retained.
func (r *Roster) Remove(id string) (*Player, bool) {
	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(o *Player) bool { return o.ID == id })
	p.Connected = false
	return p, true
}

func (r *Roster) Get(id string) (*Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// HasName is an exact, case-sensitive match against connected players.
func (r *Roster) HasName(name string) bool {
	for _, p := range r.order {
		if p.Connected && p.Name == name {
			return true
		}
	}
	return false
}

func (r *Roster) Len() int {
	return len(r.order)
}

func (r *Roster) Capacity() int {
	return r.capacity
}

// IDs returns connection ids in join order.
func (r *Roster) IDs() []string {
	ids := make([]string, len(r.order))
	for i, p := range r.order {
		ids[i] = p.ID
	}
	return ids
}

// Players returns the members in join order.
func (r *Roster) Players() []*Player {
	return slices.Clone(r.order)
}

// Scores returns the scoreboard in join order.
func (r *Roster) Scores() []internal.PlayerScore {
	scores := make([]internal.PlayerScore, len(r.order))
	for i, p := range r.order {
		scores[i] = internal.PlayerScore{Name: p.Name, Score: p.Score}
	}
	return scores
}
