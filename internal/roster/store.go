// Package roster holds the participant roster and the teams built from it.
//
// The Store owns the in-memory state for one editing session. The Allocator
// is the only writer of team membership and enforces the capacity, track and
// single-team rules. Neither persists anything: callers save after a logical
// transaction so one user action maps to one write.
package roster

// Store holds the roster state for the lifetime of an editing session.
type Store struct {
	state State
}

// NewStore takes ownership of state.
func NewStore(state State) *Store {
	if state.Participants == nil {
		state.Participants = []Participant{}
	}
	return &Store{state: state}
}

// AddParticipants appends already-deduplicated participants.
func (s *Store) AddParticipants(newOnes []Participant) {
	for _, p := range newOnes {
		s.state.Participants = append(s.state.Participants, p.Clone())
	}
}

// FindParticipant returns the first participant with this email.
func (s *Store) FindParticipant(email string) (Participant, bool) {
	if email == "" {
		return nil, false
	}
	for _, p := range s.state.Participants {
		if p.Email() == email {
			return p.Clone(), true
		}
	}
	return nil, false
}

// TeamOf returns the first team, in iteration order, listing email as a member.
func (s *Store) TeamOf(email string) (string, bool) {
	for _, name := range s.state.Teams.names {
		if s.state.Teams.teams[name].Has(email) {
			return name, true
		}
	}
	return "", false
}

// ResetAll clears participants and teams.
func (s *Store) ResetAll() {
	s.state = State{Participants: []Participant{}}
}

// Participants returns copies of all participants in insertion order.
func (s *Store) Participants() []Participant {
	out := make([]Participant, 0, len(s.state.Participants))
	for _, p := range s.state.Participants {
		out = append(out, p.Clone())
	}
	return out
}

// ParticipantCount returns the roster size without copying.
func (s *Store) ParticipantCount() int {
	return len(s.state.Participants)
}

// Teams returns copies of all teams in iteration order.
func (s *Store) Teams() []Team {
	return s.state.Teams.List()
}

// Team returns a copy of the named team.
func (s *Store) Team(name string) (Team, bool) {
	return s.state.Teams.Get(name)
}

// Snapshot returns a deep copy of the whole state, suitable for saving or
// for rolling back a failed transaction.
func (s *Store) Snapshot() State {
	return s.state.Clone()
}

// Restore replaces the state with a snapshot taken earlier.
func (s *Store) Restore(state State) {
	s.state = state.Clone()
}
