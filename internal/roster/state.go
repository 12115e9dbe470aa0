package roster

// State is the unit of persistence: the participant sequence in insertion
// order plus the ordered team mapping.
type State struct {
	Participants []Participant `json:"participants"`
	Teams        TeamSet       `json:"teams"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Participants: make([]Participant, 0, len(s.Participants)),
		Teams:        s.Teams.Clone(),
	}
	for _, p := range s.Participants {
		out.Participants = append(out.Participants, p.Clone())
	}
	return out
}
