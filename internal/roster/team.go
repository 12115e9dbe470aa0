package roster

import (
	"bytes"
	"encoding/json"
)

// Team is a named, capacity-bounded group of participants referenced by
// email. Members keep assignment order.
type Team struct {
	Name    string   `json:"-"`
	Members []string `json:"members"`
	Track   Track    `json:"track"`
}

// Has reports whether email is a member of the team.
func (t Team) Has(email string) bool {
	return indexOf(t.Members, email) >= 0
}

// Len returns the number of members.
func (t Team) Len() int {
	return len(t.Members)
}

// Clone returns a deep copy.
func (t Team) Clone() Team {
	t.Members = append([]string{}, t.Members...)
	return t
}

// MarshalJSON always emits a members array, never null.
func (t Team) MarshalJSON() ([]byte, error) {
	type wire struct {
		Members []string `json:"members"`
		Track   Track    `json:"track"`
	}
	members := t.Members
	if members == nil {
		members = []string{}
	}
	return json.Marshal(wire{Members: members, Track: t.Track})
}

// TeamSet is an insertion-ordered mapping from team name to team. The order
// is the iteration order used by lookups and exports.
type TeamSet struct {
	names []string
	teams map[string]*Team
}

// NewTeamSet builds a set from teams in the given order. A repeated name
// replaces the earlier entry but keeps its position.
func NewTeamSet(teams ...Team) TeamSet {
	var set TeamSet
	for _, team := range teams {
		set.Put(team)
	}
	return set
}

// Len returns the number of teams.
func (s *TeamSet) Len() int {
	return len(s.names)
}

// Has reports whether a team with this name exists.
func (s *TeamSet) Has(name string) bool {
	_, ok := s.teams[name]
	return ok
}

// Names returns the team names in iteration order.
func (s *TeamSet) Names() []string {
	return append([]string{}, s.names...)
}

// Get returns a copy of the named team.
func (s *TeamSet) Get(name string) (Team, bool) {
	team, ok := s.teams[name]
	if !ok {
		return Team{}, false
	}
	return team.Clone(), true
}

// List returns copies of all teams in iteration order.
func (s *TeamSet) List() []Team {
	out := make([]Team, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.teams[name].Clone())
	}
	return out
}

// Put inserts the team, or replaces an existing team of the same name in place.
func (s *TeamSet) Put(team Team) {
	if s.teams == nil {
		s.teams = map[string]*Team{}
	}
	stored := team.Clone()
	if _, exists := s.teams[team.Name]; !exists {
		s.names = append(s.names, team.Name)
	}
	s.teams[team.Name] = &stored
}

// Delete removes the named team and reports whether it existed.
func (s *TeamSet) Delete(name string) bool {
	if _, ok := s.teams[name]; !ok {
		return false
	}
	delete(s.teams, name)
	if idx := indexOf(s.names, name); idx >= 0 {
		s.names = append(s.names[:idx], s.names[idx+1:]...)
	}
	return true
}

// Clone returns a deep copy.
func (s *TeamSet) Clone() TeamSet {
	return NewTeamSet(s.List()...)
}

func (s *TeamSet) ref(name string) *Team {
	return s.teams[name]
}

// MarshalJSON encodes the set as a JSON object keyed by team name, in
// iteration order.
func (s TeamSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.teams[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
