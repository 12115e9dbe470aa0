package roster

import (
	"fmt"
	"strconv"
)

// Allocator creates and deletes teams and moves participants in and out of
// them, subject to Rules.
type Allocator struct {
	store *Store
	rules Rules
}

// NewAllocator binds an allocator to a store. Zero-valued rule fields fall
// back to DefaultRules.
func NewAllocator(store *Store, rules Rules) *Allocator {
	return &Allocator{store: store, rules: rules.withDefaults()}
}

// Rules returns the effective rules.
func (a *Allocator) Rules() Rules {
	return a.rules
}

// CreateTeam inserts an empty team named "<prefix> <i>" for the lowest
// positive i not already taken, and returns the name.
func (a *Allocator) CreateTeam() string {
	teams := &a.store.state.Teams
	name := ""
	for i := 1; ; i++ {
		name = a.rules.NamePrefix + " " + strconv.Itoa(i)
		if !teams.Has(name) {
			break
		}
	}
	teams.Put(Team{Name: name, Members: []string{}, Track: a.rules.DefaultTrack})
	return name
}

// DeleteTeam removes the team. Its members stay on the roster, unassigned.
func (a *Allocator) DeleteTeam(name string) error {
	if !a.store.state.Teams.Delete(name) {
		return fmt.Errorf("%w: team %q", ErrNotFound, name)
	}
	return nil
}

// Assign appends email to the team's members.
func (a *Allocator) Assign(teamName, email string) error {
	team := a.store.state.Teams.ref(teamName)
	if team == nil {
		return fmt.Errorf("%w: team %q", ErrNotFound, teamName)
	}
	if email == "" {
		return fmt.Errorf("%w: empty email", ErrNotFound)
	}
	if team.Len() >= a.rules.Capacity {
		return fmt.Errorf("%w: %s already has %d/%d members", ErrCapacityExceeded, teamName, team.Len(), a.rules.Capacity)
	}
	if current, ok := a.store.TeamOf(email); ok {
		return fmt.Errorf("%w: %s is on %s", ErrAlreadyAssigned, email, current)
	}
	team.Members = append(team.Members, email)
	return nil
}

// Unassign removes email from the team's members.
func (a *Allocator) Unassign(teamName, email string) error {
	team := a.store.state.Teams.ref(teamName)
	if team == nil {
		return fmt.Errorf("%w: team %q", ErrNotFound, teamName)
	}
	idx := indexOf(team.Members, email)
	if idx < 0 {
		return fmt.Errorf("%w: %s is not a member of %s", ErrNotFound, email, teamName)
	}
	team.Members = append(team.Members[:idx], team.Members[idx+1:]...)
	return nil
}

// SetTrack replaces the team's track. Setting the current track is a valid no-op.
func (a *Allocator) SetTrack(teamName string, track Track) error {
	team := a.store.state.Teams.ref(teamName)
	if team == nil {
		return fmt.Errorf("%w: team %q", ErrNotFound, teamName)
	}
	if !a.rules.ValidTrack(track) {
		return fmt.Errorf("%w: %q", ErrInvalidTrack, track)
	}
	team.Track = track
	return nil
}
