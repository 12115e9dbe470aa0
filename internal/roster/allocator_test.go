package roster

import (
	"errors"
	"fmt"
	"testing"
)

func newTestAllocator(teams ...Team) (*Store, *Allocator) {
	store := NewStore(State{Teams: NewTeamSet(teams...)})
	return store, NewAllocator(store, DefaultRules())
}

func TestCreateTeamPicksLowestFreeSuffix(t *testing.T) {
	_, alloc := newTestAllocator(
		Team{Name: "Team 1", Track: TrackUnassigned},
		Team{Name: "Team 3", Track: TrackML},
	)
	name := alloc.CreateTeam()
	if name != "Team 2" {
		t.Fatalf("CreateTeam() = %q, want Team 2", name)
	}
	if next := alloc.CreateTeam(); next != "Team 4" {
		t.Fatalf("second CreateTeam() = %q, want Team 4", next)
	}
}

func TestCreateTeamDefaults(t *testing.T) {
	store, alloc := newTestAllocator()
	name := alloc.CreateTeam()
	team, ok := store.Team(name)
	if !ok {
		t.Fatalf("team %s missing after create", name)
	}
	if team.Track != TrackUnassigned {
		t.Fatalf("track = %q, want Unassigned", team.Track)
	}
	if team.Len() != 0 {
		t.Fatalf("members = %v, want none", team.Members)
	}
}

func TestCreateTeamUsesConfiguredPrefix(t *testing.T) {
	store := NewStore(State{})
	alloc := NewAllocator(store, Rules{NamePrefix: "Squad"})
	if name := alloc.CreateTeam(); name != "Squad 1" {
		t.Fatalf("CreateTeam() = %q, want Squad 1", name)
	}
}

func TestAssignCapacity(t *testing.T) {
	store, alloc := newTestAllocator(Team{Name: "Team 1", Track: TrackUnassigned})
	for i := 0; i < DefaultCapacity; i++ {
		if err := alloc.Assign("Team 1", fmt.Sprintf("p%d@x", i)); err != nil {
			t.Fatalf("assign %d: %v", i, err)
		}
	}
	err := alloc.Assign("Team 1", "sixth@x")
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("sixth assign err = %v, want ErrCapacityExceeded", err)
	}
	team, _ := store.Team("Team 1")
	if team.Len() != DefaultCapacity {
		t.Fatalf("team size = %d, want %d", team.Len(), DefaultCapacity)
	}
	if _, ok := store.TeamOf("sixth@x"); ok {
		t.Fatalf("rejected email must not be assigned")
	}
}

func TestAssignHonoursConfiguredCapacity(t *testing.T) {
	store := NewStore(State{Teams: NewTeamSet(Team{Name: "Team 1"})})
	alloc := NewAllocator(store, Rules{Capacity: 2})
	_ = alloc.Assign("Team 1", "a@x")
	_ = alloc.Assign("Team 1", "b@x")
	if err := alloc.Assign("Team 1", "c@x"); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
}

func TestAssignSingleTeam(t *testing.T) {
	_, alloc := newTestAllocator(Team{Name: "Team 1"}, Team{Name: "Team 2"})
	if err := alloc.Assign("Team 1", "e@x"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	for _, target := range []string{"Team 1", "Team 2"} {
		if err := alloc.Assign(target, "e@x"); !errors.Is(err, ErrAlreadyAssigned) {
			t.Fatalf("assign to %s err = %v, want ErrAlreadyAssigned", target, err)
		}
	}
}

func TestAssignMissingTeam(t *testing.T) {
	_, alloc := newTestAllocator()
	if err := alloc.Assign("Team 9", "e@x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAssignKeepsOrder(t *testing.T) {
	store, alloc := newTestAllocator(Team{Name: "Team 1"})
	for _, email := range []string{"c@x", "a@x", "b@x"} {
		if err := alloc.Assign("Team 1", email); err != nil {
			t.Fatalf("assign %s: %v", email, err)
		}
	}
	team, _ := store.Team("Team 1")
	want := []string{"c@x", "a@x", "b@x"}
	for i := range want {
		if team.Members[i] != want[i] {
			t.Fatalf("members = %v, want %v", team.Members, want)
		}
	}
}

func TestUnassign(t *testing.T) {
	store, alloc := newTestAllocator(Team{Name: "Team 1", Members: []string{"a@x", "b@x"}})
	if err := alloc.Unassign("Team 1", "a@x"); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	team, _ := store.Team("Team 1")
	if team.Len() != 1 || team.Members[0] != "b@x" {
		t.Fatalf("members = %v, want [b@x]", team.Members)
	}
	if err := alloc.Unassign("Team 1", "a@x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second unassign err = %v, want ErrNotFound", err)
	}
	if err := alloc.Unassign("Team 7", "b@x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing team err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTeamKeepsParticipants(t *testing.T) {
	store, alloc := newTestAllocator(Team{Name: "Team 1", Members: []string{"a@x"}})
	store.AddParticipants([]Participant{{FieldEmail: "a@x"}})
	if err := alloc.DeleteTeam("Team 1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.Team("Team 1"); ok {
		t.Fatalf("team still present after delete")
	}
	if _, ok := store.FindParticipant("a@x"); !ok {
		t.Fatalf("participant removed together with team")
	}
	if _, ok := store.TeamOf("a@x"); ok {
		t.Fatalf("participant still assigned after team delete")
	}
	if err := alloc.DeleteTeam("Team 1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSetTrack(t *testing.T) {
	store, alloc := newTestAllocator(Team{Name: "Team 1", Track: TrackUnassigned})
	if err := alloc.SetTrack("Team 1", TrackML); err != nil {
		t.Fatalf("set track: %v", err)
	}
	if err := alloc.SetTrack("Team 1", TrackML); err != nil {
		t.Fatalf("repeat set track: %v", err)
	}
	team, _ := store.Team("Team 1")
	if team.Track != TrackML {
		t.Fatalf("track = %q, want ML", team.Track)
	}
	if err := alloc.SetTrack("Team 1", Track("Web3")); !errors.Is(err, ErrInvalidTrack) {
		t.Fatalf("invalid track err = %v, want ErrInvalidTrack", err)
	}
	if err := alloc.SetTrack("Team 2", TrackML); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing team err = %v, want ErrNotFound", err)
	}
}

func TestAvailableAndSortedTeams(t *testing.T) {
	full := Team{Name: "Team 2", Members: []string{"1", "2", "3", "4", "5"}}
	_, alloc := newTestAllocator(
		Team{Name: "Team 10"},
		full,
		Team{Name: "Alpha"},
		Team{Name: "Team 1"},
	)
	available := alloc.AvailableTeams()
	if len(available) != 3 {
		t.Fatalf("available = %v, want 3 teams", available)
	}
	for _, name := range available {
		if name == "Team 2" {
			t.Fatalf("full team offered as available")
		}
	}
	var names []string
	for _, team := range alloc.SortedTeams() {
		names = append(names, team.Name)
	}
	want := []string{"Team 1", "Team 2", "Team 10", "Alpha"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", names, want)
		}
	}
}
