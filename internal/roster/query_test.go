package roster

import "testing"

func TestSearchMatchesFieldsIgnoringCase(t *testing.T) {
	people := []Participant{
		{FieldEmail: "a@x", FieldFullName: "Tommaso Giacomello", FieldDegreeProgram: "BEMACS"},
		{FieldEmail: "b@x", FieldFullName: "Ada", FieldMotivation: "I love MACHINE learning"},
		{FieldEmail: "c@x", FieldFullName: "Bo", FieldFirstTrack: "Entrepreneurship"},
		{FieldEmail: "machine@x", FieldFullName: "Cy"},
	}
	if got := Search(people, "machine"); len(got) != 1 || got[0].Email() != "b@x" {
		t.Fatalf("Search(machine) = %v, want only b@x (email is not searched)", got)
	}
	if got := Search(people, "bemacs"); len(got) != 1 || got[0].Email() != "a@x" {
		t.Fatalf("Search(bemacs) = %v", got)
	}
	if got := Search(people, "ENTRE"); len(got) != 1 || got[0].Email() != "c@x" {
		t.Fatalf("Search(ENTRE) = %v", got)
	}
	if got := Search(people, "  "); len(got) != len(people) {
		t.Fatalf("blank search returned %d, want all", len(got))
	}
}

func TestFilterStatus(t *testing.T) {
	people := []Participant{{FieldEmail: "a@x"}, {FieldEmail: "b@x"}, {FieldEmail: "c@x"}}
	teams := []Team{{Name: "Team 1", Members: []string{"b@x", "ghost@x"}}}
	if got := FilterStatus(people, teams, StatusInTeam); len(got) != 1 || got[0].Email() != "b@x" {
		t.Fatalf("in team = %v", got)
	}
	if got := FilterStatus(people, teams, StatusNoTeam); len(got) != 2 {
		t.Fatalf("no team = %v", got)
	}
	if got := FilterStatus(people, teams, StatusAll); len(got) != 3 {
		t.Fatalf("all = %v", got)
	}
	if NextStatus(StatusNoTeam) != StatusAll {
		t.Fatalf("status cycle must wrap")
	}
}

func TestNextTrackWraps(t *testing.T) {
	rules := DefaultRules()
	if got := rules.NextTrack(TrackEntrepreneurship); got != TrackUnassigned {
		t.Fatalf("NextTrack(Entrepreneurship) = %q", got)
	}
	if got := rules.NextTrack(Track("legacy")); got != TrackUnassigned {
		t.Fatalf("NextTrack(unknown) = %q", got)
	}
}
