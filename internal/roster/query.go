package roster

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Status is the membership filter offered to the presentation layer.
type Status string

const (
	StatusAll    Status = "All"
	StatusInTeam Status = "In Team"
	StatusNoTeam Status = "No Team"
)

// Statuses lists the filter values in display order.
var Statuses = []Status{StatusAll, StatusInTeam, StatusNoTeam}

var searchFields = []string{FieldFullName, FieldDegreeProgram, FieldMotivation, FieldFirstTrack}

// Search keeps participants whose name, degree program, motivation or first
// track contains term, ignoring case. An empty term keeps everything.
func Search(participants []Participant, term string) []Participant {
	if strings.TrimSpace(term) == "" {
		return participants
	}
	fold := cases.Fold()
	needle := fold.String(term)
	out := make([]Participant, 0, len(participants))
	for _, p := range participants {
		for _, field := range searchFields {
			if strings.Contains(fold.String(p[field]), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// AssignedEmails returns the set of emails listed on any team.
func AssignedEmails(teams []Team) map[string]struct{} {
	set := map[string]struct{}{}
	for _, team := range teams {
		for _, email := range team.Members {
			set[email] = struct{}{}
		}
	}
	return set
}

// FilterStatus keeps participants matching the membership status.
func FilterStatus(participants []Participant, teams []Team, status Status) []Participant {
	if status == StatusAll || status == "" {
		return participants
	}
	assigned := AssignedEmails(teams)
	out := make([]Participant, 0, len(participants))
	for _, p := range participants {
		_, inTeam := assigned[p.Email()]
		if inTeam == (status == StatusInTeam) {
			out = append(out, p)
		}
	}
	return out
}

// NextStatus cycles All -> In Team -> No Team -> All.
func NextStatus(current Status) Status {
	for i, s := range Statuses {
		if s == current {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusAll
}

// AvailableTeams returns the names of teams that still have room, in
// iteration order.
func (a *Allocator) AvailableTeams() []string {
	var out []string
	for _, team := range a.store.Teams() {
		if team.Len() < a.rules.Capacity {
			out = append(out, team.Name)
		}
	}
	return out
}

// SortedTeams orders teams naturally: "<prefix> <n>" names by n first, then
// every other name alphabetically.
func (a *Allocator) SortedTeams() []Team {
	teams := a.store.Teams()
	prefix := a.rules.NamePrefix + " "
	number := func(name string) (int, bool) {
		if !strings.HasPrefix(name, prefix) {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		return n, err == nil
	}
	sort.SliceStable(teams, func(i, j int) bool {
		ni, iok := number(teams[i].Name)
		nj, jok := number(teams[j].Name)
		switch {
		case iok && jok:
			return ni < nj
		case iok != jok:
			return iok
		default:
			return teams[i].Name < teams[j].Name
		}
	})
	return teams
}
