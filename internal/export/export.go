// Package export flattens teams into one row per (team, member) pair for
// the organisers' spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/thecola13/team-maker/internal/roster"
)

// DefaultFileName is the file name offered for downloads.
const DefaultFileName = "hackathon_teams.csv"

const unknownTrack = "Unknown"

// Row is one exported line. The csv tags are the header.
type Row struct {
	TeamName string `csv:"Team Name"`
	Track    string `csv:"Track"`
	FullName string `csv:"Full Name"`
	Email    string `csv:"Email"`
	Phone    string `csv:"Phone"`
}

// Rows emits one row per member, teams in the given order and members in
// assignment order. Members without a participant record get empty name and
// phone. Teams without members produce no rows.
func Rows(teams []roster.Team, participants []roster.Participant) []Row {
	byEmail := make(map[string]roster.Participant, len(participants))
	for _, p := range participants {
		email := p.Email()
		if _, seen := byEmail[email]; !seen {
			byEmail[email] = p
		}
	}
	rows := []Row{}
	for _, team := range teams {
		track := string(team.Track)
		if track == "" {
			track = unknownTrack
		}
		for _, email := range team.Members {
			p := byEmail[email]
			rows = append(rows, Row{
				TeamName: team.Name,
				Track:    track,
				FullName: p.Get(roster.FieldFullName),
				Email:    email,
				Phone:    p.Get(roster.FieldPhone),
			})
		}
	}
	return rows
}

// WriteCSV writes the header and rows as UTF-8 CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}
