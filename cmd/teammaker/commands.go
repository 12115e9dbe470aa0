package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/thecola13/team-maker/internal/roster"
)

var errUsage = errors.New("invalid arguments")

// runCommand dispatches one CLI command against the open session.
func runCommand(env *environment, args []string, out io.Writer) error {
	s := env.session
	name, rest := args[0], args[1:]
	switch name {
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("%w: import FILE", errUsage)
		}
		res, err := s.ImportFile(rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d new participants (%d read, %d skipped).\n", res.Imported, res.Read, res.Skipped)
	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		path := fs.String("o", env.cfg.ExportPath(), "output CSV file")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		n, err := s.ExportFile(*path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d rows to %s\n", n, *path)
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		term := fs.String("q", "", "search term")
		status := fs.String("status", "all", "all, in or none")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		filter, err := parseStatus(*status)
		if err != nil {
			return err
		}
		printParticipants(out, s.Store(), filter, *term)
	case "teams":
		printTeams(out, s.Store(), s.Allocator(), s.Rules().Capacity)
	case "create-team":
		team, err := s.CreateTeam()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created %s\n", team)
	case "delete-team":
		if len(rest) != 1 {
			return fmt.Errorf("%w: delete-team NAME", errUsage)
		}
		if err := s.DeleteTeam(rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %s\n", rest[0])
	case "assign":
		if len(rest) != 2 {
			return fmt.Errorf("%w: assign TEAM EMAIL", errUsage)
		}
		if err := s.Assign(rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s to %s\n", rest[1], rest[0])
	case "unassign":
		if len(rest) != 2 {
			return fmt.Errorf("%w: unassign TEAM EMAIL", errUsage)
		}
		if err := s.Unassign(rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %s from %s\n", rest[1], rest[0])
	case "track":
		if len(rest) != 2 {
			return fmt.Errorf("%w: track TEAM TRACK", errUsage)
		}
		track := matchTrack(s.Rules(), rest[1])
		if err := s.SetTrack(rest[0], track); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s is now on the %s track\n", rest[0], track)
	case "reset":
		fs := flag.NewFlagSet("reset", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		yes := fs.Bool("yes", false, "confirm deleting every participant and team")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		if !*yes {
			return fmt.Errorf("%w: reset deletes all data, pass -yes to confirm", errUsage)
		}
		if err := s.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Roster reset.")
	case "save":
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, "State saved!")
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	return nil
}

func parseStatus(value string) (roster.Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return roster.StatusAll, nil
	case "in":
		return roster.StatusInTeam, nil
	case "none":
		return roster.StatusNoTeam, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", errUsage, value)
}

// matchTrack maps user input onto a configured track ignoring case. Unknown
// values pass through so the allocator reports them.
func matchTrack(rules roster.Rules, value string) roster.Track {
	for _, track := range rules.Tracks {
		if strings.EqualFold(string(track), strings.TrimSpace(value)) {
			return track
		}
	}
	return roster.Track(value)
}

func printParticipants(out io.Writer, store *roster.Store, status roster.Status, term string) {
	found := roster.Search(store.Participants(), term)
	found = roster.FilterStatus(found, store.Teams(), status)
	for _, p := range found {
		team, ok := store.TeamOf(p.Email())
		if !ok {
			team = "-"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", p.FullName(), p.Email(), p.Get(roster.FieldDegreeProgram), team)
	}
	fmt.Fprintf(out, "%d of %d participants\n", len(found), store.ParticipantCount())
}

func printTeams(out io.Writer, store *roster.Store, alloc *roster.Allocator, capacity int) {
	teams := alloc.SortedTeams()
	if len(teams) == 0 {
		fmt.Fprintln(out, "No teams.")
		return
	}
	for _, team := range teams {
		fmt.Fprintf(out, "%s [%s] %d/%d\n", team.Name, team.Track, team.Len(), capacity)
		for _, email := range team.Members {
			if p, ok := store.FindParticipant(email); ok {
				fmt.Fprintf(out, "  %s <%s>\n", p.FullName(), email)
			} else {
				fmt.Fprintf(out, "  %s (not on roster)\n", email)
			}
		}
	}
}
