package importer

import "github.com/thecola13/team-maker/internal/roster"

// Dedup returns the incoming records that are new to existing, normalized and
// in input order. Records with an empty email are dropped; within the batch the
// first record for an email wins. It never mutates its inputs.
func Dedup(incoming []RawRecord, existing []roster.Participant) []roster.Participant {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, p := range existing {
		if email := p.Email(); email != "" {
			seen[email] = struct{}{}
		}
	}
	accepted := make([]roster.Participant, 0, len(incoming))
	for _, raw := range incoming {
		record := Normalize(raw)
		email := record.Email()
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		accepted = append(accepted, record)
	}
	return accepted
}
