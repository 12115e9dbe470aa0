// Package session runs one editing session over the roster: each command
// mutates the in-memory store and then saves the whole state. If the save
// fails the store is rolled back to the last saved snapshot.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/thecola13/team-maker/internal/export"
	"github.com/thecola13/team-maker/internal/importer"
	"github.com/thecola13/team-maker/internal/logbook"
	"github.com/thecola13/team-maker/internal/persistence"
	"github.com/thecola13/team-maker/internal/roster"
)

// Session owns the store for one editor.
type Session struct {
	store   *roster.Store
	alloc   *roster.Allocator
	gateway *persistence.Gateway
	journal *logbook.Logbook
	newID   func() string
}

// Option customizes a Session during construction.
type Option func(*Session)

// WithJournal records every command in the activity logbook.
func WithJournal(lb *logbook.Logbook) Option {
	return func(s *Session) {
		s.journal = lb
	}
}

// WithIDGenerator overrides how import batch ids are generated.
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// ImportResult summarises one CSV import.
type ImportResult struct {
	BatchID  string
	Read     int
	Imported int
	Skipped  int
}

// Open loads the state document and starts a session over it.
func Open(gateway *persistence.Gateway, rules roster.Rules, opts ...Option) (*Session, error) {
	state, err := gateway.Load()
	if err != nil {
		return nil, err
	}
	store := roster.NewStore(state)
	s := &Session{
		store:   store,
		alloc:   roster.NewAllocator(store, rules),
		gateway: gateway,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.info("Session opened · %d participants, %d teams (%s)", store.ParticipantCount(), len(store.Teams()), gateway.Path())
	return s, nil
}

// Store exposes the read side of the roster.
func (s *Session) Store() *roster.Store {
	return s.store
}

// Allocator exposes the read-side team queries.
func (s *Session) Allocator() *roster.Allocator {
	return s.alloc
}

// Rules returns the effective team rules.
func (s *Session) Rules() roster.Rules {
	return s.alloc.Rules()
}

// Journal returns the activity logbook, which may be nil.
func (s *Session) Journal() *logbook.Logbook {
	return s.journal
}

// Import reads a CSV batch, keeps the participants not already on the
// roster, appends them and saves. The file is fully parsed and deduplicated
// before the store is touched; an empty result is not saved.
func (s *Session) Import(r io.Reader) (ImportResult, error) {
	result := ImportResult{BatchID: s.newID()}
	batch, err := importer.ReadCSV(r)
	if err != nil {
		s.fail(err, "import %s", result.BatchID)
		return result, err
	}
	fresh := importer.Dedup(batch.Records, s.store.Participants())
	result.Read = len(batch.Records)
	result.Imported = len(fresh)
	result.Skipped = result.Read - result.Imported
	if len(fresh) == 0 {
		s.warn("Import %s: no new participants (%d rows read)", result.BatchID, result.Read)
		return result, nil
	}
	err = s.apply(func() error {
		s.store.AddParticipants(fresh)
		return nil
	})
	if err != nil {
		s.fail(err, "import %s", result.BatchID)
		return result, err
	}
	s.info("Import %s: %d new participants, %d skipped", result.BatchID, result.Imported, result.Skipped)
	return result, nil
}

// ImportFile imports the CSV at path.
func (s *Session) ImportFile(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("session: open %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(f)
}

// CreateTeam adds the next free "Team N" and saves.
func (s *Session) CreateTeam() (string, error) {
	var name string
	err := s.apply(func() error {
		name = s.alloc.CreateTeam()
		return nil
	})
	if err != nil {
		s.fail(err, "create team")
		return "", err
	}
	s.info("Created %s", name)
	return name, nil
}

// DeleteTeam removes a team and saves. Its members stay on the roster.
func (s *Session) DeleteTeam(name string) error {
	if err := s.apply(func() error { return s.alloc.DeleteTeam(name) }); err != nil {
		s.fail(err, "delete %s", name)
		return err
	}
	s.info("Deleted %s", name)
	return nil
}

// Assign puts email on team and saves.
func (s *Session) Assign(team, email string) error {
	if err := s.apply(func() error { return s.alloc.Assign(team, email) }); err != nil {
		s.fail(err, "assign %s to %s", email, team)
		return err
	}
	s.info("Assigned %s to %s", email, team)
	return nil
}

// Unassign removes email from team and saves.
func (s *Session) Unassign(team, email string) error {
	if err := s.apply(func() error { return s.alloc.Unassign(team, email) }); err != nil {
		s.fail(err, "remove %s from %s", email, team)
		return err
	}
	s.info("Removed %s from %s", email, team)
	return nil
}

// SetTrack changes a team's track and saves.
func (s *Session) SetTrack(team string, track roster.Track) error {
	if err := s.apply(func() error { return s.alloc.SetTrack(team, track) }); err != nil {
		s.fail(err, "set track of %s to %s", team, track)
		return err
	}
	s.info("%s track set to %s", team, track)
	return nil
}

// Reset clears the whole roster and saves.
func (s *Session) Reset() error {
	if err := s.apply(func() error {
		s.store.ResetAll()
		return nil
	}); err != nil {
		s.fail(err, "reset")
		return err
	}
	s.warn("Roster reset")
	return nil
}

// Save writes the current state without changing it.
func (s *Session) Save() error {
	if err := s.gateway.Save(s.store.Snapshot()); err != nil {
		s.fail(err, "save")
		return err
	}
	s.info("State saved to %s", s.gateway.Path())
	return nil
}

// ExportRows projects the current teams into export rows.
func (s *Session) ExportRows() []export.Row {
	return export.Rows(s.store.Teams(), s.store.Participants())
}

// Export writes the teams CSV and returns the number of data rows.
func (s *Session) Export(w io.Writer) (int, error) {
	rows := s.ExportRows()
	if err := export.WriteCSV(w, rows); err != nil {
		s.fail(err, "export")
		return 0, err
	}
	return len(rows), nil
}

// ExportFile writes the teams CSV to path, creating parent directories.
func (s *Session) ExportFile(path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("session: ensure export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("session: create %s: %w", path, err)
	}
	n, err := s.Export(f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("session: close %s: %w", path, closeErr)
	}
	if err != nil {
		return 0, err
	}
	s.info("Exported %d rows to %s", n, path)
	return n, nil
}

// apply runs one mutation as a transaction: on a rule violation nothing is
// saved, and on a save failure the store goes back to the snapshot.
func (s *Session) apply(mutate func() error) error {
	snapshot := s.store.Snapshot()
	if err := mutate(); err != nil {
		s.store.Restore(snapshot)
		return err
	}
	if err := s.gateway.Save(s.store.Snapshot()); err != nil {
		s.store.Restore(snapshot)
		return err
	}
	return nil
}

// Label names the failure kind of err for display.
func Label(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, roster.ErrNotFound):
		return "NotFound"
	case errors.Is(err, roster.ErrCapacityExceeded):
		return "CapacityExceeded"
	case errors.Is(err, roster.ErrAlreadyAssigned):
		return "AlreadyAssigned"
	case errors.Is(err, roster.ErrInvalidTrack):
		return "InvalidTrack"
	case errors.Is(err, importer.ErrMalformedImport):
		return "MalformedImport"
	case errors.Is(err, persistence.ErrCorruptState):
		return "CorruptState"
	default:
		return "Error"
	}
}

func (s *Session) info(format string, args ...any) {
	if s.journal != nil {
		s.journal.Info(format, args...)
	}
}

func (s *Session) warn(format string, args ...any) {
	if s.journal != nil {
		s.journal.Warn(format, args...)
	}
}

func (s *Session) fail(err error, format string, args ...any) {
	if s.journal == nil {
		return
	}
	s.journal.Error("%s failed [%s]: %v", fmt.Sprintf(format, args...), Label(err), err)
}
