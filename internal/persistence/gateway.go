// Package persistence reads and writes the roster state document.
//
// The document is a JSON object with a participants array and a teams
// object. Older documents stored each team as a bare array of member emails;
// Load migrates those in memory and the next Save writes the current shape.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/thecola13/team-maker/internal/roster"
)

// ErrCorruptState is returned when the document exists but cannot be used.
// An absent document is not an error.
var ErrCorruptState = errors.New("corrupt state document")

// Gateway loads and saves one state document.
type Gateway struct {
	path         string
	defaultTrack roster.Track
	perm         fs.FileMode
}

// Option customizes a Gateway during construction.
type Option func(*Gateway)

// WithDefaultTrack sets the track given to teams stored without one.
func WithDefaultTrack(track roster.Track) Option {
	return func(g *Gateway) {
		if track != "" {
			g.defaultTrack = track
		}
	}
}

// WithFileMode overrides the permissions of the written document.
func WithFileMode(perm fs.FileMode) Option {
	return func(g *Gateway) {
		if perm != 0 {
			g.perm = perm
		}
	}
}

// New builds a gateway for the document at path.
func New(path string, opts ...Option) *Gateway {
	g := &Gateway{
		path:         path,
		defaultTrack: roster.TrackUnassigned,
		perm:         0o644,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Path returns the document location.
func (g *Gateway) Path() string {
	return g.path
}

// Load reads the document. A missing file yields an empty state.
func (g *Gateway) Load() (roster.State, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return roster.State{Participants: []roster.Participant{}}, nil
		}
		return roster.State{}, fmt.Errorf("persistence: read %s: %w", g.path, err)
	}
	state, err := Decode(data, g.defaultTrack)
	if err != nil {
		return roster.State{}, fmt.Errorf("persistence: %s: %w", g.path, err)
	}
	return state, nil
}

// Save replaces the document with state. The bytes go to a temporary file in
// the same directory which is then renamed over the old document, so a crash
// leaves either the old or the new version on disk.
func (g *Gateway) Save(state roster.State) error {
	data, err := Encode(state)
	if err != nil {
		return fmt.Errorf("persistence: encode: %w", err)
	}
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persistence: ensure dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("persistence: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("persistence: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("persistence: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("persistence: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, g.perm); err != nil {
		cleanup()
		return fmt.Errorf("persistence: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, g.path); err != nil {
		cleanup()
		return fmt.Errorf("persistence: replace %s: %w", g.path, err)
	}
	return nil
}

type document struct {
	Participants []roster.Participant `json:"participants"`
	Teams        roster.TeamSet       `json:"teams"`
}

// Encode renders state in the current document shape.
func Encode(state roster.State) ([]byte, error) {
	doc := document{Participants: state.Participants, Teams: state.Teams}
	if doc.Participants == nil {
		doc.Participants = []roster.Participant{}
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a document, keeping the order of teams as written and
// migrating legacy teams to defaultTrack.
func Decode(data []byte, defaultTrack roster.Track) (roster.State, error) {
	if !gjson.ValidBytes(data) {
		return roster.State{}, fmt.Errorf("%w: invalid json", ErrCorruptState)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return roster.State{}, fmt.Errorf("%w: top level is not an object", ErrCorruptState)
	}
	participants, err := decodeParticipants(root.Get("participants"))
	if err != nil {
		return roster.State{}, err
	}
	teams, err := decodeTeams(root.Get("teams"), defaultTrack)
	if err != nil {
		return roster.State{}, err
	}
	return roster.State{Participants: participants, Teams: teams}, nil
}

func decodeParticipants(raw gjson.Result) ([]roster.Participant, error) {
	out := []roster.Participant{}
	if !raw.Exists() || raw.Type == gjson.Null {
		return out, nil
	}
	if !raw.IsArray() {
		return nil, fmt.Errorf("%w: participants is not an array", ErrCorruptState)
	}
	for i, item := range raw.Array() {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: participants[%d] is not an object", ErrCorruptState, i)
		}
		p := roster.Participant{}
		item.ForEach(func(key, value gjson.Result) bool {
			p[key.String()] = value.String()
			return true
		})
		out = append(out, p)
	}
	return out, nil
}

func decodeTeams(raw gjson.Result, defaultTrack roster.Track) (roster.TeamSet, error) {
	var teams roster.TeamSet
	if !raw.Exists() || raw.Type == gjson.Null {
		return teams, nil
	}
	if !raw.IsObject() {
		return teams, fmt.Errorf("%w: teams is not an object", ErrCorruptState)
	}
	var decodeErr error
	raw.ForEach(func(key, value gjson.Result) bool {
		team, err := decodeTeam(key.String(), value, defaultTrack)
		if err != nil {
			decodeErr = err
			return false
		}
		teams.Put(team)
		return true
	})
	if decodeErr != nil {
		return roster.TeamSet{}, decodeErr
	}
	return teams, nil
}

func decodeTeam(name string, value gjson.Result, defaultTrack roster.Track) (roster.Team, error) {
	team := roster.Team{Name: name, Members: []string{}, Track: defaultTrack}
	switch {
	case value.IsArray():
		// legacy shape: bare list of member emails
		team.Members = memberList(value)
	case value.IsObject():
		members := value.Get("members")
		if members.Exists() && members.Type != gjson.Null {
			if !members.IsArray() {
				return roster.Team{}, fmt.Errorf("%w: team %q members is not an array", ErrCorruptState, name)
			}
			team.Members = memberList(members)
		}
		if track := value.Get("track").String(); track != "" {
			team.Track = roster.Track(track)
		}
	default:
		return roster.Team{}, fmt.Errorf("%w: team %q is neither an object nor a member list", ErrCorruptState, name)
	}
	return team, nil
}

func memberList(value gjson.Result) []string {
	items := value.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
