package roster

import "strings"

// Track is the category a team competes in.
type Track string

const (
	TrackUnassigned       Track = "Unassigned"
	TrackML               Track = "ML"
	TrackEntrepreneurship Track = "Entrepreneurship"
)

const (
	// DefaultCapacity is the maximum number of members per team.
	DefaultCapacity = 5

	defaultNamePrefix = "Team"
)

// Rules holds the business constants of the event. They come from
// configuration so the allocator never hardcodes them.
type Rules struct {
	Capacity     int
	Tracks       []Track
	DefaultTrack Track
	NamePrefix   string
}

// DefaultRules returns the rules of the hackathon the tool was built for.
func DefaultRules() Rules {
	return Rules{
		Capacity:     DefaultCapacity,
		Tracks:       []Track{TrackUnassigned, TrackML, TrackEntrepreneurship},
		DefaultTrack: TrackUnassigned,
		NamePrefix:   defaultNamePrefix,
	}
}

func (r Rules) withDefaults() Rules {
	defaults := DefaultRules()
	if r.Capacity <= 0 {
		r.Capacity = defaults.Capacity
	}
	if len(r.Tracks) == 0 {
		r.Tracks = defaults.Tracks
	}
	if strings.TrimSpace(string(r.DefaultTrack)) == "" {
		r.DefaultTrack = r.Tracks[0]
	}
	if strings.TrimSpace(r.NamePrefix) == "" {
		r.NamePrefix = defaults.NamePrefix
	}
	return r
}

// ValidTrack reports whether track belongs to the configured enumeration.
// The comparison is exact: tracks are labels, not free text.
func (r Rules) ValidTrack(track Track) bool {
	for _, candidate := range r.Tracks {
		if candidate == track {
			return true
		}
	}
	return false
}

// NextTrack returns the track after current in the enumeration, wrapping
// around. Unknown tracks move to the first entry.
func (r Rules) NextTrack(current Track) Track {
	if len(r.Tracks) == 0 {
		return current
	}
	for i, candidate := range r.Tracks {
		if candidate == current {
			return r.Tracks[(i+1)%len(r.Tracks)]
		}
	}
	return r.Tracks[0]
}
