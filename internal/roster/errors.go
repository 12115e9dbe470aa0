package roster

import "errors"

var (
	// ErrNotFound is returned when a team or member reference is missing.
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded is returned when a team is already full.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrAlreadyAssigned is returned when an email is already on a team.
	ErrAlreadyAssigned = errors.New("already assigned")
	// ErrInvalidTrack is returned for a track outside the configured enumeration.
	ErrInvalidTrack = errors.New("invalid track")
)
