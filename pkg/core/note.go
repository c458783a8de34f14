package core

import "time"

// Note is the central entity of the domain.
// It is one immutable text entry, identified by the file name that encodes
// its creation timestamp.
type Note struct {
	ID      string
	Created time.Time
	// Version is 0 for the plain timestamp name and N for the "_vN" suffix
	// the namer appends when several notes land in the same second.
	Version int
	Content string
}

// Before reports whether n sorts before other chronologically.
// Notes from the same second are ordered by their version suffix.
func (n Note) Before(other Note) bool {
	if !n.Created.Equal(other.Created) {
		return n.Created.Before(other.Created)
	}
	if n.Version != other.Version {
		return n.Version < other.Version
	}
	return n.ID < other.ID
}
