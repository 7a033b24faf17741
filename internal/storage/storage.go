// Package storage persists the opaque store snapshot blob. Two sinks are
// provided: a plain JSON file and a local SQLite database. The store does
// not care which one it talks to.
package storage

// Sink is the persistence collaborator consumed by the store. Save is an
// all-or-nothing overwrite of the prior snapshot.
type Sink interface {
	// Load returns the last saved snapshot. ok is false when nothing has
	// been saved yet.
	Load() (blob []byte, ok bool, err error)
	Save(blob []byte) error
}
