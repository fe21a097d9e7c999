package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Action names what happened to one document on disk.
type Action string

const (
	ActionWritten   Action = "written"
	ActionRewritten Action = "rewritten"
	ActionRemoved   Action = "removed"
)

// VersionedDocument records the state of a document file at one point in time.
type VersionedDocument struct {
	Path      string
	Checksum  string
	Timestamp time.Time
}

// Change describes one document transition. Base is nil for newly written
// documents and Target is nil for removed ones.
type Change struct {
	Action Action
	Base   *VersionedDocument
	Target *VersionedDocument
}

// Path returns the path of the document the change applies to.
func (c Change) Path() string {
	if c.Target != nil {
		return c.Target.Path
	}
	if c.Base != nil {
		return c.Base.Path
	}
	return ""
}

// ChangeSet groups the document changes of one operation.
type ChangeSet struct {
	ID      string // Definition id the operation targeted
	Changes []Change
	Diff    *DiffResult
}

// DiffResult lists definitions by "<group>.<id>" together with the document
// path they were added to or removed from.
type DiffResult struct {
	Added   map[string]string
	Removed map[string]string
}

// NewChangeSet creates an empty change set for id.
func NewChangeSet(id string) *ChangeSet {
	return &ChangeSet{
		ID: id,
		Diff: &DiffResult{
			Added:   make(map[string]string),
			Removed: make(map[string]string),
		},
	}
}

// Snapshot versions content stored at path.
func Snapshot(path string, content []byte) *VersionedDocument {
	return &VersionedDocument{
		Path:      path,
		Checksum:  Checksum(content),
		Timestamp: time.Now(),
	}
}

// Checksum is the hex SHA-256 of content.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Add records a change.
func (cs *ChangeSet) Add(c Change) {
	cs.Changes = append(cs.Changes, c)
}

// Paths returns the paths touched by the change set in recording order.
func (cs *ChangeSet) Paths() []string {
	if cs == nil {
		return nil
	}
	paths := make([]string, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		paths = append(paths, c.Path())
	}
	return paths
}
