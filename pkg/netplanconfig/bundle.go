package netplanconfig

import (
	"time"
)

// Package represents a single configuration document.
// For netplan output it is one YAML file under the config directory
// (e.g., "90-NM-<uuid>.yaml"); for keyfile input it is one connection profile.
type Package struct {
	Name    string // File name (e.g., "90-NM-<uuid>.yaml")
	Content []byte // Document content
}

// Metadata stores information about how and when the bundle was generated.
type Metadata struct {
	Format    string            // Format identifier ("netplan", "keyfile")
	Backend   string            // Backend name that generated this bundle
	Generated time.Time         // Timestamp when the bundle was created
	Custom    map[string]string // Extensible metadata (e.g., "id", "uuid", "group")
}

// Bundle represents the complete output of a conversion.
type Bundle struct {
	Packages []Package
	Metadata Metadata
}

// NewBundle creates an empty Bundle with initialized metadata.
// The Generated timestamp is set to the current time; it is never part of the
// rendered content.
func NewBundle(format, backend string) *Bundle {
	return &Bundle{
		Packages: make([]Package, 0),
		Metadata: Metadata{
			Format:    format,
			Backend:   backend,
			Generated: time.Now(),
			Custom:    make(map[string]string),
		},
	}
}

// KeyfileBundle wraps raw keyfile text as a single-package input bundle.
func KeyfileBundle(name string, content []byte) *Bundle {
	b := NewBundle("keyfile", "")
	b.Packages = append(b.Packages, Package{Name: name, Content: content})
	return b
}

// Main returns the first package of the bundle.
func (b *Bundle) Main() (Package, bool) {
	if b == nil || len(b.Packages) == 0 {
		return Package{}, false
	}
	return b.Packages[0], true
}
