// Package nmfile maps NetworkManager connection profile file names generated by
// netplan back to the netplan definition id they were rendered from.
package nmfile

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultConnectionsDir is where NetworkManager keeps runtime profiles.
	DefaultConnectionsDir = "/run/NetworkManager/system-connections"

	// Prefix starts every profile file name netplan generates.
	Prefix = "netplan-"
	// Extension ends every profile file name netplan generates.
	Extension = ".nmconnection"
)

// Resolver derives definition ids from profile paths. Dir restricts
// resolution to profiles stored directly in that directory; an empty Dir
// accepts any directory.
type Resolver struct {
	Dir string
}

// NewResolver returns a Resolver bound to dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir}
}

var defaultResolver = NewResolver(DefaultConnectionsDir)

// ID resolves a profile path in the default connections directory.
func ID(path string) (string, bool) {
	return defaultResolver.ID(path)
}

// WifiID resolves a wifi profile path in the default connections directory.
func WifiID(path, ssid string) (string, bool) {
	return defaultResolver.WifiID(path, ssid)
}

// ID returns the id embedded in "netplan-<id>.nmconnection". ok is false when
// the path does not follow that pattern.
func (r *Resolver) ID(path string) (string, bool) {
	return r.resolve(path, Extension)
}

// WifiID returns the id embedded in "netplan-<id>-<ssid>.nmconnection", where
// ssid appears URI-escaped in the file name.
func (r *Resolver) WifiID(path, ssid string) (string, bool) {
	return r.resolve(path, "-"+EscapeSSID(ssid)+Extension)
}

func (r *Resolver) resolve(path, suffix string) (string, bool) {
	if path == "" {
		return "", false
	}
	if r != nil && r.Dir != "" && filepath.Dir(path) != filepath.Clean(r.Dir) {
		return "", false
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, Prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(base, Prefix)
	if !strings.HasSuffix(rest, suffix) {
		return "", false
	}
	id := strings.TrimSuffix(rest, suffix)
	if id == "" {
		return "", false
	}
	return id, true
}

// EscapeSSID percent-encodes an SSID the way NetworkManager profile names do:
// unreserved ASCII and valid UTF-8 sequences are kept, every other byte
// becomes %XX.
func EscapeSSID(ssid string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(ssid); {
		c := ssid[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(ssid[i:])
			if r != utf8.RuneError || size > 1 {
				b.WriteString(ssid[i : i+size])
				i += size
				continue
			}
		} else if isUnreserved(c) {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
		i++
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
