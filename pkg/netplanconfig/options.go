package netplanconfig

import "time"

// RenderOptions controls the keyfile to netplan conversion.
type RenderOptions struct {
	ExistingID string        // Reuse this netdef id instead of "NM-<uuid>" (rename-in-place)
	Timeout    time.Duration // Maximum time allowed for the conversion, zero means none
}

// ParseOptions controls keyfile parsing and extraction.
type ParseOptions struct {
	ExistingID         string            // Same as RenderOptions.ExistingID
	AllowDuplicateKeys bool              // Last value wins instead of failing on a repeated key
	SourceMetadata     map[string]string // Metadata about the source (path, origin, ...)
}

// ParseOptions derives the parse options implied by a render request.
func (o RenderOptions) ParseOptions() ParseOptions {
	return ParseOptions{ExistingID: o.ExistingID}
}
