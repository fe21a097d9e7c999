package netplanconfig

import (
	"context"

	"google.golang.org/protobuf/proto"
)

// Backend defines the conversion interface every native profile format implements.
// A backend turns its native per-connection profile into netplan YAML, keeping the
// settings it cannot express natively as passthrough.
type Backend interface {
	// Name returns the backend identifier (e.g., "NetworkManager").
	Name() string

	// ToNetplan converts a native profile bundle into a bundle holding exactly one
	// netplan YAML document.
	ToNetplan(ctx context.Context, bundle *Bundle, opts RenderOptions) (*Bundle, error)

	// Describe parses a native profile bundle and returns its canonical device
	// definition as a proto message, without rendering it.
	Describe(ctx context.Context, bundle *Bundle, opts ParseOptions) (proto.Message, error)
}
