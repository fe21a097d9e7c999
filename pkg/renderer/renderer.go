package renderer

import (
	"context"

	"github.com/yaobinwen/netplan/pkg/netplanconfig"
)

// Renderer turns a format document into a bundle of files, generic over the document type.
type Renderer[T any] interface {
	Render(ctx context.Context, doc T, opts netplanconfig.RenderOptions) (*netplanconfig.Bundle, error)
}

// Parser turns the text held in a bundle into a format document.
type Parser[T any] interface {
	Parse(ctx context.Context, bundle *netplanconfig.Bundle, opts netplanconfig.ParseOptions) (T, error)
}
