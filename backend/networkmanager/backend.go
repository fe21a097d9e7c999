package networkmanager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"

	domain "github.com/yaobinwen/netplan/domain/networkmanager"
	"github.com/yaobinwen/netplan/pkg/ast/keyfile"
	"github.com/yaobinwen/netplan/pkg/ast/netplan"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
	"github.com/yaobinwen/netplan/pkg/renderer"
	keyfileparser "github.com/yaobinwen/netplan/pkg/renderer/keyfile"
	yamlrenderer "github.com/yaobinwen/netplan/pkg/renderer/netplan"
	"github.com/yaobinwen/netplan/pkg/store"
)

// Backend converts NetworkManager keyfile profiles into netplan YAML.
type Backend struct {
	renderer renderer.Renderer[*netplan.Document]
	parser   renderer.Parser[*keyfile.Document]
}

// New builds a Backend from a renderer and a parser.
func New(r renderer.Renderer[*netplan.Document], p renderer.Parser[*keyfile.Document]) *Backend {
	return &Backend{
		renderer: r,
		parser:   p,
	}
}

// Default returns a Backend using the keyfile parser and YAML renderer.
func Default() *Backend {
	return New(yamlrenderer.NewYAMLRenderer(), keyfileparser.NewParser())
}

// Name implements netplanconfig.Backend.
func (b *Backend) Name() string {
	return domain.RendererName
}

// Definition parses the main package of bundle and extracts its device
// definition.
func (b *Backend) Definition(ctx context.Context, bundle *netplanconfig.Bundle, opts netplanconfig.ParseOptions) (*domain.Definition, error) {
	doc, err := b.parser.Parse(ctx, bundle, opts)
	if err != nil {
		return nil, err
	}
	def, err := domain.FromKeyfile(doc, opts)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(def.NetworkManager.UUID); err != nil {
		slog.Warn("connection uuid is not RFC 4122 shaped", "uuid", def.NetworkManager.UUID, "error", err)
	}
	return def, nil
}

// ToNetplan implements netplanconfig.Backend. The result holds exactly one
// package named 90-NM-<uuid>.yaml.
func (b *Backend) ToNetplan(ctx context.Context, bundle *netplanconfig.Bundle, opts netplanconfig.RenderOptions) (*netplanconfig.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	def, err := b.Definition(ctx, bundle, opts.ParseOptions())
	if err != nil {
		return nil, err
	}
	doc, err := def.ToAST()
	if err != nil {
		return nil, err
	}
	out, err := b.renderer.Render(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	out.Metadata.Backend = b.Name()
	out.Metadata.Custom["id"] = def.ID
	out.Metadata.Custom["uuid"] = def.NetworkManager.UUID
	out.Metadata.Custom["group"] = def.Category().Group()
	return out, nil
}

// Describe implements netplanconfig.Backend.
func (b *Backend) Describe(ctx context.Context, bundle *netplanconfig.Bundle, opts netplanconfig.ParseOptions) (proto.Message, error) {
	def, err := b.Definition(ctx, bundle, opts)
	if err != nil {
		return nil, err
	}
	return def.ToProto()
}

// RenderToDir converts keyfile text and writes the resulting document into
// dir, returning the written path. Nothing is written when conversion fails,
// and an existing file is replaced atomically.
func (b *Backend) RenderToDir(ctx context.Context, keyfileText []byte, opts netplanconfig.RenderOptions, dir string) (string, error) {
	out, err := b.ToNetplan(ctx, netplanconfig.KeyfileBundle("", keyfileText), opts)
	if err != nil {
		return "", err
	}
	pkg, ok := out.Main()
	if !ok {
		return "", nperrors.New(nperrors.KindRender, fmt.Errorf("renderer produced no document"))
	}

	path, err := securejoin.SecureJoin(dir, pkg.Name)
	if err != nil {
		return "", nperrors.New(nperrors.KindIO, fmt.Errorf("resolve %s under %s: %w", pkg.Name, dir, err))
	}
	if filepath.Base(path) != pkg.Name || filepath.Dir(path) != filepath.Clean(dir) {
		return "", nperrors.New(nperrors.KindMalformedInput, fmt.Errorf("document name %q escapes %s", pkg.Name, dir))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		return "", nperrors.New(nperrors.KindIO, fmt.Errorf("output directory %s: %w", dir, err))
	}
	if err := store.WriteFile(path, pkg.Content); err != nil {
		return "", err
	}
	slog.Debug("wrote netplan document", "path", path, "id", out.Metadata.Custom["id"])
	return path, nil
}

// RenderToRoot writes the document into <root>/<configDir>.
func (b *Backend) RenderToRoot(ctx context.Context, keyfileText []byte, opts netplanconfig.RenderOptions, root, configDir string) (string, error) {
	if root == "" {
		root = "/"
	}
	dir, err := securejoin.SecureJoin(root, configDir)
	if err != nil {
		return "", nperrors.New(nperrors.KindIO, fmt.Errorf("resolve %s under %s: %w", configDir, root, err))
	}
	return b.RenderToDir(ctx, keyfileText, opts, dir)
}

var _ netplanconfig.Backend = (*Backend)(nil)
