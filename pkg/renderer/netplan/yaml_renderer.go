package netplan

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	ast "github.com/yaobinwen/netplan/pkg/ast/netplan"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

// Indent is the indentation of rendered netplan documents.
const Indent = 2

// YAMLRenderer renders the netplan AST as YAML. Field order is taken from the
// AST as is, so equal documents always render to equal bytes.
type YAMLRenderer struct{}

func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render implements renderer.Renderer.
func (r *YAMLRenderer) Render(ctx context.Context, doc *ast.Document, opts netplanconfig.RenderOptions) (*netplanconfig.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if doc == nil {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("netplan document is nil"))
	}
	if doc.Name == "" {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("netplan document has no file name"))
	}
	groups := filterGroups(doc.Groups)
	if len(groups) == 0 {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("empty document"))
	}

	content, err := Encode(buildDocument(doc.Version, groups))
	if err != nil {
		return nil, err
	}

	bundle := netplanconfig.NewBundle("netplan", "")
	bundle.Packages = append(bundle.Packages, netplanconfig.Package{
		Name:    doc.Name,
		Content: content,
	})
	return bundle, nil
}

// Encode writes a YAML node tree with the netplan indentation.
func Encode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(node); err != nil {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("encode yaml: %w", err))
	}
	if err := enc.Close(); err != nil {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("encode yaml: %w", err))
	}
	return buf.Bytes(), nil
}

func buildDocument(version string, groups []*ast.Group) *yaml.Node {
	network := &yaml.Node{Kind: yaml.MappingNode}
	if version != "" {
		network.Content = append(network.Content,
			keyNode("version", ast.Plain),
			scalarNode(version, ast.Plain, ast.IntType),
		)
	}
	for _, g := range groups {
		group := &yaml.Node{Kind: yaml.MappingNode}
		for _, def := range g.Definitions {
			group.Content = append(group.Content, keyNode(def.ID, ast.Plain), fieldsNode(def.Fields))
		}
		network.Content = append(network.Content, keyNode(g.Name, ast.Plain), group)
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, keyNode(netplanconfig.RootKey, ast.Plain), network)
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func fieldsNode(fields []*ast.Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		if f == nil {
			continue
		}
		m.Content = append(m.Content, keyNode(f.Key, f.KeyStyle), valueNode(f))
	}
	return m
}

func valueNode(n *ast.Node) *yaml.Node {
	if n.Kind == ast.MappingKind {
		return fieldsNode(n.Children)
	}
	return scalarNode(n.Value, n.Style, n.Type)
}

func keyNode(key string, style ast.Style) *yaml.Node {
	return scalarNode(key, style, ast.StringType)
}

func scalarNode(value string, style ast.Style, typ ast.ScalarType) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	switch typ {
	case ast.BoolType:
		n.Tag = "!!bool"
	case ast.IntType:
		n.Tag = "!!int"
	default:
		n.Tag = "!!str"
	}
	if style == ast.Quoted {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func filterGroups(groups []*ast.Group) []*ast.Group {
	filtered := make([]*ast.Group, 0, len(groups))
	for _, g := range groups {
		if g == nil || g.Name == "" || len(g.Definitions) == 0 {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}
