// Package store discovers, loads and atomically writes netplan YAML documents.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"gopkg.in/yaml.v3"

	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
	yamlrenderer "github.com/yaobinwen/netplan/pkg/renderer/netplan"
	"github.com/yaobinwen/netplan/pkg/sync"
)

// FileMode is the permission of every document the store writes.
const FileMode fs.FileMode = 0o600

// DefaultSearchDirs are the netplan configuration directories relative to
// the root, from lowest to highest precedence.
var DefaultSearchDirs = []string{"lib/netplan", "etc/netplan", "run/netplan"}

// Document is one loaded netplan file. Node is the YAML document node, so
// comments and key order survive a rewrite.
type Document struct {
	Path string
	Node *yaml.Node
	raw  []byte
}

// Discover lists the *.yaml documents of the config set under root. Files are
// ordered by base name; a file in a later directory shadows a file with the
// same base name in an earlier one. Missing directories are skipped.
func Discover(root string, dirs []string) ([]string, error) {
	if root == "" {
		root = "/"
	}
	if len(dirs) == 0 {
		dirs = DefaultSearchDirs
	}

	byName := make(map[string]string)
	for _, dir := range dirs {
		full, err := securejoin.SecureJoin(root, dir)
		if err != nil {
			return nil, nperrors.New(nperrors.KindIO, fmt.Errorf("resolve %s under %s: %w", dir, root, err))
		}
		entries, err := os.ReadDir(full)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, nperrors.New(nperrors.KindIO, fmt.Errorf("list %s: %w", full, err))
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
				continue
			}
			byName[e.Name()] = filepath.Join(full, e.Name())
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, byName[name])
	}
	return paths, nil
}

// Load reads and decodes one document. An empty file loads as an empty
// document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nperrors.New(nperrors.KindIO, fmt.Errorf("read %s: %w", path, err))
	}
	return Decode(path, data)
}

// Decode parses document content as if it had been read from path.
func Decode(path string, data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&node); err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, nperrors.New(nperrors.KindMalformedInput, fmt.Errorf("parse %s: %w", path, err))
		}
		node = yaml.Node{Kind: yaml.DocumentNode}
	}
	return &Document{Path: path, Node: &node, raw: data}, nil
}

// LoadAll loads every path, failing on the first document that cannot be
// loaded so callers never act on a partial view of the config set.
func LoadAll(paths []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := Load(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Network returns the mapping under the root "network" key, or nil.
func (d *Document) Network() *yaml.Node {
	if d == nil || d.Node == nil || len(d.Node.Content) == 0 {
		return nil
	}
	root := d.Node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == netplanconfig.RootKey && root.Content[i+1].Kind == yaml.MappingNode {
			return root.Content[i+1]
		}
	}
	return nil
}

// Snapshot versions the content the document was loaded from.
func (d *Document) Snapshot() *sync.VersionedDocument {
	return sync.Snapshot(d.Path, d.raw)
}

// Bytes encodes the current document tree. An empty tree is an error so that
// Save never truncates a file; use Remove for that.
func (d *Document) Bytes() ([]byte, error) {
	if d.Node == nil || len(d.Node.Content) == 0 {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("document %s is empty", d.Path))
	}
	return yamlrenderer.Encode(d.Node)
}

// Save rewrites the document atomically and returns its new version.
func Save(d *Document) (*sync.VersionedDocument, error) {
	data, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	if err := WriteFile(d.Path, data); err != nil {
		return nil, err
	}
	d.raw = data
	return sync.Snapshot(d.Path, data), nil
}

// WriteFile replaces path with data through a temporary file in the same
// directory and a rename. On failure the previous content stays in place.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return nperrors.New(nperrors.KindIO, fmt.Errorf("create temp file in %s: %w", dir, err))
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return nperrors.New(nperrors.KindIO, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write %s: %w", tmpName, err))
	}
	if err := tmp.Chmod(FileMode); err != nil {
		return cleanup(fmt.Errorf("chmod %s: %w", tmpName, err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync %s: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nperrors.New(nperrors.KindIO, fmt.Errorf("close %s: %w", tmpName, err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return nperrors.New(nperrors.KindIO, fmt.Errorf("rename %s: %w", path, err))
	}
	return nil
}

// Remove deletes the document file.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return nperrors.New(nperrors.KindIO, fmt.Errorf("remove %s: %w", path, err))
	}
	return nil
}
