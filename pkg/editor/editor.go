// Package editor removes single device definitions from a set of netplan
// documents.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
	"github.com/yaobinwen/netplan/pkg/store"
	"github.com/yaobinwen/netplan/pkg/sync"
)

// Location is one place a definition id occurs.
type Location struct {
	Path  string
	Group string
}

func (l Location) String() string {
	return l.Path + ":" + l.Group
}

type match struct {
	doc      *store.Document
	network  *yaml.Node
	groupIdx int // index of the group key in network.Content
	entryIdx int // index of the id key in the group mapping
	Location
}

// Find returns every location of id across docs.
func Find(id string, docs []*store.Document) []Location {
	found := find(id, docs)
	locs := make([]Location, 0, len(found))
	for _, m := range found {
		locs = append(locs, m.Location)
	}
	return locs
}

func find(id string, docs []*store.Document) []match {
	var found []match
	for _, doc := range docs {
		network := doc.Network()
		if network == nil {
			continue
		}
		for i := 0; i+1 < len(network.Content); i += 2 {
			group := network.Content[i].Value
			entries := network.Content[i+1]
			if !netplanconfig.IsDeviceGroup(group) || entries.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(entries.Content); j += 2 {
				if entries.Content[j].Value == id {
					found = append(found, match{
						doc:      doc,
						network:  network,
						groupIdx: i,
						entryIdx: j,
						Location: Location{Path: doc.Path, Group: group},
					})
				}
			}
		}
	}
	return found
}

// Delete removes the definition keyed by id from docs and writes the result.
// The owning group is dropped when it becomes empty and the owning document
// is deleted when no device group is left; otherwise the document is
// rewritten with the remaining entries in their original order.
//
// It returns nperrors.ErrNotFound when no document defines id and an
// ambiguous id error when more than one does. In both cases nothing is
// modified. When the write fails the document tree in docs is left as it was.
func Delete(id string, docs []*store.Document) (*sync.ChangeSet, error) {
	found := find(id, docs)
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("delete %q: %w", id, nperrors.ErrNotFound)
	case 1:
	default:
		locs := make([]string, 0, len(found))
		for _, m := range found {
			locs = append(locs, m.Location.String())
		}
		return nil, nperrors.New(nperrors.KindAmbiguousID,
			fmt.Errorf("id %q is defined more than once: %s", id, strings.Join(locs, ", ")))
	}

	m := found[0]
	base := m.doc.Snapshot()
	entries := m.network.Content[m.groupIdx+1]
	oldEntries, oldNetwork := entries.Content, m.network.Content
	entries.Content = withoutPair(entries.Content, m.entryIdx)
	if len(entries.Content) == 0 {
		m.network.Content = withoutPair(m.network.Content, m.groupIdx)
	}
	// The tree is only left modified once the file on disk matches it.
	restore := func() {
		entries.Content, m.network.Content = oldEntries, oldNetwork
	}

	cs := sync.NewChangeSet(id)
	cs.Diff.Removed[m.Group+"."+id] = m.Path

	if !hasDeviceGroups(m.network) {
		if rest := otherKeys(m.network); len(rest) > 0 {
			slog.Debug("dropping document without device definitions", "path", m.Path, "keys", rest)
		}
		if err := store.Remove(m.Path); err != nil {
			restore()
			return nil, err
		}
		slog.Debug("removed document", "path", m.Path, "id", id)
		cs.Add(sync.Change{Action: sync.ActionRemoved, Base: base})
		return cs, nil
	}

	target, err := store.Save(m.doc)
	if err != nil {
		restore()
		return nil, err
	}
	slog.Debug("rewrote document", "path", m.Path, "id", id)
	cs.Add(sync.Change{Action: sync.ActionRewritten, Base: base, Target: target})
	return cs, nil
}

// withoutPair returns a copy of content without the key/value pair at i.
func withoutPair(content []*yaml.Node, i int) []*yaml.Node {
	out := make([]*yaml.Node, 0, len(content)-2)
	out = append(out, content[:i]...)
	return append(out, content[i+2:]...)
}

func hasDeviceGroups(network *yaml.Node) bool {
	for i := 0; i+1 < len(network.Content); i += 2 {
		if netplanconfig.IsDeviceGroup(network.Content[i].Value) {
			return true
		}
	}
	return false
}

func otherKeys(network *yaml.Node) []string {
	var keys []string
	for i := 0; i+1 < len(network.Content); i += 2 {
		keys = append(keys, network.Content[i].Value)
	}
	return keys
}

// Editor deletes definitions from the config set under a root directory.
type Editor struct {
	SearchDirs []string
}

// New returns an Editor searching dirs, or store.DefaultSearchDirs when dirs
// is empty.
func New(dirs ...string) *Editor {
	if len(dirs) == 0 {
		dirs = store.DefaultSearchDirs
	}
	return &Editor{SearchDirs: dirs}
}

// Delete loads the whole config set under root and removes id from it.
func (e *Editor) Delete(ctx context.Context, id, root string) (*sync.ChangeSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths, err := store.Discover(root, e.SearchDirs)
	if err != nil {
		return nil, err
	}
	docs, err := store.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Delete(id, docs)
}

// DeleteConnection removes id from the config set under root using the
// default search directories. It reports false, with no error, when no
// document defines id.
func DeleteConnection(ctx context.Context, id, root string) (bool, error) {
	_, err := New().Delete(ctx, id, root)
	if errors.Is(err, nperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
