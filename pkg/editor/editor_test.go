package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaobinwen/netplan/pkg/nperrors"
	"github.com/yaobinwen/netplan/pkg/store"
	"github.com/yaobinwen/netplan/pkg/sync"
)

func writeConfig(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestDeleteConnectionOnlyEntry(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "etc/netplan/some-filename.yaml", `network:
  ethernets:
    some-netplan-id:
      dhcp4: true`)

	ok, err := DeleteConnection(context.Background(), "some-netplan-id", root)
	if err != nil || !ok {
		t.Fatalf("DeleteConnection = %v, %v", ok, err)
	}
	if fileExists(path) {
		t.Fatal("document holding only the deleted definition should be removed")
	}
}

func TestDeleteConnectionNotFound(t *testing.T) {
	root := t.TempDir()
	content := `network:
  ethernets:
    some-netplan-id:
      dhcp4: true`
	path := writeConfig(t, root, "etc/netplan/some-filename.yaml", content)

	ok, err := DeleteConnection(context.Background(), "unknown-id", root)
	if err != nil || ok {
		t.Fatalf("DeleteConnection = %v, %v; want false, nil", ok, err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("document should still exist: %v", err)
	}
	if string(got) != content {
		t.Fatalf("document modified:\n%s", got)
	}
}

func TestDeleteConnectionTwoInFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "etc/netplan/some-filename.yaml", `network:
  ethernets:
    some-netplan-id:
      dhcp4: true
    other-id:
      dhcp6: true`)

	ok, err := DeleteConnection(context.Background(), "some-netplan-id", root)
	if err != nil || !ok {
		t.Fatalf("DeleteConnection = %v, %v", ok, err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("document should still exist: %v", err)
	}
	want := "network:\n  ethernets:\n    other-id:\n      dhcp6: true\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDeleteDropsEmptyGroup(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "etc/netplan/50-mixed.yaml", `network:
  version: 2
  ethernets:
    eth0:
      dhcp4: true
  wifis:
    wl0:
      access-points:
        "home": {}
`)

	cs, err := New().Delete(context.Background(), "eth0", root)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, _ := os.ReadFile(path)
	want := `network:
  version: 2
  wifis:
    wl0:
      access-points:
        "home": {}
`
	if string(got) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if len(cs.Changes) != 1 || cs.Changes[0].Action != sync.ActionRewritten {
		t.Fatalf("unexpected changes: %+v", cs.Changes)
	}
	if cs.Changes[0].Base.Checksum == cs.Changes[0].Target.Checksum {
		t.Fatal("rewrite should change the checksum")
	}
	if cs.Diff.Removed["ethernets.eth0"] != path {
		t.Fatalf("unexpected diff: %+v", cs.Diff.Removed)
	}
}

func TestDeleteFailedWriteKeepsTree(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	tests := []struct {
		name    string
		content string
	}{
		{"rewrite", "network:\n  ethernets:\n    eth0:\n      dhcp4: true\n    eth1:\n      dhcp6: true\n"},
		{"remove", "network:\n  ethernets:\n    eth0:\n      dhcp4: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := store.Decode(filepath.Join(missing, tt.name+".yaml"), []byte(tt.content))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			docs := []*store.Document{doc}

			if _, err := Delete("eth0", docs); !nperrors.Is(err, nperrors.KindIO) {
				t.Fatalf("expected io error, got %v", err)
			}
			if locs := Find("eth0", docs); len(locs) != 1 {
				t.Fatalf("eth0 should still be in the tree, found %v", locs)
			}
			got, err := doc.Bytes()
			if err != nil {
				t.Fatalf("Bytes: %v", err)
			}
			if string(got) != tt.content {
				t.Fatalf("tree changed:\n%s", got)
			}
		})
	}
}

func TestDeleteRemovesDocumentWithoutDeviceGroups(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "etc/netplan/90-NM-x.yaml", `network:
  version: 2
  renderer: NetworkManager
  bonds:
    bond0:
      interfaces: []
`)

	cs, err := New().Delete(context.Background(), "bond0", root)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fileExists(path) {
		t.Fatal("document without device groups should be removed")
	}
	if cs.Changes[0].Action != sync.ActionRemoved || cs.Changes[0].Target != nil {
		t.Fatalf("unexpected change: %+v", cs.Changes[0])
	}
}

func TestDeleteAcrossDocumentsAndDirs(t *testing.T) {
	root := t.TempDir()
	keep := writeConfig(t, root, "lib/netplan/00-base.yaml", "network:\n  ethernets:\n    eth0:\n      dhcp4: true\n")
	target := writeConfig(t, root, "run/netplan/90-NM-y.yaml", "network:\n  modems:\n    NM-y:\n      renderer: NetworkManager\n")

	ok, err := DeleteConnection(context.Background(), "NM-y", root)
	if err != nil || !ok {
		t.Fatalf("DeleteConnection = %v, %v", ok, err)
	}
	if fileExists(target) {
		t.Fatal("target document should be removed")
	}
	if !fileExists(keep) {
		t.Fatal("unrelated document must be untouched")
	}
}

func TestDeleteAmbiguousID(t *testing.T) {
	root := t.TempDir()
	first := "network:\n  ethernets:\n    dup:\n      dhcp4: true\n"
	second := "network:\n  bridges:\n    dup:\n      dhcp4: true\n"
	a := writeConfig(t, root, "etc/netplan/a.yaml", first)
	b := writeConfig(t, root, "etc/netplan/b.yaml", second)

	_, err := DeleteConnection(context.Background(), "dup", root)
	if !nperrors.Is(err, nperrors.KindAmbiguousID) {
		t.Fatalf("expected ambiguous id error, got %v", err)
	}
	for path, want := range map[string]string{a: first, b: second} {
		got, err := os.ReadFile(path)
		if err != nil || string(got) != want {
			t.Fatalf("%s modified: %q, %v", path, got, err)
		}
	}
}

func TestDeleteIgnoresNonDeviceKeys(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "etc/netplan/a.yaml", "network:\n  renderer: eth0\n  ethernets:\n    eth1: {}\n")

	ok, err := DeleteConnection(context.Background(), "renderer", root)
	if err != nil || ok {
		t.Fatalf("top-level keys are not definitions, got %v, %v", ok, err)
	}
}

func TestDeleteNotFoundSentinel(t *testing.T) {
	_, err := Delete("missing", nil)
	if !errors.Is(err, nperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFind(t *testing.T) {
	doc, err := store.Decode("mem.yaml", []byte("network:\n  vlans:\n    vlan10: {}\n  ethernets:\n    vlan10: {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	locs := Find("vlan10", []*store.Document{doc})
	if len(locs) != 2 || locs[0].Group != "vlans" || locs[1].Group != "ethernets" {
		t.Fatalf("unexpected locations: %v", locs)
	}
}

func TestDeleteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Delete(ctx, "x", t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
