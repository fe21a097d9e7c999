package networkmanager

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

const testUUID = "87749f1d-334f-40b2-98d4-55db58965f5f"

const ethernetProfile = `[connection]
id=myid with spaces
type=ethernet
uuid=` + testUUID + `

[ethernet]
wake-on-lan=2

[ipv4]
method=auto
`

const ethernetYAML = `network:
  version: 2
  ethernets:
    NM-` + testUUID + `:
      renderer: NetworkManager
      match: {}
      wakeonlan: true
      networkmanager:
        uuid: "` + testUUID + `"
        name: "myid with spaces"
        passthrough:
          ethernet.wake-on-lan: "2"
          ipv4.method: "auto"
`

func TestToNetplan(t *testing.T) {
	b := Default()
	out, err := b.ToNetplan(context.Background(), netplanconfig.KeyfileBundle("eth.nmconnection", []byte(ethernetProfile)), netplanconfig.RenderOptions{})
	if err != nil {
		t.Fatalf("ToNetplan failed: %v", err)
	}
	pkg, ok := out.Main()
	if !ok {
		t.Fatal("expected one package")
	}
	if pkg.Name != "90-NM-"+testUUID+".yaml" {
		t.Fatalf("unexpected name %q", pkg.Name)
	}
	if string(pkg.Content) != ethernetYAML {
		t.Fatalf("got:\n%s\nwant:\n%s", pkg.Content, ethernetYAML)
	}
	if out.Metadata.Backend != "NetworkManager" || out.Metadata.Custom["group"] != "ethernets" || out.Metadata.Custom["id"] != "NM-"+testUUID {
		t.Fatalf("unexpected metadata: %+v", out.Metadata)
	}
}

func TestRenderToDir(t *testing.T) {
	dir := t.TempDir()
	path, err := Default().RenderToDir(context.Background(), []byte(ethernetProfile), netplanconfig.RenderOptions{}, dir)
	if err != nil {
		t.Fatalf("RenderToDir failed: %v", err)
	}
	if path != filepath.Join(dir, "90-NM-"+testUUID+".yaml") {
		t.Fatalf("unexpected path %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != ethernetYAML {
		t.Fatalf("got:\n%s", got)
	}

	// Rendering again replaces the file with identical bytes.
	if _, err := Default().RenderToDir(context.Background(), []byte(ethernetProfile), netplanconfig.RenderOptions{}, dir); err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	again, _ := os.ReadFile(path)
	if !bytes.Equal(got, again) {
		t.Fatal("rendering twice must produce identical files")
	}
}

func TestRenderToDirExistingID(t *testing.T) {
	dir := t.TempDir()
	path, err := Default().RenderToDir(context.Background(), []byte(ethernetProfile), netplanconfig.RenderOptions{ExistingID: "eth0"}, dir)
	if err != nil {
		t.Fatalf("RenderToDir failed: %v", err)
	}
	if filepath.Base(path) != "90-NM-"+testUUID+".yaml" {
		t.Fatalf("existing id must not change the file name, got %q", path)
	}
	got, _ := os.ReadFile(path)
	if !strings.Contains(string(got), "\n    eth0:\n") {
		t.Fatalf("expected eth0 key:\n%s", got)
	}
}

func TestRenderToDirWritesNothingOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		kind    nperrors.Kind
	}{
		{"gsm without uuid", "[connection]\ntype=gsm\n", nperrors.KindMissingField},
		{"wifi without ssid", "[connection]\ntype=wifi\nuuid=" + testUUID + "\n", nperrors.KindMissingField},
		{"malformed", "[connection\ntype=ethernet\n", nperrors.KindMalformedInput},
		{"invalid utf-8", "[connection]\ntype=ethernet\nuuid=" + testUUID + "\n[ipv4]\nx=\xff\xfe\n", nperrors.KindMalformedInput},
		{"uuid escaping the directory", "[connection]\ntype=ethernet\nuuid=../../x\n", nperrors.KindMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := Default().RenderToDir(context.Background(), []byte(tt.profile), netplanconfig.RenderOptions{}, dir)
			if !nperrors.Is(err, tt.kind) {
				t.Fatalf("expected %q error, got %v", tt.kind, err)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Fatalf("nothing should be written, found %d entries", len(entries))
			}
		})
	}
}

func TestRenderToDirMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	if _, err := Default().RenderToDir(context.Background(), []byte(ethernetProfile), netplanconfig.RenderOptions{}, dir); !nperrors.Is(err, nperrors.KindIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestRenderToRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "etc", "netplan"), 0o755); err != nil {
		t.Fatal(err)
	}
	path, err := Default().RenderToRoot(context.Background(), []byte(ethernetProfile), netplanconfig.RenderOptions{}, root, "etc/netplan")
	if err != nil {
		t.Fatalf("RenderToRoot failed: %v", err)
	}
	if path != filepath.Join(root, "etc", "netplan", "90-NM-"+testUUID+".yaml") {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestNonRFCUUIDWarns(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	profile := "[connection]\ntype=ethernet\nuuid=not-a-uuid\n"
	out, err := Default().ToNetplan(context.Background(), netplanconfig.KeyfileBundle("", []byte(profile)), netplanconfig.RenderOptions{})
	if err != nil {
		t.Fatalf("uuid is opaque, conversion should succeed: %v", err)
	}
	if out.Packages[0].Name != "90-NM-not-a-uuid.yaml" {
		t.Fatalf("unexpected name %q", out.Packages[0].Name)
	}
	if !strings.Contains(buf.String(), "not RFC 4122") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}

func TestDescribe(t *testing.T) {
	msg, err := Default().Describe(context.Background(), netplanconfig.KeyfileBundle("", []byte(ethernetProfile)), netplanconfig.ParseOptions{})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	s, ok := msg.(*structpb.Struct)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if got := s.GetFields()["group"].GetStringValue(); got != "ethernets" {
		t.Fatalf("group = %q", got)
	}
}

func TestToNetplanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Default().ToNetplan(ctx, netplanconfig.KeyfileBundle("", []byte(ethernetProfile)), netplanconfig.RenderOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}
