package networkmanager

import (
	"testing"

	"google.golang.org/protobuf/encoding/protojson"

	netplanast "github.com/yaobinwen/netplan/pkg/ast/netplan"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
)

func fieldKeys(def *netplanast.Definition) []string {
	keys := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToASTFieldOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys []string
	}{
		{
			name: "ethernet",
			text: "[connection]\ntype=ethernet\nuuid=" + testUUID + "\n[ethernet]\n",
			keys: []string{"renderer", "match", "wakeonlan", "networkmanager"},
		},
		{
			name: "modem",
			text: "[connection]\ntype=gsm\nuuid=" + testUUID + "\n[gsm]\nsim-id=1\napn=a\nauto-config=true\npin=2\n",
			keys: []string{"renderer", "match", "auto-config", "apn", "pin", "sim-id", "networkmanager"},
		},
		{
			name: "wifi",
			text: "[connection]\ntype=wifi\nuuid=" + testUUID + "\n[wifi]\nssid=S\n",
			keys: []string{"renderer", "match", "access-points", "networkmanager"},
		},
		{
			name: "bridge",
			text: "[connection]\ntype=bridge\nuuid=" + testUUID,
			keys: []string{"renderer", "networkmanager"},
		},
		{
			name: "other",
			text: "[connection]\ntype=dummy\nuuid=" + testUUID,
			keys: []string{"renderer", "networkmanager"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := mustExtract(t, tt.text, netplanconfig.ParseOptions{})
			doc, err := def.ToAST()
			if err != nil {
				t.Fatalf("ToAST: %v", err)
			}
			if doc.Name != "90-NM-"+testUUID+".yaml" || doc.Version != "2" {
				t.Fatalf("unexpected document header: %q %q", doc.Name, doc.Version)
			}
			if len(doc.Groups) != 1 || doc.Groups[0].Name != def.Category().Group() {
				t.Fatalf("unexpected groups: %+v", doc.Groups)
			}
			entry := doc.Groups[0].Definitions[0]
			if entry.ID != "NM-"+testUUID {
				t.Fatalf("entry id = %q", entry.ID)
			}
			if got := fieldKeys(entry); !equalKeys(got, tt.keys) {
				t.Fatalf("field order = %v, want %v", got, tt.keys)
			}
		})
	}
}

func TestToASTAccessPoint(t *testing.T) {
	def := mustExtract(t, "[connection]\ntype=wifi\nuuid="+testUUID+"\nid=n\n[wifi]\nssid=SOME-SSID\nhidden=true\nmode=mesh\n", netplanconfig.ParseOptions{})
	doc, err := def.ToAST()
	if err != nil {
		t.Fatalf("ToAST: %v", err)
	}
	entry := doc.Groups[0].Definitions[0]
	ap := entry.Field("access-points").Child("SOME-SSID")
	if ap == nil || ap.KeyStyle != netplanast.Quoted {
		t.Fatalf("access point should be keyed by the quoted ssid: %+v", ap)
	}
	var apKeys []string
	for _, c := range ap.Children {
		apKeys = append(apKeys, c.Key)
	}
	if !equalKeys(apKeys, []string{"hidden", "mode", "networkmanager"}) {
		t.Fatalf("access point keys = %v", apKeys)
	}
	if ap.Child("mode").Value != "infrastructure" {
		t.Fatalf("mode = %q", ap.Child("mode").Value)
	}
	pt := ap.Child("networkmanager").Child("passthrough")
	if pt == nil || pt.Child("wifi.mode").Value != "mesh" {
		t.Fatalf("wifi.mode override missing: %+v", pt)
	}
	if entry.Field("networkmanager").Child("passthrough") != nil {
		t.Fatal("parent networkmanager block must not carry passthrough")
	}
}

func TestToASTPassthroughSorted(t *testing.T) {
	def := mustExtract(t, "[connection]\ntype=bond\nuuid="+testUUID+"\n[ipv6]\nmethod=auto\n[bond]\nmode=active-backup\n[ipv4]\nmethod=auto\ndns-search=\n", netplanconfig.ParseOptions{})
	doc, err := def.ToAST()
	if err != nil {
		t.Fatalf("ToAST: %v", err)
	}
	pt := doc.Groups[0].Definitions[0].Field("networkmanager").Child("passthrough")
	var keys []string
	for _, c := range pt.Children {
		keys = append(keys, c.Key)
		if c.Style != netplanast.Quoted {
			t.Errorf("passthrough value %s must be quoted", c.Key)
		}
	}
	want := []string{"bond.mode", "ipv4.dns-search", "ipv4.method", "ipv6.method"}
	if !equalKeys(keys, want) {
		t.Fatalf("passthrough order = %v, want %v", keys, want)
	}
}

func TestToASTRejectsIncompleteDefinitions(t *testing.T) {
	var nilDef *Definition
	if _, err := nilDef.ToAST(); err == nil {
		t.Fatal("nil definition should fail")
	}
	if _, err := (&Definition{NetworkManager: BackendSettings{UUID: "u"}}).ToAST(); err == nil {
		t.Fatal("definition without id should fail")
	}
	if _, err := (&Definition{ID: "x"}).ToAST(); err == nil {
		t.Fatal("definition without uuid should fail")
	}
}

func TestToProto(t *testing.T) {
	def := mustExtract(t, "[connection]\ntype=wifi\nuuid="+testUUID+"\nid=home\ninterface-name=wlan0\n[wifi]\nssid=SOME-SSID\nmode=ap\n[ipv4]\nmethod=shared\n", netplanconfig.ParseOptions{})
	st, err := def.ToProto()
	if err != nil {
		t.Fatalf("ToProto: %v", err)
	}
	fields := st.GetFields()
	if fields["id"].GetStringValue() != "NM-"+testUUID {
		t.Fatalf("id = %v", fields["id"])
	}
	if fields["group"].GetStringValue() != "wifis" || fields["category"].GetStringValue() != "wifi" {
		t.Fatalf("unexpected category fields: %v %v", fields["group"], fields["category"])
	}
	if fields["match"].GetStructValue().GetFields()["name"].GetStringValue() != "wlan0" {
		t.Fatalf("match = %v", fields["match"])
	}
	aps := fields["access-points"].GetListValue().GetValues()
	if len(aps) != 1 {
		t.Fatalf("access points = %v", aps)
	}
	ap := aps[0].GetStructValue().GetFields()
	if ap["mode"].GetStringValue() != "ap" || ap["ssid"].GetStringValue() != "SOME-SSID" {
		t.Fatalf("access point = %v", ap)
	}
	pt := ap["networkmanager"].GetStructValue().GetFields()["passthrough"].GetStructValue().GetFields()
	if pt["ipv4.method"].GetStringValue() != "shared" {
		t.Fatalf("passthrough = %v", pt)
	}

	if _, err := protojson.Marshal(st); err != nil {
		t.Fatalf("protojson.Marshal: %v", err)
	}
}
