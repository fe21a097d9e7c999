package networkmanager

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yaobinwen/netplan/pkg/nperrors"
)

// ToProto exposes the definition as a protobuf Struct, for JSON output and for
// callers that exchange definitions as proto messages.
func (d *Definition) ToProto() (*structpb.Struct, error) {
	if d == nil {
		return nil, nperrors.New(nperrors.KindInternal, fmt.Errorf("definition is nil"))
	}
	fields := map[string]any{
		"id":             d.ID,
		"category":       d.Category().String(),
		"group":          d.Category().Group(),
		"renderer":       d.Renderer,
		"file":           d.FileName(),
		"networkmanager": backendMap(d.NetworkManager),
	}
	if d.Match != nil {
		match := map[string]any{}
		if d.Match.Name != nil {
			match["name"] = *d.Match.Name
		}
		fields["match"] = match
	}

	switch s := d.Settings.(type) {
	case *Ethernet:
		fields["wakeonlan"] = s.WakeOnLAN
	case *Modem:
		fields["auto-config"] = s.AutoConfig
		for _, f := range modemStringFields {
			if v := *f.field(s); v != nil {
				fields[f.key] = *v
			}
		}
	case *Wifi:
		aps := make([]any, 0, len(s.AccessPoints))
		for _, ap := range s.AccessPoints {
			if ap == nil {
				continue
			}
			aps = append(aps, map[string]any{
				"ssid":           ap.SSID,
				"hidden":         ap.Hidden,
				"mode":           ap.Mode.String(),
				"networkmanager": backendMap(ap.NetworkManager),
			})
		}
		fields["access-points"] = aps
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, nperrors.New(nperrors.KindInternal, fmt.Errorf("convert definition %s: %w", d.ID, err))
	}
	return st, nil
}

func backendMap(s BackendSettings) map[string]any {
	m := map[string]any{"uuid": s.UUID}
	if s.Name != nil {
		m["name"] = *s.Name
	}
	if len(s.Passthrough) > 0 {
		pt := make(map[string]any, len(s.Passthrough))
		for k, v := range s.Passthrough {
			pt[k] = v
		}
		m["passthrough"] = pt
	}
	return m
}
