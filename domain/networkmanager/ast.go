package networkmanager

import (
	"fmt"

	ast "github.com/yaobinwen/netplan/pkg/ast/netplan"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

// ToAST lays the definition out as a netplan document with a fixed field order:
// renderer, match, native fields, access-points, networkmanager.
func (d *Definition) ToAST() (*ast.Document, error) {
	if d == nil {
		return nil, nperrors.New(nperrors.KindInternal, fmt.Errorf("definition is nil"))
	}
	if d.ID == "" {
		return nil, nperrors.New(nperrors.KindRender, fmt.Errorf("definition has no id"))
	}
	if d.NetworkManager.UUID == "" {
		return nil, nperrors.ErrMissingUUID
	}

	entry := &ast.Definition{ID: d.ID}
	entry.Fields = append(entry.Fields, ast.String("renderer", d.Renderer, ast.Plain))

	if d.Category() != CategoryOther {
		if d.Match != nil {
			match := ast.Mapping("match")
			if d.Match.Name != nil {
				match.Add(ast.String("name", *d.Match.Name, ast.Quoted))
			}
			entry.Fields = append(entry.Fields, match)
		}

		switch s := d.Settings.(type) {
		case *Ethernet:
			if s.WakeOnLAN {
				entry.Fields = append(entry.Fields, ast.Bool("wakeonlan", true))
			}
		case *Modem:
			entry.Fields = append(entry.Fields, modemFields(s)...)
		case *Wifi:
			entry.Fields = append(entry.Fields, accessPointsNode(s.AccessPoints))
		}
	}

	if node := backendNode(d.NetworkManager); node != nil {
		entry.Fields = append(entry.Fields, node)
	}

	return &ast.Document{
		Name:    d.FileName(),
		Version: "2",
		Groups: []*ast.Group{{
			Name:        d.Category().Group(),
			Definitions: []*ast.Definition{entry},
		}},
	}, nil
}

func modemFields(m *Modem) []*ast.Node {
	var fields []*ast.Node
	if m.AutoConfig {
		fields = append(fields, ast.Bool("auto-config", true))
	}
	for _, f := range modemStringFields {
		if v := *f.field(m); v != nil {
			fields = append(fields, ast.String(f.key, *v, ast.Quoted))
		}
	}
	return fields
}

func accessPointsNode(aps []*AccessPoint) *ast.Node {
	node := ast.Mapping("access-points")
	for _, ap := range aps {
		if ap == nil {
			continue
		}
		apNode := ast.Mapping(ap.SSID)
		apNode.KeyStyle = ast.Quoted
		if ap.Hidden {
			apNode.Add(ast.Bool("hidden", true))
		}
		apNode.Add(ast.String("mode", ap.Mode.String(), ast.Plain))
		if backend := backendNode(ap.NetworkManager); backend != nil {
			apNode.Add(backend)
		}
		node.Add(apNode)
	}
	return node
}

func backendNode(s BackendSettings) *ast.Node {
	if s.UUID == "" && s.Name == nil && len(s.Passthrough) == 0 {
		return nil
	}
	node := ast.Mapping("networkmanager")
	if s.UUID != "" {
		node.Add(ast.String("uuid", s.UUID, ast.Quoted))
	}
	if s.Name != nil {
		node.Add(ast.String("name", *s.Name, ast.Quoted))
	}
	if len(s.Passthrough) > 0 {
		pt := ast.Mapping("passthrough")
		for _, key := range s.Passthrough.Keys() {
			pt.Add(ast.String(key, s.Passthrough[key], ast.Quoted))
		}
		node.Add(pt)
	}
	return node
}
