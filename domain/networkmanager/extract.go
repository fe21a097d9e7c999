package networkmanager

import (
	"fmt"

	common "github.com/yaobinwen/netplan/domain/utils"
	ast "github.com/yaobinwen/netplan/pkg/ast/keyfile"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

// FromKeyfile classifies a parsed profile, extracts the settings netplan
// represents natively and keeps every remaining key as passthrough.
// The input document is not modified.
//
// opts.ExistingID, when set, becomes the definition id; otherwise the id is
// "NM-<uuid>".
func FromKeyfile(doc *ast.Document, opts netplanconfig.ParseOptions) (*Definition, error) {
	if doc == nil {
		return nil, nperrors.New(nperrors.KindMalformedInput, fmt.Errorf("keyfile document is nil"))
	}
	kf := doc.Clone()

	uuid, ok := kf.Get(sectionConnection, keyUUID)
	if !ok || uuid == "" {
		return nil, nperrors.ErrMissingUUID
	}
	// An empty type is a value, not an absence; it classifies as other.
	connType, ok := kf.Get(sectionConnection, keyType)
	if !ok {
		return nil, nperrors.ErrMissingType
	}
	category := CategoryFromType(connType)

	id := opts.ExistingID
	if id == "" {
		id = "NM-" + uuid
	}
	def := &Definition{
		ID:       id,
		Renderer: RendererName,
		NetworkManager: BackendSettings{
			UUID: uuid,
		},
	}
	kf.Remove(sectionConnection, keyUUID)
	if name, ok := kf.Take(sectionConnection, keyID); ok {
		def.NetworkManager.Name = &name
	}

	if category == CategoryOther {
		// connection.type stays in passthrough so the real type survives.
		def.Settings = &Other{}
		def.NetworkManager.Passthrough = passthroughFrom(kf)
		return def, nil
	}
	kf.Remove(sectionConnection, keyType)

	if category.HasMatch() {
		match := &Match{}
		if name, ok := kf.Take(sectionConnection, keyInterfaceName); ok {
			match.Name = &name
		}
		def.Match = match
	}

	switch category {
	case CategoryEthernet:
		def.Settings = extractEthernet(kf)
	case CategoryModem:
		def.Settings = extractModem(kf)
	case CategoryWifi:
		ap, err := extractAccessPoint(kf)
		if err != nil {
			return nil, err
		}
		// The access point owns the passthrough; the parent only repeats uuid and name.
		ap.NetworkManager = BackendSettings{
			UUID:        def.NetworkManager.UUID,
			Name:        def.NetworkManager.Name,
			Passthrough: passthroughFrom(kf),
		}
		def.Settings = &Wifi{AccessPoints: []*AccessPoint{ap}}
		return def, nil
	case CategoryBridge:
		def.Settings = &Bridge{}
	case CategoryBond:
		def.Settings = &Bond{}
	case CategoryVLAN:
		def.Settings = &VLAN{}
	}

	def.NetworkManager.Passthrough = passthroughFrom(kf)
	return def, nil
}

// extractEthernet reads wake-on-lan without consuming it: NetworkManager's
// bit flags do not fit netplan's boolean, so the exact value stays in passthrough.
func extractEthernet(kf *ast.Document) *Ethernet {
	eth := &Ethernet{}
	section := kf.Section(sectionEthernet)
	if section == nil {
		return eth
	}
	value, ok := section.Get(keyWakeOnLAN)
	if !ok {
		// NetworkManager's default is "1".
		eth.WakeOnLAN = true
		return eth
	}
	flags, _ := common.KeyfileUint64(value)
	eth.WakeOnLAN = flags > 0
	return eth
}

func extractModem(kf *ast.Document) *Modem {
	modem := &Modem{}
	if value, ok := kf.Take(sectionGSM, keyAutoConfig); ok {
		modem.AutoConfig, _ = common.KeyfileBool(value)
	}
	for _, f := range modemStringFields {
		if value, ok := kf.Take(sectionGSM, f.key); ok {
			*f.field(modem) = common.StringPtr(value)
		}
	}
	return modem
}

func extractAccessPoint(kf *ast.Document) (*AccessPoint, error) {
	ssid, ok := kf.Take(sectionWifi, keySSID)
	if !ok {
		return nil, nperrors.ErrMissingSSID
	}
	ap := &AccessPoint{SSID: ssid, Mode: WifiModeInfrastructure}

	if value, ok := kf.Get(sectionWifi, keyMode); ok {
		if mode, known := wifiModes[value]; known {
			ap.Mode = mode
			kf.Remove(sectionWifi, keyMode)
		}
	}
	if value, ok := kf.Take(sectionWifi, keyHidden); ok {
		ap.Hidden, _ = common.KeyfileBool(value)
	}
	return ap, nil
}

// passthroughFrom collects every key left in the document. Sections without
// keys become "<section>._".
func passthroughFrom(kf *ast.Document) Passthrough {
	p := make(Passthrough, kf.Len())
	for _, s := range kf.Sections {
		if len(s.Entries) == 0 {
			p.SetEmptyGroup(s.Name)
			continue
		}
		for _, e := range s.Entries {
			p.Set(s.Name, e.Key, e.Value)
		}
	}
	return p
}
