package networkmanager

import "sort"

// RendererName is the renderer tag written on every definition produced from a keyfile.
const RendererName = "NetworkManager"

// Category is the netplan device category a profile is classified into.
type Category int

const (
	CategoryEthernet Category = iota + 1
	CategoryWifi
	CategoryModem
	CategoryBridge
	CategoryBond
	CategoryVLAN
	CategoryOther
)

var categoryNames = map[Category][2]string{
	CategoryEthernet: {"ethernet", "ethernets"},
	CategoryWifi:     {"wifi", "wifis"},
	CategoryModem:    {"modem", "modems"},
	CategoryBridge:   {"bridge", "bridges"},
	CategoryBond:     {"bond", "bonds"},
	CategoryVLAN:     {"vlan", "vlans"},
	CategoryOther:    {"other", "others"},
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n[0]
	}
	return "unknown"
}

// Group returns the netplan mapping holding definitions of this category.
func (c Category) Group() string {
	if n, ok := categoryNames[c]; ok {
		return n[1]
	}
	return ""
}

// HasMatch reports whether definitions of this category carry a match block.
// Physical devices always do, even an empty one, so NetworkManager does not
// bind the profile to an interface named after the netdef id.
func (c Category) HasMatch() bool {
	return c == CategoryEthernet || c == CategoryWifi || c == CategoryModem
}

// Settings is the category-specific native payload of a Definition.
// The set of implementations is closed.
type Settings interface {
	Category() Category
	isSettings()
}

// Ethernet holds the native ethernet settings.
type Ethernet struct {
	WakeOnLAN bool
}

// Wifi holds the access points of a wireless definition.
type Wifi struct {
	AccessPoints []*AccessPoint
}

// Modem holds the native gsm/cdma settings.
type Modem struct {
	AutoConfig    bool
	APN           *string
	DeviceID      *string
	NetworkID     *string
	PIN           *string
	SIMID         *string
	SIMOperatorID *string
}

// Bridge, Bond and VLAN select the output grouping only.
type Bridge struct{}
type Bond struct{}
type VLAN struct{}

// Other holds nothing natively; every key is passthrough.
type Other struct{}

func (*Ethernet) Category() Category { return CategoryEthernet }
func (*Wifi) Category() Category     { return CategoryWifi }
func (*Modem) Category() Category    { return CategoryModem }
func (*Bridge) Category() Category   { return CategoryBridge }
func (*Bond) Category() Category     { return CategoryBond }
func (*VLAN) Category() Category     { return CategoryVLAN }
func (*Other) Category() Category    { return CategoryOther }

func (*Ethernet) isSettings() {}
func (*Wifi) isSettings()     {}
func (*Modem) isSettings()    {}
func (*Bridge) isSettings()   {}
func (*Bond) isSettings()     {}
func (*VLAN) isSettings()     {}
func (*Other) isSettings()    {}

// WifiMode is the native access point mode.
type WifiMode int

const (
	WifiModeInfrastructure WifiMode = iota
	WifiModeAP
	WifiModeAdhoc
)

func (m WifiMode) String() string {
	switch m {
	case WifiModeAP:
		return "ap"
	case WifiModeAdhoc:
		return "adhoc"
	default:
		return "infrastructure"
	}
}

// Definition is the canonical netplan representation of one NetworkManager profile.
type Definition struct {
	ID             string
	Renderer       string
	Match          *Match
	Settings       Settings
	NetworkManager BackendSettings
}

// Category returns the category selected by the definition's settings.
func (d *Definition) Category() Category {
	if d == nil || d.Settings == nil {
		return CategoryOther
	}
	return d.Settings.Category()
}

// FileName returns the name of the YAML file the definition is written to.
// It depends on the uuid only, never on the id.
func (d *Definition) FileName() string {
	return FileName(d.NetworkManager.UUID)
}

// FileName returns "90-NM-<uuid>.yaml".
func FileName(uuid string) string {
	return "90-NM-" + uuid + ".yaml"
}

// Match restricts a definition to an interface name. A Match without Name is
// rendered as an empty mapping.
type Match struct {
	Name *string
}

// AccessPoint is one wireless network under a wifi definition. It carries its
// own backend settings, separate from the parent definition's.
type AccessPoint struct {
	SSID           string
	Hidden         bool
	Mode           WifiMode
	NetworkManager BackendSettings
}

// BackendSettings is the "networkmanager" block.
type BackendSettings struct {
	UUID        string
	Name        *string
	Passthrough Passthrough
}

// EmptyGroupKey marks a keyfile section that exists without keys.
const EmptyGroupKey = "_"

// Passthrough maps "<section>.<key>" to the original keyfile value.
type Passthrough map[string]string

// Set records section.key.
func (p Passthrough) Set(section, key, value string) {
	p[section+"."+key] = value
}

// SetEmptyGroup records a section without keys.
func (p Passthrough) SetEmptyGroup(section string) {
	p[section+"."+EmptyGroupKey] = ""
}

// Keys returns the composite keys in ordinal order.
func (p Passthrough) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
