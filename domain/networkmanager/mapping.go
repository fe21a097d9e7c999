package networkmanager

// Keyfile sections and keys the extractor understands. Everything else is passthrough.
const (
	sectionConnection = "connection"
	sectionEthernet   = "ethernet"
	sectionWifi       = "wifi"
	sectionGSM        = "gsm"

	keyUUID          = "uuid"
	keyID            = "id"
	keyType          = "type"
	keyInterfaceName = "interface-name"
	keyWakeOnLAN     = "wake-on-lan"
	keySSID          = "ssid"
	keyMode          = "mode"
	keyHidden        = "hidden"
	keyAutoConfig    = "auto-config"
)

// connectionTypes maps connection.type to a category. NetworkManager writes the
// short aliases by default but older profiles carry the long setting names.
// Tunnels, wireguard, bluetooth (including bluetooth-carried gsm) and anything
// unknown are Other.
var connectionTypes = map[string]Category{
	"ethernet":        CategoryEthernet,
	"802-3-ethernet":  CategoryEthernet,
	"wifi":            CategoryWifi,
	"802-11-wireless": CategoryWifi,
	"gsm":             CategoryModem,
	"cdma":            CategoryModem,
	"bridge":          CategoryBridge,
	"bond":            CategoryBond,
	"vlan":            CategoryVLAN,
}

// CategoryFromType classifies a connection.type value.
func CategoryFromType(connType string) Category {
	if c, ok := connectionTypes[connType]; ok {
		return c
	}
	return CategoryOther
}

// wifiModes lists the modes with a native netplan value. Other modes such as
// "mesh" render as infrastructure and keep wifi.mode in passthrough.
var wifiModes = map[string]WifiMode{
	"infrastructure": WifiModeInfrastructure,
	"ap":             WifiModeAP,
	"adhoc":          WifiModeAdhoc,
}

// modemField binds a gsm key to a native string field.
type modemField struct {
	key   string
	field func(*Modem) **string
}

// modemStringFields is also the render order of the native modem strings.
// gsm.home-only, gsm.password and gsm.username are never native.
var modemStringFields = []modemField{
	{"apn", func(m *Modem) **string { return &m.APN }},
	{"device-id", func(m *Modem) **string { return &m.DeviceID }},
	{"network-id", func(m *Modem) **string { return &m.NetworkID }},
	{"pin", func(m *Modem) **string { return &m.PIN }},
	{"sim-id", func(m *Modem) **string { return &m.SIMID }},
	{"sim-operator-id", func(m *Modem) **string { return &m.SIMOperatorID }},
}

// NativeKeys returns the composite keys a category may consume. The generic
// connection keys are included; connection.type is consumed by every category
// except Other. ethernet.wake-on-lan is read but never consumed.
func NativeKeys(c Category) []string {
	keys := []string{sectionConnection + "." + keyUUID, sectionConnection + "." + keyID}
	if c == CategoryOther {
		return keys
	}
	keys = append(keys, sectionConnection+"."+keyType)
	if c.HasMatch() {
		keys = append(keys, sectionConnection+"."+keyInterfaceName)
	}
	switch c {
	case CategoryWifi:
		keys = append(keys,
			sectionWifi+"."+keySSID,
			sectionWifi+"."+keyMode,
			sectionWifi+"."+keyHidden,
		)
	case CategoryModem:
		keys = append(keys, sectionGSM+"."+keyAutoConfig)
		for _, f := range modemStringFields {
			keys = append(keys, sectionGSM+"."+f.key)
		}
	}
	return keys
}
