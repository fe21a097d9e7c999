package netplanconfig

// RootKey is the top-level key of every netplan document.
const RootKey = "network"

// DeviceGroups lists the netplan mappings that hold device definitions keyed by id.
var DeviceGroups = []string{
	"ethernets",
	"modems",
	"wifis",
	"bridges",
	"bonds",
	"vlans",
	"tunnels",
	"vrfs",
	"dummy-devices",
	"virtual-ethernets",
	"nm-devices",
	"others",
}

var deviceGroupSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(DeviceGroups))
	for _, g := range DeviceGroups {
		m[g] = struct{}{}
	}
	return m
}()

// IsDeviceGroup reports whether key names a device grouping under "network".
func IsDeviceGroup(key string) bool {
	_, ok := deviceGroupSet[key]
	return ok
}
