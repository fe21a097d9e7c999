package netplan

// Document represents one netplan YAML file holding a single device definition.
type Document struct {
	Name    string // Output file name (e.g., "90-NM-<uuid>.yaml")
	Version string
	Groups  []*Group
}

// Group corresponds to a device grouping under "network" (e.g., "ethernets").
type Group struct {
	Name        string
	Definitions []*Definition
}

// Definition is one device entry keyed by its netdef id. Fields keep their
// declared order.
type Definition struct {
	ID     string
	Fields []*Node
}

// Style selects how a scalar is written.
type Style int

const (
	// Plain writes the scalar unquoted.
	Plain Style = iota
	// Quoted writes the scalar double-quoted.
	Quoted
)

// Kind distinguishes scalar nodes from mapping nodes.
type Kind int

const (
	ScalarKind Kind = iota
	MappingKind
)

// ScalarType is the YAML type a plain scalar resolves to.
type ScalarType int

const (
	StringType ScalarType = iota
	BoolType
	IntType
)

// Node is an ordered key/value pair. Mapping nodes carry Children; an empty
// mapping is written as "{}".
type Node struct {
	Key      string
	KeyStyle Style
	Kind     Kind
	Value    string
	Style    Style
	Type     ScalarType
	Children []*Node
}

// String creates a string scalar node.
func String(key, value string, style Style) *Node {
	return &Node{Key: key, Kind: ScalarKind, Value: value, Style: style, Type: StringType}
}

// Bool creates a boolean scalar node.
func Bool(key string, value bool) *Node {
	v := "false"
	if value {
		v = "true"
	}
	return &Node{Key: key, Kind: ScalarKind, Value: v, Type: BoolType}
}

// Mapping creates a mapping node with the given children.
func Mapping(key string, children ...*Node) *Node {
	return &Node{Key: key, Kind: MappingKind, Children: children}
}

// Add appends children to a mapping node and returns it.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the direct child with the given key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Field returns the top-level field with the given key, or nil.
func (d *Definition) Field(key string) *Node {
	if d == nil {
		return nil
	}
	for _, f := range d.Fields {
		if f.Key == key {
			return f
		}
	}
	return nil
}
