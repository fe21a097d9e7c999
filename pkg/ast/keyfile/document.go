package keyfile

// Document is a parsed connection profile: ordered sections of ordered key/value entries.
type Document struct {
	Sections []*Section
}

// Section corresponds to one "[name]" block. A section without entries is
// meaningful and kept.
type Section struct {
	Name    string
	Entries []*Entry
}

// Entry is a single "key=value" line. Value is already unescaped.
type Entry struct {
	Key   string
	Value string
}

// NewSection creates an empty Section.
func NewSection(name string) *Section {
	return &Section{Name: name}
}

// Section returns the section with the given name, or nil.
func (d *Document) Section(name string) *Section {
	if d == nil {
		return nil
	}
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// HasSection reports whether a section exists, even an empty one.
func (d *Document) HasSection(name string) bool {
	return d.Section(name) != nil
}

// Get returns the value of section.key.
func (d *Document) Get(section, key string) (string, bool) {
	s := d.Section(section)
	if s == nil {
		return "", false
	}
	return s.Get(key)
}

// Has reports whether section.key exists.
func (d *Document) Has(section, key string) bool {
	_, ok := d.Get(section, key)
	return ok
}

// Take returns the value of section.key and removes it from the document.
// Removing the last entry of a section removes the section too.
func (d *Document) Take(section, key string) (string, bool) {
	value, ok := d.Get(section, key)
	if ok {
		d.Remove(section, key)
	}
	return value, ok
}

// Remove deletes section.key. When that leaves the section without entries the
// section itself is dropped; sections that were empty before are untouched.
func (d *Document) Remove(section, key string) bool {
	if d == nil {
		return false
	}
	for i, s := range d.Sections {
		if s.Name != section {
			continue
		}
		if !s.remove(key) {
			return false
		}
		if len(s.Entries) == 0 {
			d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
		}
		return true
	}
	return false
}

// Clone returns a deep copy so extraction can consume keys without touching the input.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Sections: make([]*Section, 0, len(d.Sections))}
	for _, s := range d.Sections {
		cp := &Section{Name: s.Name, Entries: make([]*Entry, 0, len(s.Entries))}
		for _, e := range s.Entries {
			cp.Entries = append(cp.Entries, &Entry{Key: e.Key, Value: e.Value})
		}
		out.Sections = append(out.Sections, cp)
	}
	return out
}

// Len returns the number of entries across all sections.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}

// Get returns the value of key within the section.
func (s *Section) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set replaces the value of key or appends a new entry.
func (s *Section) Set(key, value string) {
	for _, e := range s.Entries {
		if e.Key == key {
			e.Value = value
			return
		}
	}
	s.Entries = append(s.Entries, &Entry{Key: key, Value: value})
}

func (s *Section) remove(key string) bool {
	for i, e := range s.Entries {
		if e.Key == key {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return true
		}
	}
	return false
}
