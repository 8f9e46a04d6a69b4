// Package conf parses and serializes the section-based text configuration
// dialect shared by the guest-side /etc/wsl.conf and the host-side
// ~/.wslconfig. The parser is lenient: comments and malformed lines are
// skipped so guest-maintained files with unknown extensions survive a
// read-modify-write cycle.
package conf

import (
	"bufio"
	"bytes"
	"strings"
)

// Document is an ordered sequence of sections, each an ordered mapping of
// key to raw string value. Values are never type-coerced here; typed
// accessors live in the dialect views.
type Document struct {
	sections []*Section
}

// Section holds key/value pairs in key order. The unnamed section (name
// "") collects entries appearing before the first header.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

// Parse reads a document. Blank lines and lines starting with '#' or ';'
// are ignored; a line without '=' is skipped, not fatal.
func Parse(data []byte) *Document {
	doc := &Document{}
	current := doc.Ensure("")

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = doc.Ensure(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		current.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return doc
}

// Serialize re-emits sections in first-seen order with one key=value pair
// per line and a blank line between sections. Comments are not preserved.
// An empty unnamed section is omitted entirely.
func (d *Document) Serialize() []byte {
	var buf bytes.Buffer
	for _, s := range d.sections {
		if len(s.keys) == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		if s.name != "" {
			buf.WriteString("[" + s.name + "]\n")
		}
		for _, k := range s.keys {
			buf.WriteString(k + "=" + s.values[k] + "\n")
		}
	}
	return buf.Bytes()
}

// Section returns the named section, or nil when absent.
func (d *Document) Section(name string) *Section {
	for _, s := range d.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Ensure returns the named section, appending it when absent.
func (d *Document) Ensure(name string) *Section {
	if s := d.Section(name); s != nil {
		return s
	}
	s := &Section{name: name, values: make(map[string]string)}
	d.sections = append(d.sections, s)
	return s
}

// SectionNames lists non-empty sections in first-seen order.
func (d *Document) SectionNames() []string {
	var names []string
	for _, s := range d.sections {
		if len(s.keys) > 0 {
			names = append(names, s.name)
		}
	}
	return names
}

// Get reads a key from a section. The second result is false when either
// the section or the key is absent.
func (d *Document) Get(section, key string) (string, bool) {
	s := d.Section(section)
	if s == nil {
		return "", false
	}
	return s.Get(key)
}

// Set writes a key in a section, creating the section when needed.
func (d *Document) Set(section, key, value string) {
	d.Ensure(section).Set(key, value)
}

// Name returns the section header, empty for the unnamed section.
func (s *Section) Name() string {
	return s.name
}

// Keys lists the section's keys in order.
func (s *Section) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Get reads one key.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set writes one key. A duplicate overwrites the earlier value but keeps
// its original position in the key order.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Delete removes a key. Missing keys are a no-op.
func (s *Section) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}
