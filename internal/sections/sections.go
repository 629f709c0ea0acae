// Package sections partitions a markdown document into an ordered mapping
// of heading text to body text, and provides fuzzy heading lookup for the
// extraction pipeline.
package sections

import (
	"strings"

	"github.com/jonesrussell/goharvest/internal/text"
)

// Confidence thresholds for fuzzy heading lookup. Callers that need a
// near-exact heading name (Credits, Category, Supported Devices) use the
// strict threshold to avoid false positives against unrelated headings.
const (
	DefaultMinConfidence = 0.5
	StrictMinConfidence  = 0.9
)

// maxHeadingLevel is the deepest heading marker treated as a section break.
const maxHeadingLevel = 2

// Section is one markdown heading and its associated body text. The
// preamble (text before the first heading) carries an empty Heading.
type Section struct {
	Heading string
	Body    string
}

// Map is an insertion-ordered mapping from heading text to body text.
// Keys are unique; the empty preamble key always exists and is always the
// last entry, so the first entry is the first real heading whenever one
// exists. A Map is immutable once built by Split.
type Map struct {
	sections []Section
	index    map[string]int
}

// Split scans doc line by line and partitions it into sections. A line
// starting with one or two '#' characters followed by a space opens a new
// section keyed by the marker-stripped, trimmed remainder of the line.
// Lines before the first heading accumulate under the empty key. Bodies
// are trimmed of surrounding whitespace, and the preamble entry is
// relocated to the end of the map.
func Split(doc string) *Map {
	m := &Map{index: make(map[string]int)}

	// Preamble first so a document with no headings still yields one section.
	m.sections = append(m.sections, Section{})
	m.index[""] = 0

	current := 0
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)

		if heading, ok := headingText(line); ok {
			if at, exists := m.index[heading]; exists {
				// Duplicate heading restarts its section in place.
				m.sections[at].Body = ""
				current = at
				continue
			}

			m.sections = append(m.sections, Section{Heading: heading})
			m.index[heading] = len(m.sections) - 1
			current = m.index[heading]
			continue
		}

		m.sections[current].Body += "\n" + line
	}

	for i := range m.sections {
		m.sections[i].Body = strings.TrimSpace(m.sections[i].Body)
	}

	m.shiftPreambleToEnd()

	return m
}

// headingText reports whether line is a heading marker line and returns
// the heading text when it is.
func headingText(line string) (string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}

	if level == 0 || level > maxHeadingLevel {
		return "", false
	}

	if level >= len(line) || line[level] != ' ' {
		return "", false
	}

	return strings.TrimSpace(line[level+1:]), true
}

// shiftPreambleToEnd moves the empty-heading section to the last position
// while preserving the relative order of every real heading.
func (m *Map) shiftPreambleToEnd() {
	at := m.index[""]
	preamble := m.sections[at]

	m.sections = append(m.sections[:at], m.sections[at+1:]...)
	m.sections = append(m.sections, preamble)

	for i, s := range m.sections {
		m.index[s.Heading] = i
	}
}

// Find returns the body of the section whose heading scores the highest
// similarity ratio against name. The first maximum wins on ties. When the
// best score falls below minConf the lookup reports not found; callers
// supply their own fallback.
func (m *Map) Find(name string, minConf float64) (string, bool) {
	best := -1
	bestConf := -1.0

	for i, s := range m.sections {
		if conf := text.Ratio(s.Heading, name); conf > bestConf {
			best = i
			bestConf = conf
		}
	}

	if best < 0 || bestConf < minConf {
		return "", false
	}

	return m.sections[best].Body, true
}

// Get returns the body stored under the exact heading.
func (m *Map) Get(heading string) (string, bool) {
	at, ok := m.index[heading]
	if !ok {
		return "", false
	}

	return m.sections[at].Body, true
}

// First returns the first section in map order. After Split this is the
// first real heading of the document, or the preamble when the document
// has no headings.
func (m *Map) First() Section {
	return m.sections[0]
}

// Headings returns the heading keys in map order.
func (m *Map) Headings() []string {
	headings := make([]string, len(m.sections))
	for i, s := range m.sections {
		headings[i] = s.Heading
	}

	return headings
}

// Len returns the number of sections, preamble included.
func (m *Map) Len() int {
	return len(m.sections)
}
