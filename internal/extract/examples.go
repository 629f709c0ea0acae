package extract

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/goharvest/internal/sections"
	"github.com/jonesrussell/goharvest/internal/text"
)

// bulletLine matches a bulleted line and captures everything after the
// marker.
var bulletLine = regexp.MustCompile(`(?m)^[ \t]*[-*](.*)$`)

// wakeWords are the invocation prefixes stripped from example phrases,
// checked in order so the longer prefix wins before its suffix would.
var wakeWords = []string{"hey mycroft", "mycroft", "hey-mycroft"}

// interrogatives open questions; an example starting with one gets a
// terminal question mark.
var interrogatives = []string{"who", "what", "when", "where"}

// contractionSuffixes are the contraction endings allowed after an
// interrogative word ("what's", "whats", "who'd", ...). The empty suffix
// covers the plain word.
var contractionSuffixes = []string{"'s", "s", "", "'d", "d", "'re", "re"}

// FindExamples returns the raw bulleted lines of the examples section,
// falling back to the usage section when the examples section is absent
// or empty. Order is preserved and duplicates are kept.
func FindExamples(m *sections.Map) []string {
	body, ok := m.Find("examples", sections.DefaultMinConfidence)
	if !ok || body == "" {
		body, ok = m.Find("usage", sections.DefaultMinConfidence)
	}
	if !ok || body == "" {
		return nil
	}

	matches := bulletLine.FindAllStringSubmatch(body, -1)

	examples := make([]string, 0, len(matches))
	for _, match := range matches {
		examples = append(examples, match[1])
	}

	return examples
}

// ParseExample normalizes one raw example line into a display phrase:
//
//	`"Hey Mycroft, what is this"` -> "What is this?"
//
// Quoting and trailing annotation text are stripped, the wake-word prefix
// is removed, questions get a question mark, and the result is sentence
// formatted.
func ParseExample(example string) string {
	example = strings.Trim(example, " \n\"'`")
	if at := strings.IndexAny(example, "\"`"); at >= 0 {
		example = example[:at]
	}

	for _, prefix := range wakeWords {
		if strings.HasPrefix(strings.ToLower(example), prefix) {
			example = example[len(prefix):]
		}
	}
	example = strings.Trim(example, " ,")

	if isQuestion(example) {
		example = strings.TrimRight(example, "?.") + "?"
	}

	return text.FormatSent(example)
}

// isQuestion reports whether the example opens with an interrogative word
// (allowing contraction endings) followed by a space.
func isQuestion(example string) bool {
	lower := strings.ToLower(example)
	for _, word := range interrogatives {
		for _, suffix := range contractionSuffixes {
			if strings.HasPrefix(lower, word+suffix+" ") {
				return true
			}
		}
	}

	return false
}
