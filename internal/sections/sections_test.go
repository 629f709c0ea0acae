package sections_test

import (
	"testing"

	"github.com/jonesrussell/goharvest/internal/sections"
)

// readmeDoc is a typical skill README with a preamble, two top-level
// sections, and a deep heading that must not open a new section.
const readmeDoc = `<img src='icon.svg'/> Weather
Preamble line one.
Preamble line two.

## About
Gives weather conditions.

## Examples
* "What is the weather"
### Advanced
More example text.

## Credits
@somebody
`

func TestSplit_SectionOrderAndBodies(t *testing.T) {
	t.Parallel()

	m := sections.Split(readmeDoc)

	wantHeadings := []string{"About", "Examples", "Credits", ""}
	got := m.Headings()

	if len(got) != len(wantHeadings) {
		t.Fatalf("Headings() = %v, want %v", got, wantHeadings)
	}
	for i, h := range wantHeadings {
		if got[i] != h {
			t.Fatalf("Headings()[%d] = %q, want %q", i, got[i], h)
		}
	}

	body, ok := m.Get("About")
	if !ok || body != "Gives weather conditions." {
		t.Errorf("Get(About) = %q, %v", body, ok)
	}

	// The level-3 heading stays inside the Examples body.
	body, ok = m.Get("Examples")
	if !ok {
		t.Fatal("Get(Examples) not found")
	}
	if want := "* \"What is the weather\"\n### Advanced\nMore example text."; body != want {
		t.Errorf("Get(Examples) = %q, want %q", body, want)
	}
}

func TestSplit_PreambleLast(t *testing.T) {
	t.Parallel()

	m := sections.Split(readmeDoc)

	body, ok := m.Get("")
	if !ok {
		t.Fatal("preamble section missing")
	}
	if want := "<img src='icon.svg'/> Weather\nPreamble line one.\nPreamble line two."; body != want {
		t.Errorf("preamble = %q, want %q", body, want)
	}

	if first := m.First(); first.Heading != "About" {
		t.Errorf("First().Heading = %q, want About", first.Heading)
	}
}

func TestSplit_NoHeadings(t *testing.T) {
	t.Parallel()

	m := sections.Split("just some text\nand more text")

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	first := m.First()
	if first.Heading != "" {
		t.Errorf("First().Heading = %q, want empty", first.Heading)
	}
	if first.Body != "just some text\nand more text" {
		t.Errorf("First().Body = %q", first.Body)
	}
}

func TestSplit_DuplicateHeadingRestartsSection(t *testing.T) {
	t.Parallel()

	m := sections.Split("## About\nfirst body\n## Other\nmiddle\n## About\nsecond body")

	body, ok := m.Get("About")
	if !ok || body != "second body" {
		t.Errorf("Get(About) = %q, %v, want %q", body, ok, "second body")
	}

	// The duplicate keeps its original position.
	if got := m.Headings(); got[0] != "About" || got[1] != "Other" {
		t.Errorf("Headings() = %v", got)
	}
}

func TestSplit_IndentedAndMarkerlessLines(t *testing.T) {
	t.Parallel()

	// Leading whitespace is trimmed before heading detection, and a '#'
	// without a following space is body text.
	m := sections.Split("  ## Usage\n#NotAHeading\ntext")

	body, ok := m.Get("Usage")
	if !ok {
		t.Fatal("Get(Usage) not found")
	}
	if want := "#NotAHeading\ntext"; body != want {
		t.Errorf("Get(Usage) = %q, want %q", body, want)
	}
}

func TestFind_FuzzyLookup(t *testing.T) {
	t.Parallel()

	m := sections.Split("## Exampels\n* \"do the thing\"\n\n## Installation\nsteps")

	body, ok := m.Find("Examples", sections.DefaultMinConfidence)
	if !ok {
		t.Fatal("Find(Examples) reported not found")
	}
	if want := `* "do the thing"`; body != want {
		t.Errorf("Find(Examples) = %q, want %q", body, want)
	}
}

func TestFind_BelowThreshold(t *testing.T) {
	t.Parallel()

	m := sections.Split("## Installation\nsteps")

	if body, ok := m.Find("Examples", sections.DefaultMinConfidence); ok {
		t.Errorf("Find(Examples) = %q, want not found", body)
	}
}

func TestFind_StrictThreshold(t *testing.T) {
	t.Parallel()

	m := sections.Split("## Category\n**Information**\n\n## Categories\nignored")

	// Exact heading wins at the strict threshold.
	body, ok := m.Find("Category", sections.StrictMinConfidence)
	if !ok || body != "**Information**" {
		t.Errorf("Find(Category) = %q, %v", body, ok)
	}

	// A heading that merely shares a prefix does not pass strict.
	if _, ok = m.Find("Credits", sections.StrictMinConfidence); ok {
		t.Error("Find(Credits) passed strict threshold")
	}
}
