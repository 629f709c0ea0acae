package extract

import (
	"strings"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/sections"
	"github.com/jonesrussell/goharvest/internal/text"
)

// Input describes one catalog entry plus its fetched README.
type Input struct {
	// Name is the stable skill name from the registry.
	Name string
	// Author is the repository owner's handle.
	Author string
	// RepoURL is the repository's web URL.
	RepoURL string
	// Tree is the commit or branch reference used for asset URLs.
	Tree string
	// Readme is the raw README document.
	Readme string
}

// Assembler composes the extractor outputs into catalog records.
type Assembler struct {
	log logger.Interface
}

// NewAssembler creates a record assembler.
func NewAssembler(log logger.Interface) *Assembler {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Assembler{log: log}
}

// Assemble builds the catalog record for one entry. Section lookups that
// miss fall through to their documented defaults; the only hard
// requirement on the document is that it is non-empty text.
func (a *Assembler) Assemble(in Input) domain.Record {
	m := sections.Split(in.Readme)

	title := ResolveTitle(m, in.Name, in.RepoURL, in.Tree)
	if !title.Conformant {
		a.log.WithSkill(in.Name).Warn("README has no icon title heading, using first heading",
			"title", title.Title,
		)
	}

	rec := domain.Record{
		Repo:           in.RepoURL,
		Tree:           in.Tree,
		Name:           in.Name,
		GithubUsername: in.Author,
		Title:          title.Title,
		ShortDesc:      shortDescription(title.ShortDesc),
		Description:    findDescription(m),
		Examples:       parseExamples(m),
		Credits:        findCredits(m, in.Author),
		Categories:     FindCategories(m),
		Platforms:      FindPlatforms(m),
		Tags:           FindTags(m),
		Icon:           title.Icon,
		IconImage:      title.IconImage,
	}

	return rec
}

// shortDescription collapses the title section body to a single sentence
// with no terminal period.
func shortDescription(body string) string {
	flat := strings.ReplaceAll(body, "\n", " ")

	return strings.TrimRight(text.FormatSent(flat), ".")
}

// findDescription returns the first non-empty of the About and
// Description sections, sentence formatted.
func findDescription(m *sections.Map) string {
	for _, name := range []string{"about", "description"} {
		if body, ok := m.Find(name, sections.DefaultMinConfidence); ok && body != "" {
			return text.FormatSent(body)
		}
	}

	return ""
}

// parseExamples normalizes every bulleted example phrase in order.
func parseExamples(m *sections.Map) []string {
	raw := FindExamples(m)

	examples := make([]string, 0, len(raw))
	for _, line := range raw {
		examples = append(examples, ParseExample(line))
	}

	return examples
}

// findCredits parses the Credits section, falling back to a single credit
// naming the repository owner.
func findCredits(m *sections.Map, author string) []domain.Credit {
	if body, ok := m.Find("credits", sections.StrictMinConfidence); ok {
		if credits := ParseCredits(body); len(credits) > 0 {
			return credits
		}
	}

	return []domain.Credit{{Name: text.Caps(author)}}
}
