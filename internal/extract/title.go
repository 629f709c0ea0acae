// Package extract implements the field extractors that turn a sectioned
// README into the pieces of a catalog record.
package extract

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/sections"
	"github.com/jonesrussell/goharvest/internal/text"
)

// Host rewriting for relative icon paths. A relative src is resolved
// against the repository's raw-content mirror at the harvested tree.
const (
	repoHost       = "github.com"
	rawContentHost = "raw.githubusercontent.com"
)

// iconFontMarker identifies src values that reference the shared
// icon-font asset set rather than a skill-owned image.
const iconFontMarker = "fortawesome/font-awesome"

// imgTagMarker marks a heading that embeds icon markup.
const (
	imgTagMarker  = "<img"
	imgTagCloser  = "/>"
	srcAttr       = "src"
	cardColorAttr = "card_color"
)

// TitleInfo is the resolved title block of a README: the display title,
// the short description, and at most one icon representation.
type TitleInfo struct {
	Title     string
	ShortDesc string
	Icon      *domain.Icon
	IconImage string
	// Conformant reports whether the README carried the expected
	// icon-bearing title heading.
	Conformant bool
}

// titleStrategy resolves the title block from a section map. The variant
// is selected by ResolveTitle based on whether any heading embeds icon
// markup.
type titleStrategy interface {
	resolve(m *sections.Map) TitleInfo
}

// ResolveTitle picks the title resolution strategy for the document and
// applies it. Documents whose headings embed an <img> tag use the icon
// heading variant; anything else falls back to treating the first heading
// as a bare title, flagged as non-conformant input.
func ResolveTitle(m *sections.Map, name, repoURL, tree string) TitleInfo {
	return selectStrategy(m, name, repoURL, tree).resolve(m)
}

func selectStrategy(m *sections.Map, name, repoURL, tree string) titleStrategy {
	for _, heading := range m.Headings() {
		if strings.Contains(heading, imgTagMarker) {
			return iconHeading{heading: heading, repoURL: repoURL, tree: tree}
		}
	}

	return legacyFirstHeading{name: name}
}

// iconHeading resolves titles of the canonical form
//
//	# <img src='...' card_color='...'/> Skill Title
//
// where the title is the trailing text after the tag and the short
// description is the section body.
type iconHeading struct {
	heading string
	repoURL string
	tree    string
}

func (s iconHeading) resolve(m *sections.Map) TitleInfo {
	info := TitleInfo{Conformant: true}

	if at := strings.Index(s.heading, imgTagCloser); at >= 0 {
		info.Title = strings.TrimSpace(s.heading[at+len(imgTagCloser):])
	}

	info.ShortDesc, _ = m.Get(s.heading)
	info.Icon, info.IconImage = resolveIcon(s.heading, s.repoURL, s.tree)

	return info
}

// legacyFirstHeading handles READMEs that never adopted the icon heading
// convention: the first heading is the title and there is no short
// description. A document with no headings at all takes its title from
// the registry name instead of emitting an empty-titled record.
type legacyFirstHeading struct {
	name string
}

func (s legacyFirstHeading) resolve(m *sections.Map) TitleInfo {
	if heading := m.First().Heading; heading != "" {
		return TitleInfo{Title: heading}
	}

	return TitleInfo{Title: titleFromName(s.name)}
}

// titleFromName derives a display title from a hyphenated registry name.
//
//	"skill-hello-world" -> "Skill Hello World"
func titleFromName(name string) string {
	words := strings.Fields(text.Norm(name))
	for i, word := range words {
		words[i] = text.Caps(word)
	}

	return strings.Join(words, " ")
}

// resolveIcon parses the img tag embedded in heading and derives either a
// symbolic icon or an image URL, never both. Icon-font assets become
// {name, color} pairs named after the final path segment; relative paths
// are rewritten into absolute raw-content URLs at the harvested tree.
func resolveIcon(heading, repoURL, tree string) (*domain.Icon, string) {
	src, color := imgAttrs(heading)
	if src == "" {
		return nil, ""
	}

	if strings.Contains(strings.ToLower(src), iconFontMarker) {
		name := strings.TrimSuffix(path.Base(src), path.Ext(src))
		return &domain.Icon{Name: name, Color: color}, ""
	}

	parsed, err := url.Parse(src)
	if err == nil && parsed.Host == "" {
		return nil, rawContentURL(repoURL, tree, src)
	}

	return nil, src
}

// imgAttrs extracts the src and card_color attributes of the first img
// element in the heading markup.
func imgAttrs(heading string) (src, color string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(heading))
	if err != nil {
		return "", ""
	}

	img := doc.Find("img").First()
	if img.Length() == 0 {
		return "", ""
	}

	return img.AttrOr(srcAttr, ""), img.AttrOr(cardColorAttr, "")
}

// rawContentURL joins the repository's raw-content mirror, the tree
// reference, and the relative asset path into an absolute URL.
func rawContentURL(repoURL, tree, relPath string) string {
	base := strings.Replace(repoURL, repoHost, rawContentHost, 1)
	base = strings.TrimSuffix(base, "/")

	return base + "/" + tree + "/" + strings.TrimPrefix(relPath, "/")
}
