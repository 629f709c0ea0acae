package extract

import (
	"sort"
	"strings"

	"github.com/jonesrussell/goharvest/internal/sections"
)

// defaultPlatform is used when a README names no supported devices.
const defaultPlatform = "all"

// FindCategories returns the sorted, '*'-stripped tokens of the Category
// section. The primary-category marker '*' carries no meaning in the
// catalog record.
func FindCategories(m *sections.Map) []string {
	body, ok := m.Find("category", sections.StrictMinConfidence)
	if !ok {
		return []string{}
	}

	tokens := strings.Fields(body)

	categories := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.Trim(token, "*"); token != "" {
			categories = append(categories, token)
		}
	}
	sort.Strings(categories)

	return categories
}

// FindPlatforms returns the tokens of the Supported Devices section,
// defaulting to the single platform "all".
func FindPlatforms(m *sections.Map) []string {
	body, ok := m.Find("supported devices", sections.StrictMinConfidence)
	if !ok {
		return []string{defaultPlatform}
	}

	platforms := strings.Fields(body)
	if len(platforms) == 0 {
		return []string{defaultPlatform}
	}

	return platforms
}

// FindTags returns the '#'-stripped tokens of the Tags section, or an
// empty list when the section is absent.
func FindTags(m *sections.Map) []string {
	body, ok := m.Find("tags", sections.DefaultMinConfidence)
	if !ok {
		return []string{}
	}

	tokens := strings.Fields(body)

	tags := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.TrimPrefix(token, "#"); token != "" {
			tags = append(tags, token)
		}
	}

	return tags
}
