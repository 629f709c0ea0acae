// Package domain defines the catalog record types produced by the
// harvester.
package domain

// Credit identifies one contributor parsed from a credits line. At least
// one of Name or Handle is set.
type Credit struct {
	Name   string `json:"name,omitempty"`
	Handle string `json:"handle,omitempty"`
}

// Icon is a symbolic icon-font reference paired with a card color, used
// when a skill README points at a known icon-font asset instead of an
// image of its own.
type Icon struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Record is the flat catalog record assembled for one skill. Exactly one
// of Icon and IconImage is set when the README carries icon markup.
type Record struct {
	Repo           string   `json:"repo"`
	Tree           string   `json:"tree"`
	Name           string   `json:"name"`
	GithubUsername string   `json:"github_username"`
	Title          string   `json:"title"`
	ShortDesc      string   `json:"short_desc"`
	Description    string   `json:"description"`
	Examples       []string `json:"examples"`
	Credits        []Credit `json:"credits"`
	Categories     []string `json:"categories"`
	Platforms      []string `json:"platforms"`
	Tags           []string `json:"tags"`
	Icon           *Icon    `json:"icon,omitempty"`
	IconImage      string   `json:"icon_img,omitempty"`
}
