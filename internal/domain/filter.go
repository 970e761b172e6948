package domain

import "strings"

// TagMode combines selected tags.
type TagMode string

const (
	TagModeOr  TagMode = "or"
	TagModeAnd TagMode = "and"
)

// ParseTagMode maps user input onto a mode, defaulting to OR.
func ParseTagMode(s string) TagMode {
	if TagMode(s) == TagModeAnd || s == "AND" {
		return TagModeAnd
	}
	return TagModeOr
}

// NormalizeTag is the canonical form of a tag name, shared by the stored
// tag sets and the viewer's selection.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Filter is the active gallery filter.
type Filter struct {
	Query string   `json:"query"`
	Tags  []string `json:"tags"`
	Mode  TagMode  `json:"mode"`
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Query == "" && len(f.Tags) == 0
}

// ListOptions is the ordering and window of a list request.
type ListOptions struct {
	OrderBy   string
	Ascending bool
	Offset    int
	Limit     int
	Filter    Filter
}
