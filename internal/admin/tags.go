package admin

import (
	"slices"
	"strings"

	"github.com/orgball2608/class-gallery/internal/domain"
)

const removePrefix = "remove:"

// NormalizeTag trims and lowercases a tag name.
func NormalizeTag(name string) string {
	return domain.NormalizeTag(name)
}

// ParseTagOps splits a comma separated list of tag operations, dropping
// empty entries.
func ParseTagOps(input string) []string {
	var ops []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == removePrefix {
			continue
		}
		ops = append(ops, part)
	}
	return ops
}

// ApplyTagOps applies ops in order to tags and returns the deduplicated
// result. The second value lists the tags that were added.
func ApplyTagOps(tags []string, ops []string) ([]string, []string) {
	out := slices.Clone(tags)
	var added []string
	for _, op := range ops {
		if name, ok := strings.CutPrefix(op, removePrefix); ok {
			name = NormalizeTag(name)
			out = slices.DeleteFunc(out, func(t string) bool { return t == name })
			continue
		}
		name := NormalizeTag(op)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
		added = append(added, name)
	}
	return Dedupe(out), added
}

// RenameInSet replaces oldName with newName, keeping order and dropping
// duplicates.
func RenameInSet(tags []string, oldName, newName string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == oldName {
			t = newName
		}
		out = append(out, t)
	}
	return Dedupe(out)
}

// Dedupe removes repeated and empty tags, keeping first occurrences.
func Dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeTags normalizes and deduplicates a tag list.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, NormalizeTag(t))
	}
	return Dedupe(out)
}
