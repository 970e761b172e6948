package gallery

import (
	"slices"
	"strings"
	"sync"

	"github.com/orgball2608/class-gallery/internal/domain"
)

// Matches reports whether item passes f. With no selected tags every item
// passes the tag check; OR needs one selected tag, AND needs all of them.
func Matches(item domain.MediaItem, f domain.Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			return false
		}
	}
	return MatchesTags(item.Tags, f.Tags, f.Mode)
}

func MatchesTags(have, selected []string, mode domain.TagMode) bool {
	if len(selected) == 0 {
		return true
	}
	if mode == domain.TagModeAnd {
		for _, s := range selected {
			if !slices.Contains(have, s) {
				return false
			}
		}
		return true
	}
	for _, s := range selected {
		if slices.Contains(have, s) {
			return true
		}
	}
	return false
}

// FilterState holds the active query and tag selection. The dropdown and
// the checklist are separate entry points; each replaces the selection.
type FilterState struct {
	mu    sync.Mutex
	query string
	tags  []string
	mode  domain.TagMode
}

func (s *FilterState) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Filter{Query: s.query, Tags: slices.Clone(s.tags), Mode: s.mode}
}

func (s *FilterState) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = strings.TrimSpace(q)
}

// SelectTag is the single-select dropdown: one tag, OR mode. An empty tag
// clears the selection.
func (s *FilterState) SelectTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = domain.TagModeOr
	if tag = domain.NormalizeTag(tag); tag == "" {
		s.tags = nil
		return
	}
	s.tags = []string{tag}
}

// ApplyChecklist is the multi-select checklist with its own AND/OR toggle.
func (s *FilterState) ApplyChecklist(tags []string, mode domain.TagMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = normalizeTags(tags)
	s.mode = mode
}

func (s *FilterState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.tags = nil
	s.mode = domain.TagModeOr
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = domain.NormalizeTag(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
