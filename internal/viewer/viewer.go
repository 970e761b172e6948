// Package viewer defines the browser session protocol: the messages a
// viewer sends, the render instructions it receives and the Session that
// turns one into the other.
package viewer

import (
	"net/http"
)

// Inbound message types
const (
	TypeLoadMore          = "load_more"
	TypeSetQuery          = "set_query"
	TypeSelectTag         = "select_tag"
	TypeApplyTags         = "apply_tags"
	TypeClearFilters      = "clear_filters"
	TypePopupOpen         = "popup_open"
	TypePopupNext         = "popup_next"
	TypePopupPrev         = "popup_prev"
	TypePopupClose        = "popup_close"
	TypeKey               = "key"
	TypeStoryToggleGlobal = "story_toggle_global"
	TypeStoryToggleSingle = "story_toggle_single"
	TypeStorySelect       = "story_select"
)

// Outbound message types
const (
	TypeAppendPhotos = "append_photos"
	TypeResetPhotos  = "reset_photos"
	TypeMemories     = "memories"
	TypeNews         = "news"
	TypeEvents       = "events"
	TypePopup        = "popup"
	TypeStoryMemory  = "story_memory"
	TypeStoryPhoto   = "story_photo"
	TypeStoryState   = "story_state"
	TypeNotice       = "notice"
)

// Popup sources
const (
	SourceGallery = "gallery"
	SourceMemory  = "memory"
)

type Inbound struct {
	Type   string   `json:"type"`
	Query  string   `json:"query,omitempty"`
	Tag    string   `json:"tag,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Mode   string   `json:"mode,omitempty"`
	Index  int      `json:"index,omitempty"`
	Key    string   `json:"key,omitempty"`
	Source string   `json:"source,omitempty"`
}

type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Notice is a non-fatal message shown to the viewer.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub accepts viewer connections.
type Hub interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
	// Active reports the number of open sessions
	Active() int
}
