// Package popup is the lightbox: a full screen viewer navigating an
// ordered list of image urls.
package popup

import "sync"

type Key string

const (
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyEscape Key = "Escape"
)

// State is what the lightbox currently shows.
type State struct {
	Visible bool   `json:"visible"`
	Index   int    `json:"index"`
	Count   int    `json:"count"`
	URL     string `json:"url"`
}

type Popup struct {
	mu      sync.Mutex
	items   []string
	index   int
	visible bool
	onShow  func(State)
}

// New creates a hidden lightbox; onShow, if set, receives every change.
func New(onShow func(State)) *Popup {
	return &Popup{onShow: onShow}
}

// Open replaces the navigation list and shows the item at start.
func (p *Popup) Open(items []string, start int) State {
	p.mu.Lock()
	p.items = append([]string(nil), items...)
	switch {
	case len(p.items) == 0 || start < 0:
		p.index = 0
	case start >= len(p.items):
		p.index = len(p.items) - 1
	default:
		p.index = start
	}
	p.visible = true
	s := p.stateLocked()
	p.mu.Unlock()

	p.emit(s)
	return s
}

func (p *Popup) Next() State {
	return p.move(1)
}

func (p *Popup) Prev() State {
	return p.move(-1)
}

func (p *Popup) move(step int) State {
	p.mu.Lock()
	n := len(p.items)
	if n == 0 {
		s := p.stateLocked()
		p.mu.Unlock()
		return s
	}
	p.index = (p.index + step + n) % n
	s := p.stateLocked()
	p.mu.Unlock()

	p.emit(s)
	return s
}

// Close hides the lightbox and drops the displayed image.
func (p *Popup) Close() State {
	p.mu.Lock()
	p.visible = false
	p.items = nil
	p.index = 0
	s := p.stateLocked()
	p.mu.Unlock()

	p.emit(s)
	return s
}

// HandleKey applies a keyboard event. Keys are ignored while hidden; the
// return value reports whether the key was consumed.
func (p *Popup) HandleKey(k Key) bool {
	p.mu.Lock()
	visible := p.visible
	p.mu.Unlock()
	if !visible {
		return false
	}

	switch k {
	case KeyLeft:
		p.Prev()
	case KeyRight:
		p.Next()
	case KeyEscape:
		p.Close()
	default:
		return false
	}
	return true
}

func (p *Popup) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Popup) stateLocked() State {
	s := State{Visible: p.visible, Index: p.index, Count: len(p.items)}
	if p.visible && len(p.items) > 0 {
		s.URL = p.items[p.index]
	}
	return s
}

func (p *Popup) emit(s State) {
	if p.onShow != nil {
		p.onShow(s)
	}
}
