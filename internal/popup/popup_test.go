package popup

import "testing"

func TestNavigationIsCyclic(t *testing.T) {
	items := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}

	for start := range items {
		p := New(nil)
		p.Open(items, start)
		for i := 0; i < len(items); i++ {
			p.Next()
		}
		if got := p.State().Index; got != start {
			t.Fatalf("after %d nexts from %d index = %d", len(items), start, got)
		}
		for i := 0; i < len(items); i++ {
			p.Prev()
		}
		if got := p.State().Index; got != start {
			t.Fatalf("after %d prevs from %d index = %d", len(items), start, got)
		}
	}
}

func TestWraparound(t *testing.T) {
	p := New(nil)
	p.Open([]string{"a", "b", "c"}, 0)

	if s := p.Prev(); s.Index != 2 || s.URL != "c" {
		t.Fatalf("prev from 0 = %+v", s)
	}
	if s := p.Next(); s.Index != 0 || s.URL != "a" {
		t.Fatalf("next from last = %+v", s)
	}
}

func TestEmptyListIsSafe(t *testing.T) {
	p := New(nil)
	p.Open(nil, 3)

	p.Next()
	p.Prev()
	if s := p.State(); s.Index != 0 || s.URL != "" || !s.Visible {
		t.Fatalf("unexpected state %+v", s)
	}

	var q Popup
	q.Next()
	q.Prev()
	if q.State().Index != 0 {
		t.Fatal("zero value popup should stay at 0")
	}
}

func TestOpenClampsStart(t *testing.T) {
	p := New(nil)
	if s := p.Open([]string{"a", "b"}, 9); s.Index != 1 {
		t.Fatalf("index = %d, want 1", s.Index)
	}
	if s := p.Open([]string{"a", "b"}, -1); s.Index != 0 {
		t.Fatalf("index = %d, want 0", s.Index)
	}
}

func TestKeysOnlyWhileVisible(t *testing.T) {
	var shown []State
	p := New(func(s State) { shown = append(shown, s) })

	if p.HandleKey(KeyRight) {
		t.Fatal("hidden lightbox must ignore keys")
	}
	if len(shown) != 0 {
		t.Fatal("nothing should render while hidden")
	}

	p.Open([]string{"a", "b"}, 0)
	if !p.HandleKey(KeyRight) || p.State().Index != 1 {
		t.Fatal("right arrow should advance")
	}
	if !p.HandleKey(KeyLeft) || p.State().Index != 0 {
		t.Fatal("left arrow should go back")
	}
	if p.HandleKey("Enter") {
		t.Fatal("unrelated keys are not consumed")
	}
	if !p.HandleKey(KeyEscape) {
		t.Fatal("escape should close")
	}
	s := p.State()
	if s.Visible || s.URL != "" || s.Count != 0 {
		t.Fatalf("closed lightbox still holds an image: %+v", s)
	}
	if p.HandleKey(KeyLeft) {
		t.Fatal("closed lightbox must ignore keys")
	}
	if len(shown) != 4 {
		t.Fatalf("renders = %d, want 4", len(shown))
	}
}
