package storage

import (
	"strings"
	"testing"
	"time"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "a.jpg", want: "a.jpg"},
		{in: "2025/07/a.jpg", want: "2025/07/a.jpg"},
		{in: "x/../a.jpg", want: "a.jpg"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
		{in: "../secret", wantErr: true},
		{in: `..\secret`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := CleanPath(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CleanPath(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CleanPath(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestObjectName(t *testing.T) {
	now := time.Date(2025, 7, 14, 7, 0, 0, 0, time.UTC)

	name := ObjectName("C:\\Foto Kelas\\Study Tour 2025.PNG", ".jpg", now)
	if !strings.HasSuffix(name, "_study-tour-2025.jpg") {
		t.Fatalf("unexpected name %q", name)
	}
	if other := ObjectName("Study Tour 2025.PNG", ".jpg", now); other == name {
		t.Fatal("names should be unique")
	}
	if bare := ObjectName("???.png", ".jpg", now); strings.Contains(bare, "_") {
		t.Fatalf("empty slug should be dropped: %q", bare)
	}
}
