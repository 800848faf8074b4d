package frontier

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestFrontier(t *testing.T) {
	f := New()

	if !f.ShouldVisit("https://www.mensaplan.de/index.html") {
		t.Fatalf("ShouldVisit() on empty frontier = false, want true")
	}
	f.MarkVisited("https://www.mensaplan.de/index.html")

	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.mensaplan.de/index.html", false},
		{"https://WWW.Mensaplan.DE/index.html", false},
		{"https://www.mensaplan.de/index.html#top", false},
		{"https://www.mensaplan.de/Index.html", true},
		{"https://www.mensaplan.de/mainz/index.html", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := f.ShouldVisit(tt.url); got != tt.want {
				t.Errorf("ShouldVisit(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}

	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestTryVisitClaimsOnce(t *testing.T) {
	f := New()
	var claimed atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if f.TryVisit(fmt.Sprintf("https://example.org/page#%d", i)) {
				claimed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if got := claimed.Load(); got != 1 {
		t.Errorf("TryVisit() succeeded %d times, want 1", got)
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTPS://Example.org/A#frag", "https://example.org/A"},
		{" https://example.org/ ", "https://example.org/"},
		{"://bad", "://bad"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
