// Package frontier tracks which URLs a crawl has already claimed.
package frontier

import (
	"net/url"
	"strings"
	"sync"
)

// Frontier is a visited-URL set, safe for concurrent use.
type Frontier struct {
	mu      sync.Mutex
	visited map[string]struct{}
}

func New() *Frontier {
	return &Frontier{visited: make(map[string]struct{})}
}

// ShouldVisit reports whether rawURL has not been visited yet.
func (f *Frontier) ShouldVisit(rawURL string) bool {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	_, seen := f.visited[key]
	return !seen
}

// MarkVisited records rawURL as visited.
func (f *Frontier) MarkVisited(rawURL string) {
	key := Normalize(rawURL)
	f.mu.Lock()
	f.visited[key] = struct{}{}
	f.mu.Unlock()
}

// TryVisit marks rawURL and reports true if this call was the first to do so.
// Workers use it to claim a URL without a check-then-act race.
func (f *Frontier) TryVisit(rawURL string) bool {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, seen := f.visited[key]; seen {
		return false
	}
	f.visited[key] = struct{}{}
	return true
}

// Len is the number of distinct URLs visited.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// Normalize drops the fragment and lower-cases scheme and host. Unparsable
// input is returned trimmed.
func Normalize(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
