// Package forge looks up pull request info through the GitHub CLI for the
// browser's detail pane. Lookups are purely cosmetic: any failure, including
// gh being absent entirely, renders as "no PR" and never blocks an operation.
package forge

import (
	"context"
	"encoding/json"
	"os/exec"
	"sync"
	"time"

	"github.com/arbor-sh/arbor/internal/cmd"
)

// PR is the subset of pull request data shown in the detail pane.
type PR struct {
	Number int    `json:"number"`
	State  string `json:"state"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

type prEntry struct {
	pr        *PR // nil means "looked up, no PR"
	fetchedAt time.Time
}

// Cache caches gh availability and per-(branch, dir) PR lookups with expiry
// timestamps. It is explicit injectable state: construct one, hand it to the
// browser, and throw it away with the session. There is no process-wide
// instance.
type Cache struct {
	mu  sync.Mutex
	ttl time.Duration

	available   *bool
	availableAt time.Time

	prs map[string]prEntry

	// Seams for tests.
	now      func() time.Time
	lookPath func(name string) (string, error)
	run      func(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:      ttl,
		prs:      make(map[string]prEntry),
		now:      time.Now,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, dir string, args ...string) ([]byte, error) {
			return cmd.OutputContext(ctx, dir, "gh", args...)
		},
	}
}

// Available reports whether the gh CLI is installed, caching the answer.
func (c *Cache) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.available != nil && c.now().Sub(c.availableAt) < c.ttl {
		return *c.available
	}

	_, err := c.lookPath("gh")
	ok := err == nil
	c.available = &ok
	c.availableAt = c.now()
	return ok
}

// Lookup returns the PR for branch in dir, or nil if there is none, gh is not
// installed, or the lookup failed. Results (including "no PR") are cached per
// (branch, dir) until they expire.
func (c *Cache) Lookup(ctx context.Context, branch, dir string) *PR {
	if branch == "" || !c.Available() {
		return nil
	}

	key := branch + "\x00" + dir

	c.mu.Lock()
	if entry, ok := c.prs[key]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return entry.pr
	}
	c.mu.Unlock()

	var pr *PR
	out, err := c.run(ctx, dir, "pr", "view", branch, "--json", "number,state,title,url")
	if err == nil {
		var decoded PR
		if json.Unmarshal(out, &decoded) == nil && decoded.Number != 0 {
			pr = &decoded
		}
	}

	c.mu.Lock()
	c.prs[key] = prEntry{pr: pr, fetchedAt: c.now()}
	c.mu.Unlock()
	return pr
}
