package plantuml

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/structurizr-site/generatr/internal/workspace"
)

// DefaultCacheSize is the number of rendered diagrams kept by a CachedRenderer.
const DefaultCacheSize = 256

// CachedRenderer memoizes rendered SVG by the hash of the diagram source.
// Rebuilds of an unchanged view skip the round trip to the server.
type CachedRenderer struct {
	next  *Renderer
	cache *lru.Cache[string, []byte]
}

// NewCachedRenderer wraps next with an LRU cache of the given size.
func NewCachedRenderer(next *Renderer, size int) (*CachedRenderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create svg cache: %w", err)
	}
	return &CachedRenderer{next: next, cache: cache}, nil
}

// WithWorkspace returns a renderer for another workspace sharing this cache.
func (c *CachedRenderer) WithWorkspace(ws *workspace.Workspace) *CachedRenderer {
	r := *c.next
	r.ws = ws
	return &CachedRenderer{next: &r, cache: c.cache}
}

// Render builds the source of a view and returns its SVG, from the cache when
// a diagram with the same source was rendered before.
func (c *CachedRenderer) Render(ctx context.Context, v *workspace.View) (string, []byte, error) {
	src, err := c.next.Source(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha256.Sum256([]byte(src))
	key := hex.EncodeToString(sum[:])
	if svg, ok := c.cache.Get(key); ok {
		return src, svg, nil
	}
	svg, err := c.next.RenderSource(ctx, src)
	if err != nil {
		return "", nil, err
	}
	c.cache.Add(key, svg)
	return src, svg, nil
}

// Len reports the number of cached diagrams.
func (c *CachedRenderer) Len() int {
	return c.cache.Len()
}
