package pipeline

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/graph"
)

// mapCache is an in-memory cache that counts operations.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	c := newMapCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Width: 100, Height: 100, Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, squareGraph(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}
	if first.Stats.NodeCount != 4 || first.Stats.EdgeCount != 2 || first.Stats.CurvedEdges != 1 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if first.GraphHash == "" {
		t.Error("GraphHash empty")
	}

	second, err := r.Execute(ctx, squareGraph(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed cache: %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
}

func TestRunnerRefreshSkipsLookup(t *testing.T) {
	c := newMapCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := r.Layout(ctx, squareGraph(), Options{}); err != nil {
		t.Fatal(err)
	}
	gets := c.gets

	_, hit, err := r.LayoutWithCacheInfo(ctx, squareGraph(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("refresh reported a cache hit")
	}
	if c.gets != gets {
		t.Errorf("refresh performed %d lookups", c.gets-gets)
	}
}

func TestRunnerOptionsChangeKey(t *testing.T) {
	c := newMapCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := r.Layout(ctx, squareGraph(), Options{Width: 100, Height: 100}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.LayoutWithCacheInfo(ctx, squareGraph(), Options{Width: 200, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different width should miss the cache")
	}
}

func TestRunnerNaNGraphNotCached(t *testing.T) {
	c := newMapCache()
	r := NewRunner(c, nil, nil)
	g := squareGraph()
	g.Nodes[0].Value = graph.Float(math.NaN())

	if _, err := r.Layout(context.Background(), g, Options{}); err == nil {
		t.Fatal("expected degenerate layout error")
	}
	if c.gets != 0 || c.sets != 0 {
		t.Errorf("cache touched: gets=%d sets=%d", c.gets, c.sets)
	}
}

func TestRunnerScopedKeyer(t *testing.T) {
	c := newMapCache()
	a := NewRunner(c, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "a"), nil)
	b := NewRunner(c, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "b"), nil)
	ctx := context.Background()

	if _, err := a.Layout(ctx, squareGraph(), Options{}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := b.LayoutWithCacheInfo(ctx, squareGraph(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("scoped keyers should not share entries")
	}
}
