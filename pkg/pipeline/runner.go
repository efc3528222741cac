package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/astrolabe/pkg/autolayout"
	"github.com/matzehuels/astrolabe/pkg/cache"
	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
	"github.com/matzehuels/astrolabe/pkg/observability"
	"github.com/matzehuels/astrolabe/pkg/placement"
)

// Runner executes canvas operations with caching, logging and hooks.
//
// A Runner holds no per-request state; one instance can serve concurrent
// callers.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Engine     autolayout.Engine
	EngineName string
	Logger     *log.Logger

	// TTL bounds how long computed layouts stay cached.
	TTL time.Duration

	// NewID generates IDs for placed nodes. Defaults to random UUIDs.
	NewID func() string
}

// NewRunner creates a runner. nil arguments fall back to a NullCache, the
// DefaultKeyer, the Graphviz engine and log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, engine autolayout.Engine, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if engine == nil {
		engine = autolayout.NewGraphvizEngine()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Engine:     engine,
		EngineName: EngineGraphviz,
		Logger:     logger,
		TTL:        cache.TTLLayout,
		NewID:      uuid.NewString,
	}
}

// PlacePrompt picks a position for a new prompt node on the canvas.
func (r *Runner) PlacePrompt(ctx context.Context, nodes []canvas.Node, s placement.Strategy) (PromptResult, error) {
	if err := validateNodes(nodes); err != nil {
		return PromptResult{}, err
	}
	if s == "" {
		s = placement.DefaultStrategy
	}

	start := time.Now()
	res := placement.Resolve(nodes, s)
	elapsed := time.Since(start)

	observability.Placement().OnPromptPlaced(ctx, string(s), len(nodes), res.Attempts, res.Overlapping, elapsed)
	if res.Overlapping {
		r.Logger.Warn("no free position found, placing anyway",
			"strategy", s, "nodes", len(nodes), "attempts", res.Attempts)
	}
	r.Logger.Debug("placed prompt",
		"strategy", s, "x", res.Position.X, "y", res.Position.Y, "attempts", res.Attempts)

	return PromptResult{
		ID:          r.NewID(),
		Position:    res.Position,
		Attempts:    res.Attempts,
		Overlapping: res.Overlapping,
	}, nil
}

// PlaceBranch positions a new node off one side of origin.
func (r *Runner) PlaceBranch(ctx context.Context, origin canvas.Node, side geometry.Side) (BranchResult, error) {
	if err := origin.Validate(); err != nil {
		return BranchResult{}, err
	}

	start := time.Now()
	b, err := placement.Branch(origin, side)
	if err != nil {
		return BranchResult{}, err
	}
	observability.Placement().OnBranchPlaced(ctx, string(side), time.Since(start))
	r.Logger.Debug("placed branch",
		"origin", origin.ID, "side", side, "x", b.Position.X, "y", b.Position.Y)

	return BranchResult{
		ID:           r.NewID(),
		Position:     b.Position,
		SourceHandle: b.SourceHandle,
		TargetHandle: b.TargetHandle,
	}, nil
}

// AutoLayoutWithCacheInfo lays out the canvas and reports whether the
// engine result came from the cache. Cache failures are logged and
// otherwise ignored.
func (r *Runner) AutoLayoutWithCacheInfo(ctx context.Context, nodes []canvas.Node, edges []canvas.Edge, settings autolayout.Settings) (LayoutResult, bool, error) {
	if err := (canvas.Canvas{Nodes: nodes, Edges: edges}).Validate(); err != nil {
		return LayoutResult{}, false, err
	}
	if err := settings.Validate(); err != nil {
		return LayoutResult{}, false, err
	}
	settings = settings.Normalize()

	hit := false
	cached := autolayout.EngineFunc(func(ctx context.Context, vs []autolayout.Vertex, as []autolayout.Arc, cfg autolayout.Config) (map[string]geometry.Point, error) {
		key, keyErr := r.layoutKey(vs, as, settings)
		if keyErr == nil {
			if centers, ok := r.loadLayout(ctx, key); ok {
				hit = true
				return centers, nil
			}
		}

		centers, err := r.Engine.Layout(ctx, vs, as, cfg)
		if err != nil {
			return nil, err
		}
		if keyErr == nil {
			r.storeLayout(ctx, key, centers)
		}
		return centers, nil
	})

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, r.EngineName, len(nodes))
	res, err := autolayout.Compute(ctx, cached, nodes, edges, settings)
	elapsed := time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, r.EngineName, elapsed, err)
	if err != nil {
		return LayoutResult{}, false, err
	}

	r.Logger.Info("computed layout",
		"nodes", len(res.Nodes),
		"edges", len(res.Edges),
		"settings", settings,
		"cached", hit,
		"duration", elapsed)

	return LayoutResult{Result: res, Cached: hit, Duration: elapsed}, hit, nil
}

// AutoLayout is AutoLayoutWithCacheInfo without the hit flag.
func (r *Runner) AutoLayout(ctx context.Context, nodes []canvas.Node, edges []canvas.Edge, settings autolayout.Settings) (LayoutResult, error) {
	res, _, err := r.AutoLayoutWithCacheInfo(ctx, nodes, edges, settings)
	return res, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) layoutKey(vs []autolayout.Vertex, as []autolayout.Arc, s autolayout.Settings) (string, error) {
	h, err := cache.HashJSON(layoutInput{Vertices: vs, Arcs: as})
	if err != nil {
		return "", err
	}
	return r.Keyer.LayoutKey(h, layoutKeyOpts(r.EngineName, s)), nil
}

func (r *Runner) loadLayout(ctx context.Context, key string) (map[string]geometry.Point, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "error", errors.Wrap(errors.ErrCodeCache, err, "get layout"))
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var centers map[string]geometry.Point
	if err := json.Unmarshal(data, &centers); err != nil {
		r.Logger.Debug("discarding corrupt cache entry", "error", err)
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return centers, true
}

func (r *Runner) storeLayout(ctx context.Context, key string, centers map[string]geometry.Point) {
	data, err := json.Marshal(centers)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Debug("cache write failed", "error", errors.Wrap(errors.ErrCodeCache, err, "set layout"))
		return
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
}

func validateNodes(nodes []canvas.Node) error {
	return canvas.Canvas{Nodes: nodes}.Validate()
}
