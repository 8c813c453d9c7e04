// Package content produces the scene fragments shown by the virtual tour.
//
// A Catalog maps location ids to blueprint builders. Blueprints can be built ahead of time on a
// worker pool with Warm, after which Produce hands out clones so every instantiation gets its own
// node identities.
package content

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"go.uber.org/zap"
)

// ErrUnknownBlueprint is returned by Warm for ids that have no registered blueprint.
var ErrUnknownBlueprint = errors.New("content: unknown blueprint")

// Blueprint builds the scene fragment of one location from scratch.
type Blueprint func() game_object.GameObject

// Provider produces the scene fragment for a location.
type Provider interface {
	// Produce returns a new, unattached scene fragment for locationID.
	//
	// Parameters:
	//   - locationID: the location to build
	//
	// Returns:
	//   - game_object.GameObject: the fragment root, or nil when the id is unknown
	Produce(locationID string) game_object.GameObject
}

// Catalog is a Provider backed by registered blueprints and a cache of prebuilt fragments.
type Catalog interface {
	Provider

	// Register adds or replaces the blueprint for locationID. A prebuilt fragment for the id is discarded.
	//
	// Parameters:
	//   - locationID: the location the blueprint builds
	//   - blueprint: the builder
	Register(locationID string, blueprint Blueprint)

	// Has reports whether a blueprint is registered for locationID.
	Has(locationID string) bool

	// IDs returns the registered location ids in registration order.
	IDs() []string

	// Warm builds the blueprints for ids in parallel and caches the results.
	// With no ids every registered blueprint is built.
	//
	// Parameters:
	//   - ids: the locations to build
	//
	// Returns:
	//   - error: ErrUnknownBlueprint joined for every id without a blueprint
	Warm(ids ...string) error

	// Warmed reports whether a prebuilt fragment is cached for locationID.
	Warmed(locationID string) bool
}

type catalog struct {
	mu *sync.Mutex

	logger  *zap.Logger
	workers int
	pool    worker.DynamicWorkerPool

	order      []string
	blueprints map[string]Blueprint
	prebuilt   map[string]game_object.GameObject
}

var _ Catalog = &catalog{}

// NewCatalog creates an empty catalog.
//
// Parameters:
//   - options: functional options to configure the catalog
//
// Returns:
//   - Catalog: the newly created catalog
func NewCatalog(options ...CatalogBuilderOption) Catalog {
	c := &catalog{
		mu:         &sync.Mutex{},
		logger:     zap.NewNop(),
		workers:    max(runtime.NumCPU()-1, 1),
		blueprints: make(map[string]Blueprint),
		prebuilt:   make(map[string]game_object.GameObject),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// NewDefaultCatalog creates a catalog holding the blueprints of every campus location.
//
// Parameters:
//   - options: functional options to configure the catalog
//
// Returns:
//   - Catalog: the catalog with the default blueprints registered
func NewDefaultCatalog(options ...CatalogBuilderOption) Catalog {
	base := make([]CatalogBuilderOption, 0, len(DefaultLocationIDs)+len(options))
	for _, id := range DefaultLocationIDs {
		base = append(base, WithBlueprint(id, defaultBlueprints[id]))
	}
	return NewCatalog(append(base, options...)...)
}

func (c *catalog) Register(locationID string, blueprint Blueprint) {
	if blueprint == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.blueprints[locationID]; !ok {
		c.order = append(c.order, locationID)
	}
	c.blueprints[locationID] = blueprint
	delete(c.prebuilt, locationID)
}

func (c *catalog) Has(locationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.blueprints[locationID]
	return ok
}

func (c *catalog) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *catalog) Warmed(locationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.prebuilt[locationID]
	return ok
}

func (c *catalog) Produce(locationID string) game_object.GameObject {
	c.mu.Lock()
	if built, ok := c.prebuilt[locationID]; ok {
		c.mu.Unlock()
		return built.Clone()
	}
	blueprint, ok := c.blueprints[locationID]
	c.mu.Unlock()
	if !ok {
		return nil
	}

	built := blueprint()
	if built == nil {
		return nil
	}
	c.mu.Lock()
	c.prebuilt[locationID] = built
	c.mu.Unlock()
	return built.Clone()
}

func (c *catalog) Warm(ids ...string) error {
	c.mu.Lock()
	if len(ids) == 0 {
		ids = append(ids, c.order...)
	}
	type job struct {
		id        string
		blueprint Blueprint
	}
	var errs []error
	jobs := make([]job, 0, len(ids))
	for _, id := range ids {
		b, ok := c.blueprints[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBlueprint, id))
			continue
		}
		if _, done := c.prebuilt[id]; done {
			continue
		}
		jobs = append(jobs, job{id: id, blueprint: b})
	}
	if c.pool == nil && len(jobs) > 0 {
		c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	}
	pool := c.pool
	c.mu.Unlock()

	start := time.Now()
	wg := &sync.WaitGroup{}
	for taskID, j := range jobs {
		wg.Add(1)
		jCap := j
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				built := jCap.blueprint()
				if built == nil {
					return nil, nil
				}
				c.mu.Lock()
				c.prebuilt[jCap.id] = built
				c.mu.Unlock()
				return nil, nil
			},
		})
	}
	wg.Wait()

	if len(jobs) > 0 {
		c.logger.Debug("content warmed",
			zap.Int("blueprints", len(jobs)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return errors.Join(errs...)
}
