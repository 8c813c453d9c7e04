package content

import "go.uber.org/zap"

// CatalogBuilderOption is a functional option applied to a catalog during construction.
type CatalogBuilderOption func(*catalog)

// WithLogger sets the logger used by the catalog.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op default
//
// Returns:
//   - CatalogBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) CatalogBuilderOption {
	return func(c *catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWorkers sets the number of goroutines Warm builds blueprints on.
// Values below 1 are ignored.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - CatalogBuilderOption: a function that sets the worker count
func WithWorkers(n int) CatalogBuilderOption {
	return func(c *catalog) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBlueprint registers a blueprint at construction time.
//
// Parameters:
//   - locationID: the location the blueprint builds
//   - blueprint: the builder
//
// Returns:
//   - CatalogBuilderOption: a function that registers the blueprint
func WithBlueprint(locationID string, blueprint Blueprint) CatalogBuilderOption {
	return func(c *catalog) {
		if blueprint == nil {
			return
		}
		if _, ok := c.blueprints[locationID]; !ok {
			c.order = append(c.order, locationID)
		}
		c.blueprints[locationID] = blueprint
	}
}
