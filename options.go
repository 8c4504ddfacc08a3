package planner

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

type options struct {
	rng     *rand.Rand
	logger  *zap.SugaredLogger
	checker CollisionChecker
}

// Option configures a planner.
type Option func(*options)

// WithSeed makes the planner draw samples from a source seeded with seed.
// Two planners built with the same seed, parameters and obstacles produce
// identical results.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for sampling. The planner takes
// ownership of rng; it must not be shared with another goroutine.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithLogger sets the logger planners report construction progress to.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCollisionChecker installs a custom collision oracle. A later call to
// SetObstacles replaces it with an ObstacleField.
func WithCollisionChecker(checker CollisionChecker) Option {
	return func(o *options) {
		if checker != nil {
			o.checker = checker
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  zap.NewNop().Sugar(),
		checker: freeSpace{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}
