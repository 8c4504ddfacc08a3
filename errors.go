package planner

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Sentinel errors returned by planner constructors and obstacle loaders.
var (
	// ErrInvalidBounds indicates an axis whose minimum exceeds its maximum.
	ErrInvalidBounds = errors.New("planner: bounds minimum exceeds maximum")

	// ErrInvalidSampleCount indicates a negative PRM sample count.
	ErrInvalidSampleCount = errors.New("planner: num_samples must be non-negative")

	// ErrInvalidNeighborCount indicates a PRM neighbor count below one.
	ErrInvalidNeighborCount = errors.New("planner: k_neighbors must be at least 1")

	// ErrInvalidStepSize indicates a non-positive RRT step size.
	ErrInvalidStepSize = errors.New("planner: step_size must be positive")

	// ErrInvalidIterations indicates a negative RRT iteration budget.
	ErrInvalidIterations = errors.New("planner: max_iterations must be non-negative")

	// ErrInvalidGoalSampleRate indicates a goal bias outside [0, 1].
	ErrInvalidGoalSampleRate = errors.New("planner: goal_sample_rate must be within [0, 1]")

	// ErrUnknownObstacleType indicates an obstacle record with an unsupported shape kind.
	ErrUnknownObstacleType = errors.New("planner: unknown obstacle type")
)

func validateBounds(ranges ...Range) error {
	var err error
	for axis, r := range ranges {
		if !r.valid() {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidBounds, "axis %d: [%g, %g]", axis, r.Min, r.Max))
		}
	}
	return err
}
