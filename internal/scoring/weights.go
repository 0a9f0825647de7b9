package scoring

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// weightSumTolerance is the floating tolerance for the sum-to-one invariant.
const weightSumTolerance = 1e-9

// Weights controls the contribution of each sub-score to the aggregate.
// The four weights must sum to 1.0. The defaults are initial heuristics
// carried over from manual tuning, not calibrated constants.
type Weights struct {
	Demand      float64 `json:"demand" validate:"gte=0,lte=1"`
	Competition float64 `json:"competition" validate:"gte=0,lte=1"`
	Engagement  float64 `json:"engagement" validate:"gte=0,lte=1"`
	Trend       float64 `json:"trend" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the documented default weighting:
// 30% demand, 25% competition, 25% engagement, 20% trend.
func DefaultWeights() Weights {
	return Weights{
		Demand:      0.30,
		Competition: 0.25,
		Engagement:  0.25,
		Trend:       0.20,
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Demand + w.Competition + w.Engagement + w.Trend
}

// Validate checks the per-weight ranges and the sum-to-one invariant.
// Called at configuration load, before any scoring.
func (w Weights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return err
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return fmt.Errorf("score weights must sum to 1.0, got %v", w.Sum())
	}
	return nil
}
