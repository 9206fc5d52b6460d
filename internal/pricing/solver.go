package pricing

import (
	"math"

	"option-pricer/internal/errors"
)

const (
	// volFloor is the smallest volatility a Newton step is clamped to.
	// Negative volatility is meaningless, but a single overshooting step
	// should not abort the search.
	volFloor = 1e-4
	// vegaFloor is the smallest vega the Newton update can divide by.
	vegaFloor = 1e-8
)

// SolverOptions controls the implied-volatility iteration budget.
// Zero fields are replaced with the corresponding default.
type SolverOptions struct {
	InitialGuess  float64
	Tolerance     float64
	MaxIterations int
	MaxVolatility float64
}

// DefaultSolverOptions returns the standard iteration budget.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		InitialGuess:  0.2,
		Tolerance:     1e-8,
		MaxIterations: 100,
		MaxVolatility: 5.0,
	}
}

func (o SolverOptions) withDefaults() SolverOptions {
	def := DefaultSolverOptions()
	if o.InitialGuess <= 0 {
		o.InitialGuess = def.InitialGuess
	}
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.MaxVolatility <= 0 {
		o.MaxVolatility = def.MaxVolatility
	}
	return o
}

// Solver recovers the volatility implied by an observed market price using
// Newton-Raphson with vega as the derivative. It uses the spot, strike,
// maturity and rate of its contract; the contract's own volatility plays no
// role in the search.
type Solver struct {
	contract Contract
	opts     SolverOptions
}

// NewSolver creates a Solver for the given contract parameters.
func NewSolver(c Contract, opts SolverOptions) *Solver {
	return &Solver{
		contract: c,
		opts:     opts.withDefaults(),
	}
}

// Solve searches for the volatility at which the Black-Scholes price matches
// marketPrice. On success the returned volatility, fed back through an
// Engine, reproduces marketPrice within the configured tolerance. A failed
// search returns a *errors.ConvergenceError carrying the failure mode and
// the final iteration state; no sentinel value is ever returned.
func (s *Solver) Solve(marketPrice float64, typ OptionType) (float64, error) {
	if !typ.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if math.IsNaN(marketPrice) || math.IsInf(marketPrice, 0) {
		return 0, errors.NewParameterError("market_price", marketPrice, "must be a finite real")
	}

	// No volatility can reproduce a price at or outside the no-arbitrage
	// bounds; detect that before burning the iteration budget.
	lower, upper := priceBounds(s.contract, typ)
	if marketPrice <= lower || marketPrice >= upper {
		return 0, errors.NewConvergenceError(errors.ErrPriceOutOfBounds, 0, s.opts.InitialGuess, marketPrice-lower)
	}

	sigma := s.opts.InitialGuess
	diff := math.Inf(1)
	for i := 0; i < s.opts.MaxIterations; i++ {
		contract, err := s.contract.WithVolatility(sigma)
		if err != nil {
			return 0, err
		}
		engine := NewEngine(contract)

		price, err := engine.Price(typ)
		if err != nil {
			return 0, err
		}
		diff = price - marketPrice
		if math.Abs(diff) < s.opts.Tolerance {
			return sigma, nil
		}

		vega := engine.Vega()
		if vega < vegaFloor {
			return 0, errors.NewConvergenceError(errors.ErrVanishingVega, i, sigma, diff)
		}

		next := sigma - diff/vega
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, errors.NewConvergenceError(errors.ErrNoConvergence, i, sigma, diff)
		}
		// Newton can overshoot far outside the meaningful range when vega
		// is small. Damp the step toward the bound instead of jumping onto
		// it, where vega would vanish and stall the iteration.
		if next < volFloor {
			next = (sigma + volFloor) / 2
		}
		if next > s.opts.MaxVolatility {
			next = (sigma + s.opts.MaxVolatility) / 2
		}
		sigma = next
	}

	return 0, errors.NewConvergenceError(errors.ErrNoConvergence, s.opts.MaxIterations, sigma, diff)
}
