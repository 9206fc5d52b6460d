package pricing

import (
	"math"
	"testing"

	apperrors "option-pricer/internal/errors"
)

func TestSolverRoundTrip(t *testing.T) {
	cases := []struct {
		name                        string
		spot, strike, maturity, rate float64
		vol                         float64
		typ                         OptionType
	}{
		{"atm call", 100, 100, 1, 0.05, 0.2, Call},
		{"atm put", 100, 100, 1, 0.05, 0.2, Put},
		{"otm call high vol", 100, 130, 0.5, 0.03, 0.45, Call},
		{"itm put", 90, 110, 2, 0.02, 0.3, Put},
		{"low vol", 100, 100, 0.25, 0.01, 0.08, Call},
		{"very high vol", 100, 100, 1, 0.05, 1.2, Put},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustContract(t, tc.spot, tc.strike, tc.maturity, tc.vol, tc.rate)
			price, err := NewEngine(c).Price(tc.typ)
			if err != nil {
				t.Fatalf("Price: %v", err)
			}

			solver := NewSolver(c, DefaultSolverOptions())
			vol, err := solver.Solve(price, tc.typ)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if math.Abs(vol-tc.vol) > 1e-4 {
				t.Errorf("implied vol = %.8f, want %.8f ±1e-4", vol, tc.vol)
			}

			// The solved volatility must reproduce the market price within
			// the solver's tolerance.
			back, err := mustContractVol(t, c, vol).Price(tc.typ)
			if err != nil {
				t.Fatalf("re-pricing: %v", err)
			}
			if math.Abs(back-price) > DefaultSolverOptions().Tolerance {
				t.Errorf("re-priced %v, market %v: residual above tolerance", back, price)
			}
		})
	}
}

func mustContractVol(t *testing.T, c Contract, vol float64) *Engine {
	t.Helper()
	solved, err := c.WithVolatility(vol)
	if err != nil {
		t.Fatalf("WithVolatility(%g): %v", vol, err)
	}
	return NewEngine(solved)
}

func TestSolverFarInitialGuessStillConverges(t *testing.T) {
	c := mustContract(t, 100, 100, 1, 0.35, 0.05)
	price, _ := NewEngine(c).Price(Call)

	for _, guess := range []float64{0.01, 0.2, 2.0, 4.5} {
		opts := DefaultSolverOptions()
		opts.InitialGuess = guess
		vol, err := NewSolver(c, opts).Solve(price, Call)
		if err != nil {
			t.Errorf("guess %g: %v", guess, err)
			continue
		}
		if math.Abs(vol-0.35) > 1e-4 {
			t.Errorf("guess %g: implied vol %v, want 0.35", guess, vol)
		}
	}
}

func TestSolverRejectsPriceAboveUpperBound(t *testing.T) {
	c := mustContract(t, 100, 100, 1, 0.2, 0.05)
	solver := NewSolver(c, DefaultSolverOptions())

	// A call can never be worth more than the spot.
	_, err := solver.Solve(c.Spot+1, Call)
	if err == nil {
		t.Fatal("expected failure for market price above spot")
	}
	if !apperrors.Is(err, apperrors.ErrPriceOutOfBounds) {
		t.Errorf("got %v, want ErrPriceOutOfBounds", err)
	}
	var convErr *apperrors.ConvergenceError
	if !apperrors.As(err, &convErr) {
		t.Errorf("error %v is not a *ConvergenceError", err)
	}

	// A put can never be worth more than the discounted strike.
	if _, err := solver.Solve(c.Strike, Put); !apperrors.Is(err, apperrors.ErrPriceOutOfBounds) {
		t.Errorf("put above bound: got %v, want ErrPriceOutOfBounds", err)
	}
}

func TestSolverRejectsPriceBelowIntrinsic(t *testing.T) {
	c := mustContract(t, 100, 50, 1, 0.2, 0.05)
	solver := NewSolver(c, DefaultSolverOptions())

	// Discounted intrinsic is 100 - 50*e^-0.05 ≈ 52.44.
	_, err := solver.Solve(52.0, Call)
	if !apperrors.Is(err, apperrors.ErrPriceOutOfBounds) {
		t.Errorf("got %v, want ErrPriceOutOfBounds", err)
	}

	if _, err := solver.Solve(-1, Put); !apperrors.Is(err, apperrors.ErrPriceOutOfBounds) {
		t.Errorf("negative price: got %v, want ErrPriceOutOfBounds", err)
	}
}

func TestSolverVanishingVega(t *testing.T) {
	// Deep out-of-the-money with almost no time left: vega is zero to
	// machine precision at any reasonable volatility.
	c := mustContract(t, 100, 300, 0.01, 0.2, 0)
	solver := NewSolver(c, DefaultSolverOptions())

	_, err := solver.Solve(0.5, Call)
	if err == nil {
		t.Fatal("expected failure, got convergence")
	}
	if !apperrors.Is(err, apperrors.ErrVanishingVega) {
		t.Errorf("got %v, want ErrVanishingVega", err)
	}
}

func TestSolverExhaustsIterationBudget(t *testing.T) {
	c := mustContract(t, 100, 100, 1, 0.2, 0.05)
	target, _ := NewEngine(mustContract(t, 100, 100, 1, 1.0, 0.05)).Price(Call)

	opts := DefaultSolverOptions()
	opts.MaxIterations = 1
	opts.Tolerance = 1e-12

	_, err := NewSolver(c, opts).Solve(target, Call)
	if !apperrors.Is(err, apperrors.ErrNoConvergence) {
		t.Fatalf("got %v, want ErrNoConvergence", err)
	}

	var convErr *apperrors.ConvergenceError
	if !apperrors.As(err, &convErr) {
		t.Fatalf("error %v is not a *ConvergenceError", err)
	}
	if convErr.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", convErr.Iterations)
	}
}

func TestSolverRejectsBadInputs(t *testing.T) {
	c := mustContract(t, 100, 100, 1, 0.2, 0.05)
	solver := NewSolver(c, DefaultSolverOptions())

	if _, err := solver.Solve(10, OptionType(3)); !apperrors.Is(err, apperrors.ErrInvalidOptionType) {
		t.Errorf("bad type: got %v, want ErrInvalidOptionType", err)
	}
	if _, err := solver.Solve(math.NaN(), Call); !apperrors.Is(err, apperrors.ErrInvalidParameter) {
		t.Errorf("NaN price: got %v, want ErrInvalidParameter", err)
	}
	if _, err := solver.Solve(math.Inf(1), Call); !apperrors.Is(err, apperrors.ErrInvalidParameter) {
		t.Errorf("Inf price: got %v, want ErrInvalidParameter", err)
	}
}

func TestSolverOptionsZeroFieldsGetDefaults(t *testing.T) {
	opts := SolverOptions{}.withDefaults()
	def := DefaultSolverOptions()
	if opts != def {
		t.Errorf("withDefaults() = %+v, want %+v", opts, def)
	}

	opts = SolverOptions{InitialGuess: 0.5}.withDefaults()
	if opts.InitialGuess != 0.5 || opts.MaxIterations != def.MaxIterations {
		t.Errorf("partial options not filled: %+v", opts)
	}
}
