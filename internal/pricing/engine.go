package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"option-pricer/internal/errors"
)

// stdNormal supplies N(x) and N'(x). distuv distributions are plain value
// types with no internal state, safe for concurrent readers.
var stdNormal = distuv.UnitNormal

// Greeks bundles the sensitivities of an option price to the model inputs.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// Engine prices a European option and its Greeks under the Black-Scholes
// model. It holds a single immutable Contract and is stateless otherwise;
// build a new Engine to price a different scenario.
type Engine struct {
	c Contract
}

// NewEngine creates an Engine from a validated Contract.
func NewEngine(c Contract) *Engine {
	return &Engine{c: c}
}

// Contract returns the contract the engine prices.
func (e *Engine) Contract() Contract {
	return e.c
}

// terms are the intermediate quantities every formula is built from. They are
// recomputed on each call from the immutable contract, so all operations on
// the same contract agree bit-for-bit.
type terms struct {
	d1       float64
	d2       float64
	sqrtT    float64
	discount float64 // e^(-rT)
}

func evalTerms(c Contract) terms {
	sqrtT := math.Sqrt(c.Maturity)
	sd := c.Volatility * sqrtT
	d1 := (math.Log(c.Spot/c.Strike) + (c.Rate+0.5*c.Volatility*c.Volatility)*c.Maturity) / sd
	return terms{
		d1:       d1,
		d2:       d1 - sd,
		sqrtT:    sqrtT,
		discount: math.Exp(-c.Rate * c.Maturity),
	}
}

// Price returns the Black-Scholes value of the option.
//
// Call: S·N(d1) − K·e^(−rT)·N(d2)
// Put:  K·e^(−rT)·N(−d2) − S·N(−d1)
func (e *Engine) Price(typ OptionType) (float64, error) {
	if !typ.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	t := evalTerms(e.c)
	if typ == Call {
		return e.c.Spot*stdNormal.CDF(t.d1) - e.c.Strike*t.discount*stdNormal.CDF(t.d2), nil
	}
	return e.c.Strike*t.discount*stdNormal.CDF(-t.d2) - e.c.Spot*stdNormal.CDF(-t.d1), nil
}

// Delta returns the sensitivity of the price to the spot.
// Call deltas lie in (0,1), put deltas in (-1,0).
func (e *Engine) Delta(typ OptionType) (float64, error) {
	if !typ.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	t := evalTerms(e.c)
	if typ == Call {
		return stdNormal.CDF(t.d1), nil
	}
	return stdNormal.CDF(t.d1) - 1, nil
}

// Gamma returns N'(d1) / (S·σ·√T). It is identical for calls and puts and
// always positive for a valid contract.
func (e *Engine) Gamma() float64 {
	t := evalTerms(e.c)
	return stdNormal.Prob(t.d1) / (e.c.Spot * e.c.Volatility * t.sqrtT)
}

// Theta returns the time decay of the option, expressed per year. Callers
// wanting per-day decay divide by the day count themselves.
func (e *Engine) Theta(typ OptionType) (float64, error) {
	if !typ.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	t := evalTerms(e.c)
	decay := -(e.c.Spot * stdNormal.Prob(t.d1) * e.c.Volatility) / (2 * t.sqrtT)
	carry := e.c.Rate * e.c.Strike * t.discount
	if typ == Call {
		return decay - carry*stdNormal.CDF(t.d2), nil
	}
	return decay + carry*stdNormal.CDF(-t.d2), nil
}

// Vega returns S·√T·N'(d1), the sensitivity of the price to volatility.
// It is identical for calls and puts and never negative.
func (e *Engine) Vega() float64 {
	t := evalTerms(e.c)
	return e.c.Spot * t.sqrtT * stdNormal.Prob(t.d1)
}

// Rho returns the sensitivity of the price to the risk-free rate.
func (e *Engine) Rho(typ OptionType) (float64, error) {
	if !typ.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	t := evalTerms(e.c)
	if typ == Call {
		return e.c.Strike * e.c.Maturity * t.discount * stdNormal.CDF(t.d2), nil
	}
	return -e.c.Strike * e.c.Maturity * t.discount * stdNormal.CDF(-t.d2), nil
}

// AllGreeks computes the full sensitivity set in one call.
func (e *Engine) AllGreeks(typ OptionType) (Greeks, error) {
	if !typ.Valid() {
		return Greeks{}, errors.ErrInvalidOptionType
	}
	delta, _ := e.Delta(typ)
	theta, _ := e.Theta(typ)
	rho, _ := e.Rho(typ)
	return Greeks{
		Delta: delta,
		Gamma: e.Gamma(),
		Theta: theta,
		Vega:  e.Vega(),
		Rho:   rho,
	}, nil
}

// IntrinsicValue returns the undiscounted exercise value of the option.
func (e *Engine) IntrinsicValue(typ OptionType) (float64, error) {
	if !typ.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if typ == Call {
		return math.Max(0, e.c.Spot-e.c.Strike), nil
	}
	return math.Max(0, e.c.Strike-e.c.Spot), nil
}

// priceBounds returns the open no-arbitrage interval (lower, upper) a
// Black-Scholes price must lie in: discounted intrinsic value below, S for
// calls and K·e^(−rT) for puts above.
func priceBounds(c Contract, typ OptionType) (lower, upper float64) {
	discountedStrike := c.Strike * math.Exp(-c.Rate*c.Maturity)
	if typ == Call {
		return math.Max(0, c.Spot-discountedStrike), c.Spot
	}
	return math.Max(0, discountedStrike-c.Spot), discountedStrike
}
