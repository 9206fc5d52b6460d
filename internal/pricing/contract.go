// Package pricing implements closed-form Black-Scholes valuation of European
// options and a Newton-Raphson implied-volatility solver.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"option-pricer/internal/errors"
)

// OptionType selects which branch of the Black-Scholes formulas applies.
type OptionType int

const (
	// Call is the right to buy the underlying at the strike.
	Call OptionType = iota
	// Put is the right to sell the underlying at the strike.
	Put
)

// String returns the lowercase name of the option type.
func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("OptionType(%d)", int(t))
}

// Valid reports whether t is one of the two known option types.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

// ParseOptionType parses "call" or "put" (case-insensitive, "c"/"p" accepted).
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return OptionType(-1), errors.ErrInvalidOptionType
}

// Contract holds the five Black-Scholes parameters for a single European
// option scenario. A Contract is immutable once constructed; derive a variant
// with WithVolatility instead of mutating shared state, so engines and
// solvers can be used concurrently without coordination.
type Contract struct {
	Spot       float64 // S: current underlying price
	Strike     float64 // K: exercise price
	Maturity   float64 // T: time to expiry in years
	Volatility float64 // sigma: annualized volatility
	Rate       float64 // r: annualized continuously-compounded risk-free rate
}

// NewContract validates and builds a Contract. Spot, strike, maturity and
// volatility must be strictly positive and finite (sigma=0 or T=0 makes
// d1/d2 undefined). The rate may be any finite real; negative rates are valid.
func NewContract(spot, strike, maturity, volatility, rate float64) (Contract, error) {
	if err := requirePositive("spot_price", spot); err != nil {
		return Contract{}, err
	}
	if err := requirePositive("strike_price", strike); err != nil {
		return Contract{}, err
	}
	if err := requirePositive("maturity", maturity); err != nil {
		return Contract{}, err
	}
	if err := requirePositive("volatility", volatility); err != nil {
		return Contract{}, err
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Contract{}, errors.NewParameterError("interest_rate", rate, "must be a finite real")
	}
	return Contract{
		Spot:       spot,
		Strike:     strike,
		Maturity:   maturity,
		Volatility: volatility,
		Rate:       rate,
	}, nil
}

// WithVolatility returns a copy of the contract with a different volatility.
func (c Contract) WithVolatility(sigma float64) (Contract, error) {
	return NewContract(c.Spot, c.Strike, c.Maturity, sigma, c.Rate)
}

func requirePositive(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.NewParameterError(field, value, "must be a finite real")
	}
	if value <= 0 {
		return errors.NewParameterError(field, value, "must be strictly positive")
	}
	return nil
}
