// Package models defines the data structures shared across packages.
package models

import "time"

// ValuationKind distinguishes the kinds of journaled calculations.
type ValuationKind string

const (
	// KindPrice is a plain Black-Scholes price calculation.
	KindPrice ValuationKind = "price"
	// KindGreeks is a price plus full sensitivity set.
	KindGreeks ValuationKind = "greeks"
	// KindImpliedVol is an implied-volatility solve.
	KindImpliedVol ValuationKind = "iv"
)

// Valuation is one journaled calculation: the contract inputs together with
// whatever the run produced. For KindImpliedVol rows, Volatility holds the
// solved volatility and MarketPrice the observed price it was solved from.
type Valuation struct {
	ID         int64
	CreatedAt  time.Time
	Kind       ValuationKind
	OptionType string

	Spot       float64
	Strike     float64
	Maturity   float64
	Volatility float64
	Rate       float64

	Price float64

	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64

	MarketPrice float64
}
