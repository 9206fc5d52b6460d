// Package cli provides the command-line interface for the option pricer.
package cli

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"option-pricer/internal/logging"
	"option-pricer/internal/models"
	"option-pricer/internal/pricing"
)

// addPricingCommands adds the valuation commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newIVCmd(app))
}

// addContractFlags registers the shared Black-Scholes parameter flags.
func addContractFlags(cmd *cobra.Command, withVol bool) {
	cmd.Flags().Float64("spot", 0, "spot price of the underlying")
	cmd.Flags().Float64("strike", 0, "strike price")
	cmd.Flags().Float64("maturity", 0, "time to expiry in years")
	if withVol {
		cmd.Flags().Float64("vol", 0, "annualized volatility as a decimal (e.g. 0.2)")
		cmd.MarkFlagRequired("vol")
	}
	cmd.Flags().Float64("rate", 0, "continuously compounded risk-free rate (e.g. 0.05)")
	cmd.Flags().String("type", "call", "option type: call or put")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("maturity")
}

// contractFromFlags builds a validated contract from the shared flags. When
// the command carries no --vol flag, vol is used instead.
func contractFromFlags(cmd *cobra.Command, vol float64) (pricing.Contract, error) {
	spot, _ := cmd.Flags().GetFloat64("spot")
	strike, _ := cmd.Flags().GetFloat64("strike")
	maturity, _ := cmd.Flags().GetFloat64("maturity")
	rate, _ := cmd.Flags().GetFloat64("rate")
	if cmd.Flags().Lookup("vol") != nil {
		vol, _ = cmd.Flags().GetFloat64("vol")
	}
	return pricing.NewContract(spot, strike, maturity, vol, rate)
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a European option",
		Long: `Compute the Black-Scholes value of a European option.

With --type both, prices the call and the put and reports the put-call
parity residual.`,
		Example: `  pricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --type call
  pricer price --spot 100 --strike 110 --maturity 0.5 --vol 0.25 --rate 0.03 --type both`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			contract, err := contractFromFlags(cmd, 0)
			if err != nil {
				output.Error("Invalid contract: %v", err)
				return err
			}

			typStr, _ := cmd.Flags().GetString("type")
			if strings.EqualFold(typStr, "both") {
				return priceBoth(cmd.Context(), app, output, contract)
			}

			typ, err := pricing.ParseOptionType(typStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			engine := pricing.NewEngine(contract)
			price, err := engine.Price(typ)
			if err != nil {
				return err
			}
			intrinsic, _ := engine.IntrinsicValue(typ)

			logging.LogValuation(app.Logger, typ.String(),
				contract.Spot, contract.Strike, contract.Maturity, contract.Volatility, contract.Rate, price)
			app.journal(cmd.Context(), &models.Valuation{
				Kind:       models.KindPrice,
				OptionType: typ.String(),
				Spot:       contract.Spot,
				Strike:     contract.Strike,
				Maturity:   contract.Maturity,
				Volatility: contract.Volatility,
				Rate:       contract.Rate,
				Price:      price,
			})

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"option_type": typ.String(),
					"contract":    contract,
					"price":       price,
					"intrinsic":   intrinsic,
				})
			}

			printContract(output, contract)
			output.Println()
			output.Bold("Price (%s): %s", typ, FormatPrice(price))
			output.Dim("Intrinsic value: %s  Time value: %s",
				FormatPrice(intrinsic), FormatPrice(price-intrinsic))
			return nil
		},
	}

	addContractFlags(cmd, true)
	return cmd
}

func priceBoth(ctx context.Context, app *App, output *Output, contract pricing.Contract) error {
	engine := pricing.NewEngine(contract)
	call, err := engine.Price(pricing.Call)
	if err != nil {
		return err
	}
	put, err := engine.Price(pricing.Put)
	if err != nil {
		return err
	}

	// price(Call) - price(Put) = S - K e^(-rT)
	forward := contract.Spot - contract.Strike*math.Exp(-contract.Rate*contract.Maturity)
	residual := call - put - forward

	logging.LogValuation(app.Logger, pricing.Call.String(),
		contract.Spot, contract.Strike, contract.Maturity, contract.Volatility, contract.Rate, call)
	logging.LogValuation(app.Logger, pricing.Put.String(),
		contract.Spot, contract.Strike, contract.Maturity, contract.Volatility, contract.Rate, put)
	for _, rec := range []struct {
		typ   pricing.OptionType
		price float64
	}{{pricing.Call, call}, {pricing.Put, put}} {
		app.journal(ctx, &models.Valuation{
			Kind:       models.KindPrice,
			OptionType: rec.typ.String(),
			Spot:       contract.Spot,
			Strike:     contract.Strike,
			Maturity:   contract.Maturity,
			Volatility: contract.Volatility,
			Rate:       contract.Rate,
			Price:      rec.price,
		})
	}

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"contract":        contract,
			"call":            call,
			"put":             put,
			"parity_residual": residual,
		})
	}

	printContract(output, contract)
	output.Println()
	table := NewTable(output, "Type", "Price")
	table.AddRow("call", FormatPrice(call))
	table.AddRow("put", FormatPrice(put))
	table.Render()
	output.Println()
	output.Dim("Put-call parity residual: %.2e", residual)
	return nil
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute price and sensitivities",
		Long: `Compute the Black-Scholes price and the full sensitivity set:
delta, gamma, theta (per year), vega and rho.`,
		Example: `  pricer greeks --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --type put`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			contract, err := contractFromFlags(cmd, 0)
			if err != nil {
				output.Error("Invalid contract: %v", err)
				return err
			}
			typStr, _ := cmd.Flags().GetString("type")
			typ, err := pricing.ParseOptionType(typStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			engine := pricing.NewEngine(contract)
			price, err := engine.Price(typ)
			if err != nil {
				return err
			}
			greeks, err := engine.AllGreeks(typ)
			if err != nil {
				return err
			}

			logging.LogValuation(app.Logger, typ.String(),
				contract.Spot, contract.Strike, contract.Maturity, contract.Volatility, contract.Rate, price)
			app.journal(cmd.Context(), &models.Valuation{
				Kind:       models.KindGreeks,
				OptionType: typ.String(),
				Spot:       contract.Spot,
				Strike:     contract.Strike,
				Maturity:   contract.Maturity,
				Volatility: contract.Volatility,
				Rate:       contract.Rate,
				Price:      price,
				Delta:      greeks.Delta,
				Gamma:      greeks.Gamma,
				Theta:      greeks.Theta,
				Vega:       greeks.Vega,
				Rho:        greeks.Rho,
			})

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"option_type": typ.String(),
					"contract":    contract,
					"price":       price,
					"greeks":      greeks,
				})
			}

			printContract(output, contract)
			output.Println()
			output.Bold("Price (%s): %s", typ, FormatPrice(price))
			output.Println()
			table := NewTable(output, "Greek", "Value", "Meaning")
			table.AddRow("Delta", FormatGreek(greeks.Delta), "price change per unit of spot")
			table.AddRow("Gamma", FormatGreek(greeks.Gamma), "delta change per unit of spot")
			table.AddRow("Theta", FormatGreek(greeks.Theta), "price decay per year")
			table.AddRow("Vega", FormatGreek(greeks.Vega), "price change per unit of volatility")
			table.AddRow("Rho", FormatGreek(greeks.Rho), "price change per unit of rate")
			table.Render()
			output.Println()
			output.Dim("Theta per calendar day: %s", FormatGreek(greeks.Theta/365))
			return nil
		},
	}

	addContractFlags(cmd, true)
	return cmd
}

func newIVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Solve for implied volatility",
		Long: `Recover the volatility implied by an observed market price using
Newton-Raphson iteration. The solver fails explicitly when the price lies
outside the no-arbitrage bounds or the iteration budget is exhausted.`,
		Example: `  pricer iv --spot 100 --strike 100 --maturity 1 --rate 0.05 --type call --market-price 10.45
  pricer iv --spot 100 --strike 95 --maturity 0.25 --rate 0.02 --type put --market-price 3.1 --guess 0.3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			marketPrice, _ := cmd.Flags().GetFloat64("market-price")
			guess, _ := cmd.Flags().GetFloat64("guess")
			tolerance, _ := cmd.Flags().GetFloat64("tolerance")
			maxIter, _ := cmd.Flags().GetInt("max-iter")

			opts := pricing.SolverOptions{
				InitialGuess:  app.Config.Solver.InitialGuess,
				Tolerance:     app.Config.Solver.Tolerance,
				MaxIterations: app.Config.Solver.MaxIterations,
				MaxVolatility: app.Config.Solver.MaxVolatility,
			}
			if guess > 0 {
				opts.InitialGuess = guess
			}
			if tolerance > 0 {
				opts.Tolerance = tolerance
			}
			if maxIter > 0 {
				opts.MaxIterations = maxIter
			}

			// The solver only uses S/K/T/r; the initial guess doubles as a
			// valid placeholder volatility for the contract.
			contract, err := contractFromFlags(cmd, opts.InitialGuess)
			if err != nil {
				output.Error("Invalid contract: %v", err)
				return err
			}
			typStr, _ := cmd.Flags().GetString("type")
			typ, err := pricing.ParseOptionType(typStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			solver := pricing.NewSolver(contract, opts)
			vol, err := solver.Solve(marketPrice, typ)
			logging.LogSolve(app.Logger, typ.String(), marketPrice, vol, err)
			if err != nil {
				output.Error("Solve failed: %v", err)
				return err
			}

			app.journal(cmd.Context(), &models.Valuation{
				Kind:        models.KindImpliedVol,
				OptionType:  typ.String(),
				Spot:        contract.Spot,
				Strike:      contract.Strike,
				Maturity:    contract.Maturity,
				Volatility:  vol,
				Rate:        contract.Rate,
				MarketPrice: marketPrice,
			})

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"option_type":  typ.String(),
					"market_price": marketPrice,
					"implied_vol":  vol,
				})
			}

			printContract(output, contract)
			output.Println()
			output.Bold("Implied volatility: %s", FormatVol(vol))
			output.Dim("Market price: %s  Tolerance: %g", FormatPrice(marketPrice), opts.Tolerance)
			return nil
		},
	}

	addContractFlags(cmd, false)
	cmd.Flags().Float64("market-price", 0, "observed option price")
	cmd.Flags().Float64("guess", 0, "starting volatility estimate (default from config)")
	cmd.Flags().Float64("tolerance", 0, "convergence tolerance (default from config)")
	cmd.Flags().Int("max-iter", 0, "iteration budget (default from config)")
	cmd.MarkFlagRequired("market-price")
	return cmd
}

func printContract(output *Output, c pricing.Contract) {
	output.Printf("  Spot: %s  Strike: %s  Maturity: %s  Vol: %s  Rate: %s\n",
		FormatPrice(c.Spot), FormatPrice(c.Strike), FormatMaturity(c.Maturity),
		FormatVol(c.Volatility), FormatRate(c.Rate))
}

// journal records a completed calculation, best-effort.
func (app *App) journal(ctx context.Context, v *models.Valuation) {
	if app.Journal == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := app.Journal.SaveValuation(ctx, v); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to journal valuation")
	}
}
