// Package cli provides the command-line interface for the option pricer.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
	"option-pricer/internal/store"
)

// addJournalCommands adds valuation journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Valuation journal management",
		Long:  "Review and prune the record of past calculations.",
	}

	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalClearCmd(app))

	rootCmd.AddCommand(cmd)
}

func newJournalListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent calculations",
		Example: `  pricer journal list
  pricer journal list --kind iv --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if app.Journal == nil {
				output.Warning("Journal not available. Check journal.enabled in the config.")
				return apperrors.ErrJournalDisabled
			}

			limit, _ := cmd.Flags().GetInt("limit")
			kind, _ := cmd.Flags().GetString("kind")
			optType, _ := cmd.Flags().GetString("type")

			valuations, err := app.Journal.ListValuations(ctx, store.ValuationFilter{
				Kind:       models.ValuationKind(kind),
				OptionType: optType,
				Limit:      limit,
			})
			if err != nil {
				output.Error("Failed to read journal: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(valuations)
			}

			if len(valuations) == 0 {
				output.Info("No calculations recorded yet.")
				return nil
			}

			output.Bold("Valuation Journal")
			output.Println()
			table := NewTable(output, "When", "Kind", "Type", "Spot", "Strike", "T", "Vol", "Rate", "Result")
			for _, v := range valuations {
				result := FormatPrice(v.Price)
				if v.Kind == models.KindImpliedVol {
					result = FormatVol(v.Volatility)
				}
				table.AddRow(
					FormatDateTime(v.CreatedAt),
					string(v.Kind),
					v.OptionType,
					FormatPrice(v.Spot),
					FormatPrice(v.Strike),
					FormatMaturity(v.Maturity),
					FormatVol(v.Volatility),
					FormatRate(v.Rate),
					result,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum rows to show")
	cmd.Flags().String("kind", "", "filter by kind: price, greeks, iv")
	cmd.Flags().String("type", "", "filter by option type: call, put")
	return cmd
}

func newJournalClearCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete journal rows",
		Long:  "Delete journaled calculations, either everything or only rows older than --older-than days.",
		Example: `  pricer journal clear
  pricer journal clear --older-than 90`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if app.Journal == nil {
				output.Warning("Journal not available. Check journal.enabled in the config.")
				return apperrors.ErrJournalDisabled
			}

			days, _ := cmd.Flags().GetInt("older-than")
			before := time.Now().UTC()
			if days > 0 {
				before = before.AddDate(0, 0, -days)
			}

			removed, err := app.Journal.Prune(ctx, before)
			if err != nil {
				output.Error("Failed to prune journal: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]int64{"removed": removed})
			}
			output.Success("Removed %d journal row(s)", removed)
			return nil
		},
	}

	cmd.Flags().Int("older-than", 0, "only delete rows older than this many days (0: delete all)")
	return cmd
}
