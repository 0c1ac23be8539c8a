package ifcalc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var metricsJSON bool

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show BMR estimates, TDEE, and body composition for the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssessment(cmd, func(p model.Profile, a service.Assessment) error {
			if metricsJSON {
				return printJSON(cmd, struct {
					BMR  service.BMR         `json:"bmr"`
					TDEE float64             `json:"tdee"`
					Body service.BodyMetrics `json:"body"`
				}{a.BMR, a.Plan.TDEE, a.Body})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "BMR (kcal/day)")
			fmt.Fprintf(out, "  Mifflin-St Jeor: %.0f\n", a.BMR.Mifflin)
			fmt.Fprintf(out, "  Harris-Benedict: %.0f\n", a.BMR.Harris)
			if a.BMR.Katch > 0 {
				fmt.Fprintf(out, "  Katch-McArdle:   %.0f\n", a.BMR.Katch)
			} else {
				fmt.Fprintln(out, "  Katch-McArdle:   n/a (no body fat)")
			}
			fmt.Fprintf(out, "  Average:         %.0f\n", a.BMR.Average)
			fmt.Fprintf(out, "TDEE: %.0f kcal/day (%s x%.3f)\n", a.Plan.TDEE, p.Activity, p.Activity.Multiplier())

			b := a.Body
			fmt.Fprintf(out, "BMI: %.1f (%s)\n", b.BMI, b.BMICategory)
			fmt.Fprintf(out, "Ideal weight (BMI 22): %.1f kg / %.1f lbs\n", b.IdealWeightKg, b.IdealWeightKg*service.KgToLbs)
			if b.LeanMassKg != nil && b.FatMassKg != nil {
				fmt.Fprintf(out, "Lean mass: %.1f kg | Fat mass: %.1f kg\n", *b.LeanMassKg, *b.FatMassKg)
			}
			if b.WaistRisk == service.WaistRiskUnknown {
				fmt.Fprintln(out, "Waist-to-height: n/a")
			} else {
				fmt.Fprintf(out, "Waist-to-height: %.2f (%s)\n", b.WaistToHeight, b.WaistRisk)
			}
			return nil
		})
	},
}

func withAssessment(cmd *cobra.Command, run func(model.Profile, service.Assessment) error) error {
	return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
		p, err := service.LoadProfile(ctx, kv)
		if err != nil {
			return err
		}
		return run(p, service.Assess(p))
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output JSON")
}
