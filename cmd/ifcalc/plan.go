package ifcalc

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
)

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show rest and workout day targets and the weekly energy balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssessment(cmd, func(_ model.Profile, a service.Assessment) error {
			if planJSON {
				return printJSON(cmd, a.Plan)
			}
			out := cmd.OutOrStdout()
			plan := a.Plan
			fmt.Fprintf(out, "TDEE: %.0f kcal\n\n", plan.TDEE)
			fmt.Fprintln(out, "DAY\tKCAL\tPROTEIN\tFAT\tCARBS")
			printMacroRow(out, "rest", plan.Rest)
			printMacroRow(out, "workout", plan.Workout)

			w := plan.Weekly
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Week: %d rest + %d workout days\n", w.RestDays, w.WorkoutDays)
			fmt.Fprintf(out, "Intake: %.0f kcal | Expenditure: %.0f kcal\n", w.Intake, w.Expenditure)
			label := "Deficit"
			if w.Deficit > 0 {
				label = "Surplus"
			}
			fmt.Fprintf(out, "%s: %.0f kcal (%+.2f kg / %+.2f lbs per week)\n", label, w.Deficit, w.WeightChangeKg, w.WeightChangeLbs)
			return nil
		})
	},
}

func printMacroRow(out io.Writer, day string, m service.MacroBreakdown) {
	fmt.Fprintf(out, "%s\t%.0f\t%.0fg (%.0f kcal)\t%.0fg (%.0f kcal)\t%.0fg (%.0f kcal)\n",
		day, m.Calories,
		m.Protein.Grams, m.Protein.Cals,
		m.Fat.Grams, m.Fat.Cals,
		m.Carbs.Grams, m.Carbs.Cals,
	)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output JSON")
}
