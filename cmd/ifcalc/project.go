package ifcalc

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
)

var projectJSON bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project weight over the next 12 weeks at the planned energy balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssessment(cmd, func(p model.Profile, a service.Assessment) error {
			if projectJSON {
				return printJSON(cmd, a.Projection)
			}
			out := cmd.OutOrStdout()
			imperial := p.UnitSystem == model.Imperial
			if imperial {
				fmt.Fprintln(out, "WEEK\tWEIGHT (lbs)\tCHANGE (lbs)\tBODY FAT")
			} else {
				fmt.Fprintln(out, "WEEK\tWEIGHT (kg)\tCHANGE (kg)\tBODY FAT")
			}
			for _, pt := range a.Projection {
				weight, change := pt.WeightKg, pt.CumulativeChangeKg
				if imperial {
					weight, change = pt.WeightLbs, pt.CumulativeChangeKg*service.KgToLbs
				}
				bf := "-"
				if pt.BodyFatPct != nil {
					bf = fmt.Sprintf("%.1f%%", *pt.BodyFatPct)
				}
				fmt.Fprintf(out, "%d\t%.1f\t%+.1f\t%s\n", pt.Week, weight, change, bf)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "Output JSON")
}
