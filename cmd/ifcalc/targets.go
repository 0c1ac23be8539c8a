package ifcalc

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage daily tracking targets",
}

var (
	tgtCalories float64
	tgtProtein  float64
	tgtCarbs    float64
	tgtFat      float64
	tgtFiber    float64
	tgtNetCarbs float64
	tgtKeto     bool
	tgtModel    string
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update tracking targets (unset flags keep their stored values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			tp, err := service.LoadTrackerProfile(ctx, kv)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			updates := 0
			for _, u := range []struct {
				flag  string
				value float64
				dst   *float64
			}{
				{"calories", tgtCalories, &tp.Targets.Calories},
				{"protein", tgtProtein, &tp.Targets.Protein},
				{"carbs", tgtCarbs, &tp.Targets.Carbs},
				{"fat", tgtFat, &tp.Targets.Fat},
				{"fiber", tgtFiber, &tp.Targets.Fiber},
				{"net-carbs", tgtNetCarbs, &tp.Targets.NetCarbs},
			} {
				if f.Changed(u.flag) {
					*u.dst = u.value
					updates++
				}
			}
			if f.Changed("keto") {
				tp.KetoMode = tgtKeto
				updates++
			}
			if f.Changed("model") {
				tp.Model = strings.TrimSpace(tgtModel)
				if tp.Model == "" {
					tp.Model = model.DefaultLabelModel
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			if err := service.SaveTrackerProfile(ctx, kv, tp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d target value(s)\n", updates)
			printTargets(cmd, tp)
			return nil
		})
	},
}

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show tracking targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			tp, err := service.LoadTrackerProfile(ctx, kv)
			if err != nil {
				return err
			}
			printTargets(cmd, tp)
			return nil
		})
	},
}

func printTargets(cmd *cobra.Command, tp model.TrackerProfile) {
	out := cmd.OutOrStdout()
	t := tp.Targets
	mode := "standard"
	if tp.KetoMode {
		mode = "keto (net carbs)"
	}
	fmt.Fprintf(out, "Mode: %s\n", mode)
	fmt.Fprintf(out, "Calories: %.0f kcal\n", t.Calories)
	fmt.Fprintf(out, "Protein: %.0fg | Fat: %.0fg | Fiber: %.0fg\n", t.Protein, t.Fat, t.Fiber)
	fmt.Fprintf(out, "Carbs: %.0fg | Net carbs: %.0fg\n", t.Carbs, t.NetCarbs)
	fmt.Fprintf(out, "Label model: %s\n", tp.Model)
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsSetCmd, targetsShowCmd)

	f := targetsSetCmd.Flags()
	f.Float64Var(&tgtCalories, "calories", 0, "Daily calorie target")
	f.Float64Var(&tgtProtein, "protein", 0, "Daily protein grams")
	f.Float64Var(&tgtCarbs, "carbs", 0, "Daily carb grams")
	f.Float64Var(&tgtFat, "fat", 0, "Daily fat grams")
	f.Float64Var(&tgtFiber, "fiber", 0, "Daily fiber grams")
	f.Float64Var(&tgtNetCarbs, "net-carbs", 0, "Daily net carb grams (keto mode)")
	f.BoolVar(&tgtKeto, "keto", false, "Track net carbs instead of total carbs")
	f.StringVar(&tgtModel, "model", "", "Model used for label scanning")
}
