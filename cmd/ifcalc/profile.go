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

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the planning profile",
}

var (
	profUnits          string
	profGender         string
	profAge            int
	profHeightFt       float64
	profHeightIn       float64
	profHeightCm       float64
	profWeightLbs      float64
	profWeightKg       float64
	profBodyFat        float64
	profClearBodyFat   bool
	profWaist          float64
	profClearWaist     bool
	profActivity       string
	profDays           int
	profWorkouts       int
	profRestSplit      float64
	profWorkoutSplit   float64
	profRestProtein    float64
	profWorkoutProtein float64
	profRestFatSplit   float64
	profWorkoutFat     float64
	profJSON           bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields (unset flags keep their stored values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			p, err := service.LoadProfile(ctx, kv)
			if err != nil {
				return err
			}
			if err := applyProfileFlags(cmd, &p); err != nil {
				return err
			}
			saved, err := service.SaveProfile(ctx, kv, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved profile")
			printProfile(cmd, saved)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			p, err := service.LoadProfile(ctx, kv)
			if err != nil {
				return err
			}
			if profJSON {
				b, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal profile json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printProfile(cmd, p)
			return nil
		})
	},
}

func applyProfileFlags(cmd *cobra.Command, p *model.Profile) error {
	f := cmd.Flags()
	if f.Changed("units") {
		u, err := model.ParseUnitSystem(profUnits)
		if err != nil {
			return err
		}
		p.UnitSystem = u
	}
	if f.Changed("gender") {
		g, err := model.ParseGender(profGender)
		if err != nil {
			return err
		}
		p.Gender = g
	}
	if f.Changed("activity") {
		a, err := model.ParseActivityLevel(profActivity)
		if err != nil {
			return err
		}
		p.Activity = a
	}
	if f.Changed("age") {
		p.Age = profAge
	}
	if f.Changed("height-ft") {
		p.HeightFt = profHeightFt
	}
	if f.Changed("height-in") {
		p.HeightIn = profHeightIn
	}
	if f.Changed("height-cm") {
		p.HeightCm = profHeightCm
	}
	if f.Changed("weight-lbs") {
		p.WeightLbs = profWeightLbs
	}
	if f.Changed("weight-kg") {
		p.WeightKg = profWeightKg
	}
	if profClearBodyFat {
		p.BodyFatPct = nil
	} else if v := optionalFloat(cmd, "body-fat", profBodyFat); v != nil {
		p.BodyFatPct = v
	}
	if profClearWaist {
		p.Waist = nil
	} else if v := optionalFloat(cmd, "waist", profWaist); v != nil {
		p.Waist = v
	}
	if f.Changed("days") {
		p.DaysPerCycle = profDays
	}
	if f.Changed("workouts") {
		p.WorkoutsPerWeek = profWorkouts
	}
	if f.Changed("rest-split") {
		p.RestCaloriesSplit = profRestSplit
	}
	if f.Changed("workout-split") {
		p.WorkoutCaloriesSplit = profWorkoutSplit
	}
	if f.Changed("rest-protein") {
		p.RestProteinG = profRestProtein
	}
	if f.Changed("workout-protein") {
		p.WorkoutProteinG = profWorkoutProtein
	}
	if f.Changed("rest-fat-split") {
		p.RestFatSplitPct = profRestFatSplit
	}
	if f.Changed("workout-fat-split") {
		p.WorkoutFatSplitPct = profWorkoutFat
	}
	return nil
}

func printProfile(cmd *cobra.Command, p model.Profile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Units: %s\n", p.UnitSystem)
	fmt.Fprintf(out, "Gender: %s | Age: %d\n", p.Gender, p.Age)
	if p.UnitSystem == model.Imperial {
		fmt.Fprintf(out, "Height: %.0f ft %.1f in | Weight: %.1f lbs\n", p.HeightFt, p.HeightIn, p.WeightLbs)
	} else {
		fmt.Fprintf(out, "Height: %.1f cm | Weight: %.1f kg\n", p.HeightCm, p.WeightKg)
	}
	if p.BodyFatPct != nil {
		fmt.Fprintf(out, "Body fat: %.1f%%\n", *p.BodyFatPct)
	} else {
		fmt.Fprintln(out, "Body fat: not set")
	}
	if p.Waist != nil {
		unit := "cm"
		if p.UnitSystem == model.Imperial {
			unit = "in"
		}
		fmt.Fprintf(out, "Waist: %.1f %s\n", *p.Waist, unit)
	} else {
		fmt.Fprintln(out, "Waist: not set")
	}
	fmt.Fprintf(out, "Activity: %s (x%.3f)\n", p.Activity, p.Activity.Multiplier())
	fmt.Fprintf(out, "Cycle: %d days, %d workouts\n", p.DaysPerCycle, p.WorkoutsPerWeek)
	fmt.Fprintf(out, "Rest day: %+.0f%% kcal | P %.0fg | fat split %.0f%%\n", p.RestCaloriesSplit, p.RestProteinG, p.RestFatSplitPct)
	fmt.Fprintf(out, "Workout day: %+.0f%% kcal | P %.0fg | fat split %.0f%%\n", p.WorkoutCaloriesSplit, p.WorkoutProteinG, p.WorkoutFatSplitPct)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	f := profileSetCmd.Flags()
	f.StringVar(&profUnits, "units", "", "Unit system: imperial or metric")
	f.StringVar(&profGender, "gender", "", "male or female")
	f.IntVar(&profAge, "age", 0, "Age in years")
	f.Float64Var(&profHeightFt, "height-ft", 0, "Height feet (imperial)")
	f.Float64Var(&profHeightIn, "height-in", 0, "Height inches (imperial)")
	f.Float64Var(&profHeightCm, "height-cm", 0, "Height cm (metric)")
	f.Float64Var(&profWeightLbs, "weight-lbs", 0, "Weight lbs (imperial)")
	f.Float64Var(&profWeightKg, "weight-kg", 0, "Weight kg (metric)")
	f.Float64Var(&profBodyFat, "body-fat", 0, "Body fat percent")
	f.BoolVar(&profClearBodyFat, "clear-body-fat", false, "Remove the body fat reading")
	f.Float64Var(&profWaist, "waist", 0, "Waist circumference (in for imperial, cm for metric)")
	f.BoolVar(&profClearWaist, "clear-waist", false, "Remove the waist reading")
	f.StringVar(&profActivity, "activity", "", "sedentary, lightly_active, moderately_active, very_active, or extremely_active")
	f.IntVar(&profDays, "days", 0, "Days per cycle")
	f.IntVar(&profWorkouts, "workouts", 0, "Workout days per cycle")
	f.Float64Var(&profRestSplit, "rest-split", 0, "Rest day calorie offset from TDEE in percent (e.g. -20)")
	f.Float64Var(&profWorkoutSplit, "workout-split", 0, "Workout day calorie offset from TDEE in percent (e.g. 10)")
	f.Float64Var(&profRestProtein, "rest-protein", 0, "Rest day protein grams")
	f.Float64Var(&profWorkoutProtein, "workout-protein", 0, "Workout day protein grams")
	f.Float64Var(&profRestFatSplit, "rest-fat-split", 0, "Rest day share of non-protein calories from fat (percent)")
	f.Float64Var(&profWorkoutFat, "workout-fat-split", 0, "Workout day share of non-protein calories from fat (percent)")
	profileSetCmd.MarkFlagsMutuallyExclusive("body-fat", "clear-body-fat")
	profileSetCmd.MarkFlagsMutuallyExclusive("waist", "clear-waist")

	profileShowCmd.Flags().BoolVar(&profJSON, "json", false, "Output JSON")
}
