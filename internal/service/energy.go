package service

import "github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"

const (
	CaloriesPerGramProtein = 4
	CaloriesPerGramCarb    = 4
	CaloriesPerGramFat     = 9

	// Energy densities for weight change. 7700 kcal/kg and 3500 kcal/lb are
	// independent rules of thumb, not conversions of one another.
	CaloriesPerKgFat = 7700
	CaloriesPerLbFat = 3500
)

type MacroAmount struct {
	Grams float64 `json:"grams"`
	Cals  float64 `json:"cals"`
}

type MacroBreakdown struct {
	Calories float64     `json:"calories"`
	Protein  MacroAmount `json:"protein"`
	Fat      MacroAmount `json:"fat"`
	Carbs    MacroAmount `json:"carbs"`
}

// SplitMacros fixes protein at proteinG and divides the remaining calories
// between fat (fatSplitPct percent) and carbs. When protein alone exceeds
// dayCalories, fat and carbs are both zero.
func SplitMacros(dayCalories, proteinG, fatSplitPct float64) MacroBreakdown {
	proteinCals := proteinG * CaloriesPerGramProtein
	remaining := dayCalories - proteinCals
	if remaining < 0 {
		remaining = 0
	}
	fatCals := remaining * fatSplitPct / 100
	carbCals := remaining - fatCals

	return MacroBreakdown{
		Calories: dayCalories,
		Protein:  MacroAmount{Grams: proteinG, Cals: proteinCals},
		Fat:      MacroAmount{Grams: fatCals / CaloriesPerGramFat, Cals: fatCals},
		Carbs:    MacroAmount{Grams: carbCals / CaloriesPerGramCarb, Cals: carbCals},
	}
}

// DayConfig is the energy offset and macro split of one day type.
type DayConfig struct {
	CaloriesSplitPct float64
	ProteinG         float64
	FatSplitPct      float64
}

type PlanInput struct {
	AverageBMR      float64
	Activity        model.ActivityLevel
	DaysPerCycle    int
	WorkoutsPerWeek int
	Rest            DayConfig
	Workout         DayConfig
}

type WeeklySummary struct {
	RestDays        int     `json:"rest_days"`
	WorkoutDays     int     `json:"workout_days"`
	Intake          float64 `json:"intake"`
	Expenditure     float64 `json:"expenditure"`
	Deficit         float64 `json:"deficit"`
	WeightChangeKg  float64 `json:"weight_change_kg"`
	WeightChangeLbs float64 `json:"weight_change_lbs"`
}

type Plan struct {
	TDEE    float64        `json:"tdee"`
	Rest    MacroBreakdown `json:"rest"`
	Workout MacroBreakdown `json:"workout"`
	Weekly  WeeklySummary  `json:"weekly"`
}

// BuildPlan derives TDEE, per-day-type targets, and the weekly energy
// balance. A negative Weekly.Deficit means net loss.
func BuildPlan(in PlanInput) Plan {
	tdee := in.AverageBMR * in.Activity.Multiplier()
	restCals := tdee * (1 + in.Rest.CaloriesSplitPct/100)
	workoutCals := tdee * (1 + in.Workout.CaloriesSplitPct/100)

	restDays := in.DaysPerCycle - in.WorkoutsPerWeek
	intake := restCals*float64(restDays) + workoutCals*float64(in.WorkoutsPerWeek)
	expenditure := tdee * float64(in.DaysPerCycle)
	deficit := intake - expenditure

	return Plan{
		TDEE:    tdee,
		Rest:    SplitMacros(restCals, in.Rest.ProteinG, in.Rest.FatSplitPct),
		Workout: SplitMacros(workoutCals, in.Workout.ProteinG, in.Workout.FatSplitPct),
		Weekly: WeeklySummary{
			RestDays:        restDays,
			WorkoutDays:     in.WorkoutsPerWeek,
			Intake:          intake,
			Expenditure:     expenditure,
			Deficit:         deficit,
			WeightChangeKg:  deficit / CaloriesPerKgFat,
			WeightChangeLbs: deficit / CaloriesPerLbFat,
		},
	}
}

// Assessment bundles everything computed from a single profile.
type Assessment struct {
	Measures   BodyMeasures      `json:"measures"`
	BMR        BMR               `json:"bmr"`
	Body       BodyMetrics       `json:"body"`
	Plan       Plan              `json:"plan"`
	Projection []ProjectionPoint `json:"projection"`
}

func Assess(p model.Profile) Assessment {
	m := NormalizeProfile(p)
	bmr := EstimateBMR(m.WeightKg, m.HeightCm, p.Age, p.Gender, p.BodyFatPct)
	plan := BuildPlan(PlanInput{
		AverageBMR:      bmr.Average,
		Activity:        p.Activity,
		DaysPerCycle:    p.DaysPerCycle,
		WorkoutsPerWeek: p.WorkoutsPerWeek,
		Rest: DayConfig{
			CaloriesSplitPct: p.RestCaloriesSplit,
			ProteinG:         p.RestProteinG,
			FatSplitPct:      p.RestFatSplitPct,
		},
		Workout: DayConfig{
			CaloriesSplitPct: p.WorkoutCaloriesSplit,
			ProteinG:         p.WorkoutProteinG,
			FatSplitPct:      p.WorkoutFatSplitPct,
		},
	})
	return Assessment{
		Measures:   m,
		BMR:        bmr,
		Body:       BodyComposition(m.WeightKg, m.HeightCm, m.WaistCm, p.BodyFatPct),
		Plan:       plan,
		Projection: ProjectWeight(m.WeightKg, p.BodyFatPct, plan.Weekly.Deficit),
	}
}
