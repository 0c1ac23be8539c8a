package model

import "fmt"

type UnitSystem string

const (
	Imperial UnitSystem = "imperial"
	Metric   UnitSystem = "metric"
)

func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case Imperial, Metric:
		return UnitSystem(s), nil
	default:
		return "", fmt.Errorf("invalid unit system %q (use imperial or metric)", s)
	}
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case Male, Female:
		return Gender(s), nil
	default:
		return "", fmt.Errorf("invalid gender %q (use male or female)", s)
	}
}

// ActivityLevel is one of a fixed set of named activity bands. The TDEE
// multiplier is attached to the name, never stored on its own.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtremelyActive  ActivityLevel = "extremely_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtremelyActive:  1.9,
}

// ActivityLevels lists the levels from least to most active.
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtremelyActive}

// Multiplier returns the TDEE factor for a, or 0 for an unknown level.
func (a ActivityLevel) Multiplier() float64 {
	return activityMultipliers[a]
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	a := ActivityLevel(s)
	if _, ok := activityMultipliers[a]; !ok {
		return "", fmt.Errorf("invalid activity level %q (use sedentary, lightly_active, moderately_active, very_active, or extremely_active)", s)
	}
	return a, nil
}

// Profile is the planning input. Height and weight are kept in both unit
// systems; only the pair matching UnitSystem is read by calculations.
type Profile struct {
	UnitSystem UnitSystem    `json:"unit_system"`
	Gender     Gender        `json:"gender"`
	Age        int           `json:"age"`
	HeightFt   float64       `json:"height_ft"`
	HeightIn   float64       `json:"height_in"`
	HeightCm   float64       `json:"height_cm"`
	WeightLbs  float64       `json:"weight_lbs"`
	WeightKg   float64       `json:"weight_kg"`
	BodyFatPct *float64      `json:"body_fat_pct,omitempty"`
	Waist      *float64      `json:"waist,omitempty"`
	Activity   ActivityLevel `json:"activity_level"`

	DaysPerCycle    int `json:"days_per_cycle"`
	WorkoutsPerWeek int `json:"workouts_per_week"`

	RestCaloriesSplit    float64 `json:"rest_calories_split"`
	WorkoutCaloriesSplit float64 `json:"workout_calories_split"`

	RestProteinG       float64 `json:"rest_protein_g"`
	WorkoutProteinG    float64 `json:"workout_protein_g"`
	RestFatSplitPct    float64 `json:"rest_fat_split_pct"`
	WorkoutFatSplitPct float64 `json:"workout_fat_split_pct"`
}

func DefaultProfile() Profile {
	return Profile{
		UnitSystem:           Imperial,
		Gender:               Male,
		Age:                  30,
		HeightFt:             5,
		HeightIn:             10,
		HeightCm:             178,
		WeightLbs:            180,
		WeightKg:             81.6,
		Activity:             ModeratelyActive,
		DaysPerCycle:         7,
		WorkoutsPerWeek:      3,
		RestCaloriesSplit:    -20,
		WorkoutCaloriesSplit: 10,
		RestProteinG:         160,
		WorkoutProteinG:      160,
		RestFatSplitPct:      75,
		WorkoutFatSplitPct:   25,
	}
}

type TrackerTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	NetCarbs float64 `json:"net_carbs"`
}

// TrackerProfile configures daily tracking. KetoMode tracks net carbs
// instead of total carbs.
type TrackerProfile struct {
	Model    string         `json:"model"`
	Targets  TrackerTargets `json:"targets"`
	KetoMode bool           `json:"keto_mode"`
}

const DefaultLabelModel = "gemini-2.5-flash"

func DefaultTrackerProfile() TrackerProfile {
	return TrackerProfile{
		Model:    DefaultLabelModel,
		KetoMode: false,
		Targets: TrackerTargets{
			Calories: 2000,
			Protein:  150,
			Carbs:    200,
			Fat:      65,
			Fiber:    30,
			NetCarbs: 50,
		},
	}
}

// Nutrients is used both for per-100g reference values and for the
// absolute amounts of a logged portion.
type Nutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FiberG   float64 `json:"fiber"`
	FatG     float64 `json:"fat"`
}

// FoodItem is one logged portion. The embedded Nutrients hold the amounts
// for Grams eaten and are what day totals sum; Per100g is kept for editing.
type FoodItem struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Grams   float64   `json:"grams"`
	Per100g Nutrients `json:"per100g"`
	Nutrients
}

type DailyLog struct {
	Date  string     `json:"date"`
	Foods []FoodItem `json:"foods"`
}
