package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

const (
	profileKey        = "profile"
	trackerProfileKey = "tracker-profile"
)

// ValidateProfile checks the input constraints the formulas assume. It is
// applied where a profile enters the system, not inside the formulas.
func ValidateProfile(p model.Profile) error {
	if _, err := model.ParseUnitSystem(string(p.UnitSystem)); err != nil {
		return err
	}
	if _, err := model.ParseGender(string(p.Gender)); err != nil {
		return err
	}
	if _, err := model.ParseActivityLevel(string(p.Activity)); err != nil {
		return err
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if p.UnitSystem == model.Imperial {
		if err := validatePositiveFloat("weight (lbs)", p.WeightLbs); err != nil {
			return err
		}
		if err := validateNonNegativeFloat("height (ft)", p.HeightFt); err != nil {
			return err
		}
		if err := validateNonNegativeFloat("height (in)", p.HeightIn); err != nil {
			return err
		}
		if p.HeightFt*12+p.HeightIn <= 0 {
			return fmt.Errorf("height must be > 0")
		}
	} else {
		if err := validatePositiveFloat("weight (kg)", p.WeightKg); err != nil {
			return err
		}
		if err := validatePositiveFloat("height (cm)", p.HeightCm); err != nil {
			return err
		}
	}
	if p.BodyFatPct != nil {
		if err := validatePercent("body-fat", *p.BodyFatPct); err != nil {
			return err
		}
	}
	if p.Waist != nil {
		if err := validateNonNegativeFloat("waist", *p.Waist); err != nil {
			return err
		}
	}
	if p.DaysPerCycle < 1 {
		return fmt.Errorf("days per cycle must be >= 1")
	}
	if err := validateNonNegativeInt("workouts per week", p.WorkoutsPerWeek); err != nil {
		return err
	}
	if p.WorkoutsPerWeek > p.DaysPerCycle {
		return fmt.Errorf("workouts per week (%d) cannot exceed days per cycle (%d)", p.WorkoutsPerWeek, p.DaysPerCycle)
	}
	if err := validateNonNegativeFloat("rest protein", p.RestProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("workout protein", p.WorkoutProteinG); err != nil {
		return err
	}
	if err := validatePercent("rest fat split", p.RestFatSplitPct); err != nil {
		return err
	}
	if err := validatePercent("workout fat split", p.WorkoutFatSplitPct); err != nil {
		return err
	}
	if p.RestCaloriesSplit < -100 || p.WorkoutCaloriesSplit < -100 {
		return fmt.Errorf("calorie split cannot be below -100%%")
	}
	return nil
}

// LoadProfile returns the stored profile, or the default profile when none
// has been saved or the stored record is unreadable.
func LoadProfile(ctx context.Context, kv store.Store) (model.Profile, error) {
	p := model.DefaultProfile()
	found, err := loadJSON(ctx, kv, profileKey, &p)
	if err != nil {
		return model.Profile{}, err
	}
	if !found {
		return model.DefaultProfile(), nil
	}
	return p, nil
}

// SaveProfile validates p, syncs its display units, and persists it.
func SaveProfile(ctx context.Context, kv store.Store, p model.Profile) (model.Profile, error) {
	if err := ValidateProfile(p); err != nil {
		return model.Profile{}, err
	}
	p = SyncUnits(p)
	if err := saveJSON(ctx, kv, profileKey, p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func ValidateTrackerProfile(tp model.TrackerProfile) error {
	t := tp.Targets
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"calories target", t.Calories},
		{"protein target", t.Protein},
		{"carbs target", t.Carbs},
		{"fat target", t.Fat},
		{"fiber target", t.Fiber},
		{"net carbs target", t.NetCarbs},
	} {
		if err := validateNonNegativeFloat(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func LoadTrackerProfile(ctx context.Context, kv store.Store) (model.TrackerProfile, error) {
	tp := model.DefaultTrackerProfile()
	found, err := loadJSON(ctx, kv, trackerProfileKey, &tp)
	if err != nil {
		return model.TrackerProfile{}, err
	}
	if !found {
		return model.DefaultTrackerProfile(), nil
	}
	if tp.Model == "" {
		tp.Model = model.DefaultLabelModel
	}
	return tp, nil
}

func SaveTrackerProfile(ctx context.Context, kv store.Store, tp model.TrackerProfile) error {
	if err := ValidateTrackerProfile(tp); err != nil {
		return err
	}
	return saveJSON(ctx, kv, trackerProfileKey, tp)
}

// loadJSON decodes the record at key into out. A missing or corrupt record
// reports found=false; only store failures are returned as errors.
func loadJSON(ctx context.Context, kv store.Store, key string, out any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[STORE] Corrupted record %q, ignoring: %v", key, err)
		return false, nil
	}
	return true, nil
}

func saveJSON(ctx context.Context, kv store.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return kv.Put(ctx, key, data)
}
