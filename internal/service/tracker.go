package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

const dailyLogKeyPrefix = "if-tracker-log-"

func dailyLogKey(date string) string {
	return dailyLogKeyPrefix + date
}

// LoadOrCreateLog returns the stored log for date, or an empty one when
// nothing usable is stored. It never writes.
func LoadOrCreateLog(ctx context.Context, kv store.Store, date string) (model.DailyLog, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return model.DailyLog{}, err
	}
	empty := model.DailyLog{Date: date, Foods: []model.FoodItem{}}

	raw, ok, err := kv.Get(ctx, dailyLogKey(date))
	if err != nil {
		return model.DailyLog{}, fmt.Errorf("load log for %s: %w", date, err)
	}
	if !ok {
		return empty, nil
	}
	var stored model.DailyLog
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Printf("[TRACKER] Corrupted log for %s, starting fresh: %v", date, err)
		return empty, nil
	}
	stored.Date = date
	if stored.Foods == nil {
		stored.Foods = []model.FoodItem{}
	}
	return stored, nil
}

// LoggedDates lists every date that has a stored log, oldest first.
func LoggedDates(ctx context.Context, kv store.Store) ([]string, error) {
	keys, err := kv.Keys(ctx, dailyLogKeyPrefix)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, dailyLogKeyPrefix))
	}
	return dates, nil
}

type FoodInput struct {
	Name    string
	Grams   float64
	Per100g model.Nutrients
}

// Portion scales per-100g values to the given grams.
func Portion(per100g model.Nutrients, grams float64) model.Nutrients {
	ratio := grams / 100
	return model.Nutrients{
		Calories: per100g.Calories * ratio,
		ProteinG: per100g.ProteinG * ratio,
		CarbsG:   per100g.CarbsG * ratio,
		FiberG:   per100g.FiberG * ratio,
		FatG:     per100g.FatG * ratio,
	}
}

// ValidatePer100g requires every per-100g value to be a finite number >= 0.
func ValidatePer100g(n model.Nutrients) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"calories", n.Calories},
		{"protein", n.ProteinG},
		{"carbs", n.CarbsG},
		{"fiber", n.FiberG},
		{"fat", n.FatG},
	} {
		if err := validateNonNegativeFloat(f.name+" per 100g", f.value); err != nil {
			return err
		}
	}
	return nil
}

// AddFood prepends a new item to the log and persists it. A blank name, a
// non-positive gram amount, or a negative or non-finite per-100g value is
// ignored: the log comes back unchanged with a nil item and no error. If
// the write fails the original log is returned.
func AddFood(ctx context.Context, kv store.Store, dl model.DailyLog, in FoodInput) (model.DailyLog, *model.FoodItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !(in.Grams > 0) || !isFinite(in.Grams) {
		return dl, nil, nil
	}
	if ValidatePer100g(in.Per100g) != nil {
		return dl, nil, nil
	}

	item := model.FoodItem{
		ID:        uuid.NewString(),
		Name:      name,
		Grams:     in.Grams,
		Per100g:   in.Per100g,
		Nutrients: Portion(in.Per100g, in.Grams),
	}

	next := model.DailyLog{Date: dl.Date, Foods: make([]model.FoodItem, 0, len(dl.Foods)+1)}
	next.Foods = append(next.Foods, item)
	next.Foods = append(next.Foods, dl.Foods...)

	if err := saveLog(ctx, kv, next); err != nil {
		return dl, nil, err
	}
	return next, &item, nil
}

// RemoveFood drops the item with the given id. An unknown id leaves the log
// untouched and reports removed=false.
func RemoveFood(ctx context.Context, kv store.Store, dl model.DailyLog, id string) (model.DailyLog, bool, error) {
	next := model.DailyLog{Date: dl.Date, Foods: make([]model.FoodItem, 0, len(dl.Foods))}
	removed := false
	for _, f := range dl.Foods {
		if f.ID == id {
			removed = true
			continue
		}
		next.Foods = append(next.Foods, f)
	}
	if !removed {
		return dl, false, nil
	}
	if err := saveLog(ctx, kv, next); err != nil {
		return dl, false, err
	}
	return next, true, nil
}

// ResetDay clears every item for the log's date and persists the empty log.
// Callers are expected to have confirmed with the user.
func ResetDay(ctx context.Context, kv store.Store, dl model.DailyLog) (model.DailyLog, error) {
	next := model.DailyLog{Date: dl.Date, Foods: []model.FoodItem{}}
	if err := saveLog(ctx, kv, next); err != nil {
		return dl, err
	}
	return next, nil
}

func saveLog(ctx context.Context, kv store.Store, dl model.DailyLog) error {
	if _, err := time.Parse(dateLayout, dl.Date); err != nil {
		return fmt.Errorf("invalid log date %q (expected YYYY-MM-DD)", dl.Date)
	}
	data, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("marshal log for %s: %w", dl.Date, err)
	}
	if err := kv.Put(ctx, dailyLogKey(dl.Date), data); err != nil {
		return fmt.Errorf("save log for %s: %w", dl.Date, err)
	}
	return nil
}

type DayTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	FiberG   float64 `json:"fiber"`
	NetCarbs float64 `json:"net_carbs"`
}

func Totals(dl model.DailyLog) DayTotals {
	var t DayTotals
	for _, f := range dl.Foods {
		t.Calories += f.Calories
		t.ProteinG += f.ProteinG
		t.CarbsG += f.CarbsG
		t.FatG += f.FatG
		t.FiberG += f.FiberG
	}
	t.NetCarbs = t.CarbsG - t.FiberG
	if t.NetCarbs < 0 {
		t.NetCarbs = 0
	}
	return t
}
