package service

import (
	"context"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

type MetricProgress struct {
	Label    string  `json:"label"`
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

// TrackerStatus compares one day's totals with the tracker targets. The
// carb metric is net carbs in keto mode and total carbs otherwise.
type TrackerStatus struct {
	Date              string               `json:"date"`
	Totals            DayTotals            `json:"totals"`
	Targets           model.TrackerTargets `json:"targets"`
	KetoMode          bool                 `json:"keto_mode"`
	RemainingCalories float64              `json:"remaining_calories"`
	Calories          MetricProgress       `json:"calories"`
	Protein           MetricProgress       `json:"protein"`
	Fat               MetricProgress       `json:"fat"`
	Carbs             MetricProgress       `json:"carbs"`
	Fiber             MetricProgress       `json:"fiber"`
}

func Progress(date string, totals DayTotals, tp model.TrackerProfile) TrackerStatus {
	t := tp.Targets
	status := TrackerStatus{
		Date:              date,
		Totals:            totals,
		Targets:           t,
		KetoMode:          tp.KetoMode,
		RemainingCalories: t.Calories - totals.Calories,
		Calories:          progressOf("Calories", totals.Calories, t.Calories),
		Protein:           progressOf("Protein", totals.ProteinG, t.Protein),
		Fat:               progressOf("Fat", totals.FatG, t.Fat),
		Fiber:             progressOf("Fiber", totals.FiberG, t.Fiber),
	}
	if tp.KetoMode {
		status.Carbs = progressOf("Net Carbs", totals.NetCarbs, t.NetCarbs)
	} else {
		status.Carbs = progressOf("Carbs", totals.CarbsG, t.Carbs)
	}
	return status
}

// progressOf reports consumed/target as a percentage clamped to 0..100. A
// zero target reports 0.
func progressOf(label string, consumed, target float64) MetricProgress {
	var pct float64
	if target > 0 {
		pct = consumed / target * 100
	}
	if pct < 0 || !isFinite(pct) {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return MetricProgress{Label: label, Consumed: consumed, Target: target, Percent: pct}
}

// TodaySummary loads the log for date and the tracker profile and reports
// progress. It does not create a log record.
func TodaySummary(ctx context.Context, kv store.Store, date string) (model.DailyLog, TrackerStatus, error) {
	dl, err := LoadOrCreateLog(ctx, kv, date)
	if err != nil {
		return model.DailyLog{}, TrackerStatus{}, err
	}
	tp, err := LoadTrackerProfile(ctx, kv)
	if err != nil {
		return model.DailyLog{}, TrackerStatus{}, err
	}
	return dl, Progress(dl.Date, Totals(dl), tp), nil
}
