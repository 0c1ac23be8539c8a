package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
)

func TestLoadProfileDefaultsWhenMissing(t *testing.T) {
	kv := newTestStore(t)
	p, err := service.LoadProfile(context.Background(), kv)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p != model.DefaultProfile() {
		t.Fatalf("expected default profile, got %+v", p)
	}
}

func TestSaveProfileSyncsDisplayUnits(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	p := model.DefaultProfile()
	p.UnitSystem = model.Metric
	p.WeightKg = 100
	p.HeightCm = 180
	p.BodyFatPct = floatPtr(18)

	saved, err := service.SaveProfile(ctx, kv, p)
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if !approx(saved.WeightLbs, 220.462) {
		t.Fatalf("expected synced lbs, got %.4f", saved.WeightLbs)
	}
	if saved.HeightFt != 5 || !approxWithin(saved.HeightIn, 180/service.InToCm-60, 1e-9) {
		t.Fatalf("expected 5 ft 10.87 in, got %.4f ft %.4f in", saved.HeightFt, saved.HeightIn)
	}

	loaded, err := service.LoadProfile(ctx, kv)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if loaded.WeightKg != 100 || loaded.BodyFatPct == nil || *loaded.BodyFatPct != 18 {
		t.Fatalf("unexpected loaded profile: %+v", loaded)
	}
}

func TestSaveProfileRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	cases := []struct {
		name   string
		mutate func(*model.Profile)
		want   string
	}{
		{"workouts exceed days", func(p *model.Profile) { p.WorkoutsPerWeek = 8 }, "cannot exceed"},
		{"zero age", func(p *model.Profile) { p.Age = 0 }, "age"},
		{"bad activity", func(p *model.Profile) { p.Activity = "couch" }, "activity"},
		{"body fat over 100", func(p *model.Profile) { p.BodyFatPct = floatPtr(120) }, "body-fat"},
		{"zero imperial weight", func(p *model.Profile) { p.WeightLbs = 0 }, "weight"},
		{"fat split over 100", func(p *model.Profile) { p.RestFatSplitPct = 101 }, "fat split"},
	}
	for _, tc := range cases {
		p := model.DefaultProfile()
		tc.mutate(&p)
		_, err := service.SaveProfile(ctx, kv, p)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}

	loaded, err := service.LoadProfile(ctx, kv)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if loaded != model.DefaultProfile() {
		t.Fatalf("expected nothing persisted after rejected saves")
	}
}

func TestLoadProfileCorruptRecordFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	if err := kv.Put(ctx, "profile", []byte(`{"age":`)); err != nil {
		t.Fatalf("seed corrupt profile: %v", err)
	}
	p, err := service.LoadProfile(ctx, kv)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p != model.DefaultProfile() {
		t.Fatalf("expected default profile, got %+v", p)
	}
}

func TestTrackerProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	tp, err := service.LoadTrackerProfile(ctx, kv)
	if err != nil {
		t.Fatalf("load tracker profile: %v", err)
	}
	if tp != model.DefaultTrackerProfile() {
		t.Fatalf("expected default tracker profile, got %+v", tp)
	}

	tp.KetoMode = true
	tp.Targets.NetCarbs = 25
	tp.Model = ""
	if err := service.SaveTrackerProfile(ctx, kv, tp); err != nil {
		t.Fatalf("save tracker profile: %v", err)
	}
	loaded, err := service.LoadTrackerProfile(ctx, kv)
	if err != nil {
		t.Fatalf("reload tracker profile: %v", err)
	}
	if !loaded.KetoMode || loaded.Targets.NetCarbs != 25 || loaded.Model != model.DefaultLabelModel {
		t.Fatalf("unexpected tracker profile: %+v", loaded)
	}

	tp.Targets.Calories = -1
	if err := service.SaveTrackerProfile(ctx, kv, tp); err == nil {
		t.Fatalf("expected negative target to be rejected")
	}
}
