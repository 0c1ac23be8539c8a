package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

func TestBackupRestoreAcrossBackends(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	dl, _ := service.LoadOrCreateLog(ctx, src, testDate)
	if _, _, err := service.AddFood(ctx, src, dl, service.FoodInput{Name: "Eggs", Grams: 100, Per100g: yogurt}); err != nil {
		t.Fatalf("add food: %v", err)
	}
	if _, err := service.SaveProfile(ctx, src, model.DefaultProfile()); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	out := filepath.Join(t.TempDir(), "backups", "ifcalc.json")
	info, err := service.CreateBackup(ctx, src, out)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Records != 2 || info.Checksum == "" {
		t.Fatalf("unexpected backup info: %+v", info)
	}

	dst := store.NewMemoryStore()
	n, err := service.RestoreBackup(ctx, dst, out)
	if err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 restored records, got %d", n)
	}
	restored, err := service.LoadOrCreateLog(ctx, dst, testDate)
	if err != nil {
		t.Fatalf("load restored log: %v", err)
	}
	if len(restored.Foods) != 1 || restored.Foods[0].Name != "Eggs" {
		t.Fatalf("unexpected restored log: %+v", restored)
	}

	list, err := service.ListBackups(filepath.Dir(out))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(list) != 1 || list[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backup list: %+v", list)
	}
}

func TestRestoreBackupChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	out := filepath.Join(t.TempDir(), "ifcalc.json")
	if _, err := service.CreateBackup(ctx, src, out); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := os.WriteFile(out, []byte(`{"version":1,"records":{"profile":"{}"}}`), 0o644); err != nil {
		t.Fatalf("tamper backup: %v", err)
	}
	if _, err := service.RestoreBackup(ctx, store.NewMemoryStore(), out); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestRunDoctorFindsAndFixesCorruptLogs(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	if err := kv.Put(ctx, "if-tracker-log-2024-01-01", []byte("garbage")); err != nil {
		t.Fatalf("seed corrupt log: %v", err)
	}
	if err := kv.Put(ctx, "if-tracker-log-2024-01-02", []byte(`{"date":"2023-12-31","foods":[]}`)); err != nil {
		t.Fatalf("seed mismatched log: %v", err)
	}

	report, err := service.RunDoctor(ctx, kv, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.Healthy() || len(report.CorruptLogs) != 1 || len(report.MismatchedLogs) != 1 || report.Logs != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	report, err = service.RunDoctor(ctx, kv, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.FixedLogs != 2 {
		t.Fatalf("expected 2 fixed logs, got %+v", report)
	}
	report, err = service.RunDoctor(ctx, kv, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if !report.Healthy() {
		t.Fatalf("expected healthy store after fix, got %+v", report)
	}
}
