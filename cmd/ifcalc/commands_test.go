package ifcalc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
)

const day = "2024-03-05"

func TestProfileSetAndShow(t *testing.T) {
	path := testDB(t)

	out, err := runCLI(t, "--db", path, "profile", "set", "--units", "metric", "--weight-kg", "90", "--height-cm", "180", "--body-fat", "22")
	if err != nil {
		t.Fatalf("profile set: %v", err)
	}
	if !strings.Contains(out, "Body fat: 22.0%") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = runCLI(t, "--db", path, "profile", "show", "--json")
	if err != nil {
		t.Fatalf("profile show: %v", err)
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if p.UnitSystem != model.Metric || p.WeightKg != 90 || p.BodyFatPct == nil || *p.BodyFatPct != 22 {
		t.Fatalf("unexpected stored profile: %+v", p)
	}
	if p.Age != model.DefaultProfile().Age {
		t.Fatalf("expected untouched fields to keep defaults, got age %d", p.Age)
	}

	if _, err := runCLI(t, "--db", path, "profile", "set", "--clear-body-fat"); err != nil {
		t.Fatalf("clear body fat: %v", err)
	}
	out, _ = runCLI(t, "--db", path, "profile", "show")
	if !strings.Contains(out, "Body fat: not set") {
		t.Fatalf("expected body fat cleared, got %q", out)
	}
}

func TestProfileSetRejectsInvalid(t *testing.T) {
	path := testDB(t)
	if _, err := runCLI(t, "--db", path, "profile", "set", "--workouts", "9"); err == nil {
		t.Fatalf("expected workouts > days to be rejected")
	}
	if _, err := runCLI(t, "--db", path, "profile", "set", "--activity", "couch"); err == nil {
		t.Fatalf("expected invalid activity to be rejected")
	}
}

func TestMetricsPlanProject(t *testing.T) {
	path := testDB(t)

	out, err := runCLI(t, "--db", path, "metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !strings.Contains(out, "Mifflin-St Jeor") || !strings.Contains(out, "n/a (no body fat)") {
		t.Fatalf("unexpected metrics output %q", out)
	}

	out, err = runCLI(t, "--db", path, "plan", "--json")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var plan service.Plan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Weekly.RestDays != 4 || plan.Weekly.WorkoutDays != 3 {
		t.Fatalf("unexpected plan: %+v", plan.Weekly)
	}

	out, err = runCLI(t, "--db", path, "project")
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 14 {
		t.Fatalf("expected header plus 13 rows, got %d lines", len(lines))
	}
}

func TestTargetsSetAndShow(t *testing.T) {
	path := testDB(t)
	if _, err := runCLI(t, "--db", path, "targets", "set"); err == nil {
		t.Fatalf("expected error without flags")
	}
	out, err := runCLI(t, "--db", path, "targets", "set", "--keto", "--net-carbs", "20")
	if err != nil {
		t.Fatalf("targets set: %v", err)
	}
	if !strings.Contains(out, "Updated 2 target value(s)") {
		t.Fatalf("unexpected output %q", out)
	}
	out, err = runCLI(t, "--db", path, "targets", "show")
	if err != nil {
		t.Fatalf("targets show: %v", err)
	}
	if !strings.Contains(out, "keto") || !strings.Contains(out, "Net carbs: 20g") {
		t.Fatalf("unexpected targets %q", out)
	}
}

var idPattern = regexp.MustCompile(`\[id ([0-9a-f-]+)\]`)

func TestLogAddShowRemoveReset(t *testing.T) {
	path := testDB(t)

	out, err := runCLI(t, "--db", path, "log", "add", "--date", day, "--name", "Greek yogurt", "--grams", "150",
		"--calories", "200", "--protein", "20", "--carbs", "10", "--fiber", "2", "--fat", "5")
	if err != nil {
		t.Fatalf("log add: %v", err)
	}
	m := idPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("expected id in output %q", out)
	}
	id := m[1]

	out, err = runCLI(t, "--db", path, "log", "show", "--date", day)
	if err != nil {
		t.Fatalf("log show: %v", err)
	}
	if !strings.Contains(out, "Greek yogurt") || !strings.Contains(out, "Remaining: 1700 kcal") {
		t.Fatalf("unexpected log output %q", out)
	}

	if _, err := runCLI(t, "--db", path, "log", "rm", "--date", day, "missing"); err == nil {
		t.Fatalf("expected unknown id error")
	}
	if _, err := runCLI(t, "--db", path, "log", "rm", "--date", day, id); err != nil {
		t.Fatalf("log rm: %v", err)
	}

	if _, err := runCLI(t, "--db", path, "log", "add", "--date", day, "--name", "Rice", "--grams", "100", "--calories", "130"); err != nil {
		t.Fatalf("log add rice: %v", err)
	}
	if _, err := runCLI(t, "--db", path, "log", "reset", "--date", day); err == nil {
		t.Fatalf("expected reset to require --yes")
	}
	out, err = runCLI(t, "--db", path, "log", "reset", "--date", day, "--yes")
	if err != nil {
		t.Fatalf("log reset: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 item(s)") {
		t.Fatalf("unexpected reset output %q", out)
	}
	out, _ = runCLI(t, "--db", path, "log", "show", "--date", day)
	if !strings.Contains(out, "No foods logged") {
		t.Fatalf("expected empty day, got %q", out)
	}
}

func TestLogAddValidation(t *testing.T) {
	path := testDB(t)
	if _, err := runCLI(t, "--db", path, "log", "add", "--grams", "100"); err == nil {
		t.Fatalf("expected missing name error")
	}
	if _, err := runCLI(t, "--db", path, "log", "add", "--name", "Rice"); err == nil {
		t.Fatalf("expected missing grams error")
	}
	if _, err := runCLI(t, "--db", path, "log", "add", "--date", "yesterday", "--name", "Rice", "--grams", "1"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	_, err := runCLI(t, "--db", path, "log", "add", "--date", day, "--name", "Bad", "--grams", "100", "--calories=-500")
	if err == nil || !strings.Contains(err.Error(), "calories per 100g") {
		t.Fatalf("expected negative calories error, got %v", err)
	}
	out, err := runCLI(t, "--db", path, "log", "dates")
	if err != nil || strings.TrimSpace(out) != "" {
		t.Fatalf("expected nothing stored, got %q err=%v", out, err)
	}
}

func TestLogScanWithoutCredential(t *testing.T) {
	path := testDB(t)
	img := filepath.Join(t.TempDir(), "label.png")
	if err := os.WriteFile(img, []byte("\x89PNG\r\n\x1a\nfake"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	_, err := runCLI(t, "--db", path, "log", "scan", img, "--name", "Bar")
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected missing credential error, got %v", err)
	}
}

func TestLogScanWithFakeServer(t *testing.T) {
	path := testDB(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"calories\": 450, \"protein\": 10, \"carbs\": 60, \"fiber\": 5, \"fat\": 18}"}]}}]}`))
	}))
	defer ts.Close()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_BASE_URL", ts.URL)

	img := filepath.Join(t.TempDir(), "label.jpg")
	if err := os.WriteFile(img, []byte{0xff, 0xd8, 0xff, 0xe0}, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	out, err := runCLI(t, "--db", path, "log", "scan", img, "--date", day, "--name", "Granola", "--grams", "50")
	if err != nil {
		t.Fatalf("log scan: %v", err)
	}
	if !strings.Contains(out, "Per 100g: 450 kcal") || !strings.Contains(out, "Logged Granola (50g, 225 kcal)") {
		t.Fatalf("unexpected scan output %q", out)
	}
}

func TestLogBarcodeWithFakeServer(t *testing.T) {
	path := testDB(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Oat Drink","brands":"Oatly","nutriments":{"energy-kcal_100g":46,"carbohydrates_100g":6.7,"fat_100g":1.5,"proteins_100g":1,"fiber_100g":0.8}}}`))
	}))
	defer ts.Close()

	if _, err := runCLI(t, "--db", path, "config", "set", "--barcode-base-url", ts.URL, "--default-grams", "250"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := runCLI(t, "--db", path, "log", "barcode", "7394376616037", "--date", day)
	if err != nil {
		t.Fatalf("log barcode: %v", err)
	}
	if !strings.Contains(out, "Logged Oatly Oat Drink (250g, 115 kcal)") {
		t.Fatalf("unexpected barcode output %q", out)
	}

	out, err = runCLI(t, "--db", path, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if !strings.Contains(out, "default_grams\t250") || !strings.Contains(out, "gemini_api_key\tunset") {
		t.Fatalf("unexpected config output %q", out)
	}
}

func TestLogExport(t *testing.T) {
	path := testDB(t)
	if _, err := runCLI(t, "--db", path, "log", "add", "--date", day, "--name", "Rice", "--grams", "100", "--calories", "130"); err != nil {
		t.Fatalf("log add: %v", err)
	}
	out := filepath.Join(t.TempDir(), "export", "log.xlsx")
	msg, err := runCLI(t, "--db", path, "log", "export", "--out", out, "--from", day, "--to", day)
	if err != nil {
		t.Fatalf("log export: %v", err)
	}
	if !strings.Contains(msg, "Exported 1 day(s)") {
		t.Fatalf("unexpected export output %q", msg)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("expected export file, err=%v", err)
	}
}

func TestBackupAndDoctor(t *testing.T) {
	path := testDB(t)
	if _, err := runCLI(t, "--db", path, "log", "add", "--date", day, "--name", "Rice", "--grams", "100", "--calories", "130"); err != nil {
		t.Fatalf("log add: %v", err)
	}
	snap := filepath.Join(t.TempDir(), "snap.json")
	if _, err := runCLI(t, "--db", path, "backup", "create", "--out", snap); err != nil {
		t.Fatalf("backup create: %v", err)
	}

	other := filepath.Join(t.TempDir(), "other.db")
	out, err := runCLI(t, "--db", other, "backup", "restore", "--file", snap)
	if err != nil {
		t.Fatalf("backup restore: %v", err)
	}
	if !strings.Contains(out, "Restored 1 record(s)") {
		t.Fatalf("unexpected restore output %q", out)
	}
	out, err = runCLI(t, "--db", other, "log", "dates")
	if err != nil || strings.TrimSpace(out) != day {
		t.Fatalf("expected restored date, got %q err=%v", out, err)
	}

	if _, err := runCLI(t, "--db", other, "doctor"); err != nil {
		t.Fatalf("doctor on healthy store: %v", err)
	}
}
