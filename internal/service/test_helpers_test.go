package service_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

func newTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ifcalc.db")
	kv, err := store.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func approxWithin(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func floatPtr(v float64) *float64 {
	return &v
}
