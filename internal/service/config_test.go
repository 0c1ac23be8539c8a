package service_test

import (
	"context"
	"testing"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
)

func TestConfigSetGetList(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	if got := service.DefaultGrams(ctx, kv); got != 100 {
		t.Fatalf("expected default grams 100, got %.2f", got)
	}
	if err := service.SetConfig(ctx, kv, "Default_Grams", " 150 "); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if got := service.DefaultGrams(ctx, kv); got != 150 {
		t.Fatalf("expected default grams 150, got %.2f", got)
	}
	value, ok, err := service.GetConfig(ctx, kv, service.ConfigDefaultGrams)
	if err != nil || !ok || value != "150" {
		t.Fatalf("unexpected get: %q %v %v", value, ok, err)
	}
	all, err := service.ListConfig(ctx, kv)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if len(all) != 1 || all[service.ConfigDefaultGrams] != "150" {
		t.Fatalf("unexpected config list: %v", all)
	}
}

func TestConfigRejectsUnknownAndInvalid(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	if err := service.SetConfig(ctx, kv, "theme", "dark"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := service.SetConfig(ctx, kv, service.ConfigDefaultGrams, "-5"); err == nil {
		t.Fatalf("expected invalid grams error")
	}
	if err := service.SetConfig(ctx, kv, service.ConfigBarcodeBaseURL, "ftp://example"); err == nil {
		t.Fatalf("expected invalid url error")
	}
}
