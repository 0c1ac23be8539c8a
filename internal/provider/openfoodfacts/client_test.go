package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupBarcodeParsesPer100gValues(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/12345678.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Yogurt Cup",
    "brands": "Brand Co",
    "nutriments": {
      "energy-kcal_serving": 120,
      "energy-kcal_100g": 70.5,
      "proteins_100g": "5.9",
      "carbohydrates_100g": 8.8,
      "fat": 1.2,
      "fiber_100g": 0
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	item, raw, err := c.LookupBarcode(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected raw body")
	}
	if item.Description != "Yogurt Cup" || item.Brand != "Brand Co" {
		t.Fatalf("unexpected names: %+v", item)
	}
	if item.Calories != 70.5 || item.ProteinG != 5.9 || item.CarbsG != 8.8 || item.FatG != 1.2 || item.FiberG != 0 {
		t.Fatalf("unexpected nutrients: %+v", item)
	}
}

func TestLookupBarcodeMissingProduct(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, _, err := c.LookupBarcode(context.Background(), "00000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupBarcodeServerError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, _, err := c.LookupBarcode(context.Background(), "12345678")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected status error, got %v", err)
	}
}
