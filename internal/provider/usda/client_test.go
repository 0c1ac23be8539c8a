package usda

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupBarcodeParsesUSDAResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "demo" {
			t.Errorf("expected api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "foods": [
    {
      "fdcId": 99,
      "description": "Other Yogurt",
      "gtinUpc": "099999999999",
      "foodNutrients": [{"nutrientName": "Energy", "unitName": "KCAL", "value": 400}]
    },
    {
      "fdcId": 12345,
      "description": "Greek Yogurt",
      "brandOwner": "Test Brand",
      "gtinUpc": "00012345678905",
      "foodNutrients": [
        {"nutrientName": "Energy", "unitName": "kJ", "value": 418},
        {"nutrientName": "Energy", "unitName": "KCAL", "value": 100},
        {"nutrientName": "Protein", "unitName": "G", "value": 17},
        {"nutrientName": "Carbohydrate, by difference", "unitName": "G", "value": 6},
        {"nutrientName": "Fiber, total dietary", "unitName": "G", "value": 1},
        {"nutrientName": "Total lipid (fat)", "unitName": "G", "value": 0}
      ]
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{
		APIKey:     "demo",
		BaseURL:    ts.URL,
		HTTPClient: ts.Client(),
	}

	item, _, err := c.LookupBarcode(context.Background(), "012345678905")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if item.FDCID != 12345 {
		t.Fatalf("expected fdc id 12345, got %d", item.FDCID)
	}
	if item.Calories != 100 || item.ProteinG != 17 || item.CarbsG != 6 || item.FiberG != 1 || item.FatG != 0 {
		t.Fatalf("unexpected nutrients: %+v", item)
	}
}

func TestLookupBarcodeRequiresExactMatch(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods":[{"fdcId":1,"description":"Nearby","gtinUpc":"11111111"}]}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, _, err := c.LookupBarcode(context.Background(), "22222222")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupBarcodeRequiresAPIKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if _, _, err := c.LookupBarcode(context.Background(), "12345678"); err == nil {
		t.Fatalf("expected missing key error")
	}
}
