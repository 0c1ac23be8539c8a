package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.nal.usda.gov"

// ErrNotFound is returned when no branded food carries the requested GTIN.
var ErrNotFound = errors.New("usda branded food not found")

// Food is a FoodData Central branded food. Search results report nutrient
// values per 100 g.
type Food struct {
	FDCID       int64
	Barcode     string
	Description string
	Brand       string
	Calories    float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	FiberG      float64
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Food, []byte, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return Food{}, nil, fmt.Errorf("missing USDA API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	payload, err := json.Marshal(map[string]any{
		"query":    barcode,
		"dataType": []string{"Branded"},
		"pageSize": 20,
	})
	if err != nil {
		return Food{}, nil, fmt.Errorf("marshal USDA search payload: %w", err)
	}

	url := fmt.Sprintf("%s/fdc/v1/foods/search", baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Food{}, nil, fmt.Errorf("create USDA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", strings.TrimSpace(c.APIKey))

	resp, err := httpClient.Do(req)
	if err != nil {
		return Food{}, nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Food{}, nil, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Food{}, body, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Food{}, body, fmt.Errorf("decode USDA response: %w", err)
	}

	food, ok := selectBarcodeMatch(parsed.Foods, barcode)
	if !ok {
		return Food{}, body, fmt.Errorf("%w: barcode %q", ErrNotFound, barcode)
	}

	out := Food{
		FDCID:       food.FDCID,
		Barcode:     barcode,
		Description: strings.TrimSpace(food.Description),
		Brand:       strings.TrimSpace(food.BrandOwner),
	}
	for _, n := range food.FoodNutrients {
		if n.Value < 0 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(n.NutrientName)) {
		case "energy":
			// Energy is listed twice when both kcal and kJ are known.
			if strings.EqualFold(n.UnitName, "kcal") || n.UnitName == "" {
				out.Calories = n.Value
			}
		case "protein":
			out.ProteinG = n.Value
		case "carbohydrate, by difference":
			out.CarbsG = n.Value
		case "total lipid (fat)":
			out.FatG = n.Value
		case "fiber, total dietary":
			out.FiberG = n.Value
		}
	}
	return out, body, nil
}

// selectBarcodeMatch only accepts an exact GTIN match. Leading zeros are
// ignored because the database mixes UPC-A and GTIN-14 padding.
func selectBarcodeMatch(foods []usdaFood, barcode string) (usdaFood, bool) {
	want := strings.TrimLeft(barcode, "0")
	for _, f := range foods {
		if strings.TrimLeft(strings.TrimSpace(f.GTINUPC), "0") == want {
			return f, true
		}
	}
	return usdaFood{}, false
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	BrandOwner    string         `json:"brandOwner"`
	GTINUPC       string         `json:"gtinUpc"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}
