package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// ErrNotFound is returned when the product database has no usable entry for a code.
var ErrNotFound = errors.New("openfoodfacts product not found")

// Product holds the per-100 g nutrition of a packaged food.
type Product struct {
	Code        string
	Description string
	Brand       string
	Calories    float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	FiberG      float64
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Product, []byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	url := fmt.Sprintf("%s/api/v2/product/%s.json", base, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Product{}, nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = "ifcalc/1.0"
	}
	req.Header.Set("User-Agent", ua)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Product{}, nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Product{}, nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return Product{}, body, fmt.Errorf("%w: barcode %q", ErrNotFound, barcode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Product{}, body, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Product{}, body, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	name := strings.TrimSpace(parsed.Product.ProductName)
	if parsed.Status != 1 || name == "" {
		return Product{}, body, fmt.Errorf("%w: barcode %q", ErrNotFound, barcode)
	}

	n := parsed.Product.Nutriments
	return Product{
		Code:        barcode,
		Description: name,
		Brand:       strings.TrimSpace(parsed.Product.Brands),
		Calories:    per100g(n, "energy-kcal"),
		ProteinG:    per100g(n, "proteins"),
		CarbsG:      per100g(n, "carbohydrates"),
		FatG:        per100g(n, "fat"),
		FiberG:      per100g(n, "fiber"),
	}, body, nil
}

// per100g prefers the normalized _100g field and falls back to the bare key,
// which the product database fills with the same basis for most entries.
func per100g(n map[string]any, base string) float64 {
	for _, key := range []string{base + "_100g", base} {
		if v, ok := parseFloatAny(n[key]); ok && v >= 0 {
			return v
		}
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}
