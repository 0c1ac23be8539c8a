package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/provider/openfoodfacts"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/provider/usda"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

const (
	barcodeCacheKeyPrefix = "barcode-cache-"
	defaultBarcodeTTL     = 30 * 24 * time.Hour
	barcodeLookupTimeout  = 15 * time.Second
)

var (
	ErrInvalidBarcode = errors.New("invalid barcode (expected 8-14 digits)")
	barcodePattern    = regexp.MustCompile(`^\d{8,14}$`)
)

// BarcodeClient fetches per-100 g nutrition for a product code.
type BarcodeClient interface {
	LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, []byte, error)
}

// USDABarcodeClient adapts a FoodData Central client to BarcodeClient.
type USDABarcodeClient struct {
	Client *usda.Client
}

func (u USDABarcodeClient) LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, []byte, error) {
	food, raw, err := u.Client.LookupBarcode(ctx, barcode)
	if err != nil {
		return openfoodfacts.Product{}, raw, err
	}
	return openfoodfacts.Product{
		Code:        barcode,
		Description: food.Description,
		Brand:       food.Brand,
		Calories:    food.Calories,
		ProteinG:    food.ProteinG,
		CarbsG:      food.CarbsG,
		FatG:        food.FatG,
		FiberG:      food.FiberG,
	}, raw, nil
}

// FallbackBarcodeClient asks each client in turn and returns the first
// product found. If every client fails the errors are joined.
type FallbackBarcodeClient []BarcodeClient

func (f FallbackBarcodeClient) LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, []byte, error) {
	var errs []error
	for _, c := range f {
		product, raw, err := c.LookupBarcode(ctx, barcode)
		if err == nil {
			return product, raw, nil
		}
		if ctx.Err() != nil {
			return openfoodfacts.Product{}, nil, err
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return openfoodfacts.Product{}, nil, errors.New("no barcode lookup clients configured")
	}
	return openfoodfacts.Product{}, nil, errors.Join(errs...)
}

type BarcodeLookupResult struct {
	Barcode     string          `json:"barcode"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Per100g     model.Nutrients `json:"per100g"`
	FetchedAt   time.Time       `json:"fetched_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	FromCache   bool            `json:"-"`
}

// Name is the label used when the product is logged.
func (r BarcodeLookupResult) Name() string {
	if r.Brand == "" {
		return r.Description
	}
	return r.Brand + " " + r.Description
}

// LookupBarcode returns the cached product when it has not expired, and
// otherwise asks the client and caches the answer.
func LookupBarcode(ctx context.Context, kv store.Store, client BarcodeClient, barcode string) (BarcodeLookupResult, error) {
	barcode = strings.TrimSpace(barcode)
	if !isValidBarcode(barcode) {
		return BarcodeLookupResult{}, fmt.Errorf("%w: %q", ErrInvalidBarcode, barcode)
	}

	var cached BarcodeLookupResult
	found, err := loadJSON(ctx, kv, barcodeCacheKeyPrefix+barcode, &cached)
	if err != nil {
		return BarcodeLookupResult{}, fmt.Errorf("read barcode cache: %w", err)
	}
	if found && time.Now().Before(cached.ExpiresAt) {
		cached.FromCache = true
		return cached, nil
	}
	if client == nil {
		return BarcodeLookupResult{}, errors.New("barcode lookup client is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, barcodeLookupTimeout)
	defer cancel()
	product, _, err := client.LookupBarcode(ctx, barcode)
	if err != nil {
		return BarcodeLookupResult{}, fmt.Errorf("lookup barcode: %w", err)
	}

	now := time.Now().UTC()
	result := BarcodeLookupResult{
		Barcode:     barcode,
		Description: product.Description,
		Brand:       product.Brand,
		Per100g: model.Nutrients{
			Calories: product.Calories,
			ProteinG: product.ProteinG,
			CarbsG:   product.CarbsG,
			FiberG:   product.FiberG,
			FatG:     product.FatG,
		},
		FetchedAt: now,
		ExpiresAt: now.Add(defaultBarcodeTTL),
	}
	if err := saveJSON(ctx, kv, barcodeCacheKeyPrefix+barcode, result); err != nil {
		log.Printf("[TRACKER] Failed to cache barcode %s: %v", barcode, err)
	}
	return result, nil
}

// ApplyBarcode fills the draft from a barcode lookup. The draft keeps its
// grams; the name is only set when the draft has none. On failure the
// draft is returned unchanged.
func ApplyBarcode(ctx context.Context, kv store.Store, client BarcodeClient, draft FoodDraft, barcode string) (FoodDraft, error) {
	result, err := LookupBarcode(ctx, kv, client, barcode)
	if err != nil {
		return draft, err
	}
	if strings.TrimSpace(draft.Name) == "" {
		draft.Name = result.Name()
	}
	draft.Per100g = result.Per100g
	return draft, nil
}

func isValidBarcode(code string) bool {
	return barcodePattern.MatchString(code)
}
