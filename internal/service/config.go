package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

const (
	ConfigDefaultGrams   = "default_grams"
	ConfigBarcodeBaseURL = "barcode_base_url"

	configKeyPrefix = "config-"
)

var configValidators = map[string]func(string) error{
	ConfigDefaultGrams: func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0) || !isFinite(f) {
			return fmt.Errorf("%s must be a number > 0", ConfigDefaultGrams)
		}
		return nil
	},
	ConfigBarcodeBaseURL: func(v string) error {
		if v != "" && !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("%s must be an http(s) URL", ConfigBarcodeBaseURL)
		}
		return nil
	},
}

// ConfigKeys lists the settings SetConfig accepts.
func ConfigKeys() []string {
	return []string{ConfigBarcodeBaseURL, ConfigDefaultGrams}
}

func SetConfig(ctx context.Context, kv store.Store, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	validate, ok := configValidators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	value = strings.TrimSpace(value)
	if err := validate(value); err != nil {
		return err
	}
	if err := kv.Put(ctx, configKeyPrefix+key, []byte(value)); err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(ctx context.Context, kv store.Store, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	raw, ok, err := kv.Get(ctx, configKeyPrefix+key)
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return string(raw), ok, nil
}

func ListConfig(ctx context.Context, kv store.Store) (map[string]string, error) {
	keys, err := kv.Keys(ctx, configKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	out := map[string]string{}
	for _, k := range keys {
		raw, ok, err := kv.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("get config %q: %w", k, err)
		}
		if ok {
			out[strings.TrimPrefix(k, configKeyPrefix)] = string(raw)
		}
	}
	return out, nil
}

// DefaultGrams is the portion used by scan and barcode when no amount is
// given. It falls back to 100.
func DefaultGrams(ctx context.Context, kv store.Store) float64 {
	v, ok, err := GetConfig(ctx, kv, ConfigDefaultGrams)
	if err != nil || !ok {
		return 100
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !(f > 0) {
		return 100
	}
	return f
}
