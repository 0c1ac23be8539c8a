package ifcalc

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/provider/gemini"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/provider/openfoodfacts"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/provider/usda"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		return app.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if s := strings.ToLower(strings.TrimSpace(storeName)); s != "" {
		if err := app.ValidateStore(s); err != nil {
			return app.Config{}, err
		}
		cfg.Store = s
	}
	if cfg.Store == app.StoreSQLite && cfg.DBPath == "" {
		p, err := app.DefaultDBPath()
		if err != nil {
			return app.Config{}, err
		}
		cfg.DBPath = p
	}
	return cfg, nil
}

func withStore(cmd *cobra.Command, run func(context.Context, store.Store, app.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer kv.Close()
	return run(cmd.Context(), kv, cfg)
}

// labelAnalyzer returns nil when no API key is configured so the service
// reports ErrNoCredential.
func labelAnalyzer(cfg app.Config) service.LabelAnalyzer {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	return &gemini.Client{BaseURL: cfg.GeminiBaseURL, APIKey: cfg.GeminiAPIKey, Prompt: service.LabelPrompt}
}

// barcodeClient queries Open Food Facts and, when a USDA key is configured,
// falls back to FoodData Central.
func barcodeClient(ctx context.Context, kv store.Store, cfg app.Config) service.BarcodeClient {
	base, _, err := service.GetConfig(ctx, kv, service.ConfigBarcodeBaseURL)
	if err != nil {
		base = ""
	}
	off := &openfoodfacts.Client{BaseURL: base}
	if cfg.USDAAPIKey == "" {
		return off
	}
	return service.FallbackBarcodeClient{
		off,
		service.USDABarcodeClient{Client: &usda.Client{APIKey: cfg.USDAAPIKey, BaseURL: cfg.USDABaseURL}},
	}
}

func optionalFloat(cmd *cobra.Command, flag string, value float64) *float64 {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	v := value
	return &v
}

func resolveDate(date string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(date), "today") {
		date = ""
	}
	d, err := service.NormalizeDate(date)
	if err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return d, nil
}
