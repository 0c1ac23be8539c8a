package ifcalc

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ifcalc settings kept in the store",
}

var (
	cfgDefaultGrams   string
	cfgBarcodeBaseURL string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			updates := 0
			if cmd.Flags().Changed("default-grams") {
				if err := service.SetConfig(ctx, kv, service.ConfigDefaultGrams, cfgDefaultGrams); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("barcode-base-url") {
				if err := service.SetConfig(ctx, kv, service.ConfigBarcodeBaseURL, cfgBarcodeBaseURL); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, cfg app.Config) error {
			values, err := service.ListConfig(ctx, kv)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KEY\tVALUE")
			fmt.Fprintf(out, "store\t%s\n", cfg.Store)
			if cfg.Store == app.StoreSQLite {
				fmt.Fprintf(out, "db\t%s\n", cfg.DBPath)
			}
			key := "unset"
			if cfg.GeminiAPIKey != "" {
				key = "set"
			}
			fmt.Fprintf(out, "gemini_api_key\t%s\n", key)
			usdaKey := "unset"
			if cfg.USDAAPIKey != "" {
				usdaKey = "set"
			}
			fmt.Fprintf(out, "usda_api_key\t%s\n", usdaKey)
			for _, k := range keys {
				fmt.Fprintf(out, "%s\t%s\n", k, values[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgDefaultGrams, "default-grams", "", "Portion in grams used by scan/barcode when --grams is omitted")
	configSetCmd.Flags().StringVar(&cfgBarcodeBaseURL, "barcode-base-url", "", "Open Food Facts base URL (empty resets to the public server)")
}
