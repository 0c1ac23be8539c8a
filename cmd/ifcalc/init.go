package ifcalc

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, cfg app.Config) error {
			if _, err := kv.Keys(ctx, ""); err != nil {
				return fmt.Errorf("verify store: %w", err)
			}
			switch cfg.Store {
			case app.StoreRedis:
				fmt.Fprintf(cmd.OutOrStdout(), "Connected to redis store at %s (db %d)\n", cfg.RedisAddr, cfg.RedisDB)
			case app.StoreMemory:
				fmt.Fprintln(cmd.OutOrStdout(), "Using in-memory store (nothing is persisted)")
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized ifcalc database at %s\n", cfg.DBPath)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
