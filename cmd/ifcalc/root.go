package ifcalc

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath    string
	storeName string
	envFile   string
)

var rootCmd = &cobra.Command{
	Use:   "ifcalc",
	Short: "ifcalc plans intermittent-fasting calories and tracks daily food",
	Long: "ifcalc estimates BMR and TDEE, builds rest/workout day macro plans with a 12-week weight projection, " +
		"and keeps a per-day food log with label scanning and barcode lookup.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides IFCALC_DB)")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", "", "Storage backend: sqlite, redis, or memory (overrides IFCALC_STORE)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Env file to load before reading the environment")
}
