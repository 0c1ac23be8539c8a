package ifcalc

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/export"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage the daily food log",
}

var (
	logDate     string
	logJSON     bool
	addName     string
	addGrams    float64
	addCalories float64
	addProtein  float64
	addCarbs    float64
	addFiber    float64
	addFat      float64
	resetYes    bool
	scanName    string
	scanGrams   float64
	scanMime    string
	scanModel   string
	scanDryRun  bool
	bcName      string
	bcGrams     float64
	exportOut   string
	exportFrom  string
	exportTo    string
)

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show foods and progress for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			dl, status, err := service.TodaySummary(ctx, kv, date)
			if err != nil {
				return err
			}
			if logJSON {
				return printJSON(cmd, struct {
					Log    model.DailyLog        `json:"log"`
					Status service.TrackerStatus `json:"status"`
				}{dl, status})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", dl.Date)
			if len(dl.Foods) == 0 {
				fmt.Fprintln(out, "No foods logged")
			} else {
				fmt.Fprintln(out, "ID\tNAME\tGRAMS\tKCAL\tP\tC\tFIBER\tF")
				for _, f := range dl.Foods {
					fmt.Fprintf(out, "%s\t%s\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%.1f\n",
						f.ID, f.Name, f.Grams, f.Calories, f.ProteinG, f.CarbsG, f.FiberG, f.FatG)
				}
			}
			printStatus(cmd, status)
			return nil
		})
	},
}

var logDatesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List dates that have a stored log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			dates, err := service.LoggedDates(ctx, kv)
			if err != nil {
				return err
			}
			for _, d := range dates {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		})
	},
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food from per-100g values",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}
		if strings.TrimSpace(addName) == "" {
			return fmt.Errorf("--name is required")
		}
		if !(addGrams > 0) {
			return fmt.Errorf("--grams must be > 0")
		}
		draft := service.FoodDraft{
			Name:  addName,
			Grams: addGrams,
			Per100g: model.Nutrients{
				Calories: addCalories,
				ProteinG: addProtein,
				CarbsG:   addCarbs,
				FiberG:   addFiber,
				FatG:     addFat,
			},
		}
		if err := service.ValidatePer100g(draft.Per100g); err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			return logDraft(ctx, cmd, kv, date, draft)
		})
	},
}

var logRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a logged food by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}
		id := strings.TrimSpace(args[0])
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			dl, err := service.LoadOrCreateLog(ctx, kv, date)
			if err != nil {
				return err
			}
			_, removed, err := service.RemoveFood(ctx, kv, dl, id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no food with id %q on %s", id, date)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", id, date)
			return nil
		})
	},
}

var logResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every food logged for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}
		if !resetYes {
			return fmt.Errorf("refusing to clear %s without --yes", date)
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			dl, err := service.LoadOrCreateLog(ctx, kv, date)
			if err != nil {
				return err
			}
			if _, err := service.ResetDay(ctx, kv, dl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d item(s) from %s\n", len(dl.Foods), date)
			return nil
		})
	},
}

var logScanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Read per-100g values from a nutrition label photo and log the food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}
		if strings.TrimSpace(scanName) == "" && !scanDryRun {
			return fmt.Errorf("--name is required")
		}
		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read label image: %w", err)
		}
		mime := strings.TrimSpace(scanMime)
		if mime == "" {
			mime = http.DetectContentType(image)
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, cfg app.Config) error {
			tp, err := service.LoadTrackerProfile(ctx, kv)
			if err != nil {
				return err
			}
			modelName := tp.Model
			if strings.TrimSpace(scanModel) != "" {
				modelName = scanModel
			}
			draft := service.FoodDraft{Name: scanName, Grams: portionGrams(ctx, cmd, kv, "grams", scanGrams)}
			draft, err = service.ApplyLabelEstimate(ctx, labelAnalyzer(cfg), draft, image, mime, modelName)
			if err != nil {
				return err
			}
			printPer100g(cmd, draft.Per100g)
			if scanDryRun {
				return nil
			}
			return logDraft(ctx, cmd, kv, date, draft)
		})
	},
}

var logBarcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Look up a product barcode on Open Food Facts and log it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, cfg app.Config) error {
			draft := service.FoodDraft{Name: bcName, Grams: portionGrams(ctx, cmd, kv, "grams", bcGrams)}
			draft, err := service.ApplyBarcode(ctx, kv, barcodeClient(ctx, kv, cfg), draft, args[0])
			if err != nil {
				return err
			}
			printPer100g(cmd, draft.Per100g)
			return logDraft(ctx, cmd, kv, date, draft)
		})
	},
}

var logExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged days to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		for _, d := range []string{exportFrom, exportTo} {
			if d == "" {
				continue
			}
			if _, err := service.NormalizeDate(d); err != nil {
				return err
			}
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			dates, err := service.LoggedDates(ctx, kv)
			if err != nil {
				return err
			}
			logs := make([]model.DailyLog, 0, len(dates))
			for _, d := range dates {
				if (exportFrom != "" && d < exportFrom) || (exportTo != "" && d > exportTo) {
					continue
				}
				dl, err := service.LoadOrCreateLog(ctx, kv, d)
				if err != nil {
					return err
				}
				logs = append(logs, dl)
			}
			tp, err := service.LoadTrackerProfile(ctx, kv)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(exportOut), 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := export.WriteDailyLogs(f, logs, tp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d day(s) to %s\n", len(logs), exportOut)
			return nil
		})
	},
}

// portionGrams is the flag value when given, otherwise the stored default.
func portionGrams(ctx context.Context, cmd *cobra.Command, kv store.Store, flag string, value float64) float64 {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return service.DefaultGrams(ctx, kv)
}

func logDraft(ctx context.Context, cmd *cobra.Command, kv store.Store, date string, draft service.FoodDraft) error {
	dl, err := service.LoadOrCreateLog(ctx, kv, date)
	if err != nil {
		return err
	}
	_, item, err := service.AddFood(ctx, kv, dl, draft.Input())
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("nothing logged: a name and grams > 0 are required")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0fg, %.0f kcal) on %s [id %s]\n", item.Name, item.Grams, item.Calories, date, item.ID)
	return nil
}

func printPer100g(cmd *cobra.Command, n model.Nutrients) {
	fmt.Fprintf(cmd.OutOrStdout(), "Per 100g: %.0f kcal | P %.1fg | C %.1fg | Fiber %.1fg | F %.1fg\n",
		n.Calories, n.ProteinG, n.CarbsG, n.FiberG, n.FatG)
}

func printStatus(cmd *cobra.Command, st service.TrackerStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Remaining: %.0f kcal\n", st.RemainingCalories)
	for _, m := range []service.MetricProgress{st.Calories, st.Protein, st.Fat, st.Carbs, st.Fiber} {
		fmt.Fprintf(out, "%s: %.1f / %.0f (%.0f%%)\n", m.Label, m.Consumed, m.Target, m.Percent)
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logShowCmd, logDatesCmd, logAddCmd, logRemoveCmd, logResetCmd, logScanCmd, logBarcodeCmd, logExportCmd)
	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")

	logShowCmd.Flags().BoolVar(&logJSON, "json", false, "Output JSON")

	logAddCmd.Flags().StringVar(&addName, "name", "", "Food name")
	logAddCmd.Flags().Float64Var(&addGrams, "grams", 0, "Grams eaten")
	logAddCmd.Flags().Float64Var(&addCalories, "calories", 0, "Calories per 100g")
	logAddCmd.Flags().Float64Var(&addProtein, "protein", 0, "Protein grams per 100g")
	logAddCmd.Flags().Float64Var(&addCarbs, "carbs", 0, "Carb grams per 100g")
	logAddCmd.Flags().Float64Var(&addFiber, "fiber", 0, "Fiber grams per 100g")
	logAddCmd.Flags().Float64Var(&addFat, "fat", 0, "Fat grams per 100g")

	logResetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm clearing the day")

	logScanCmd.Flags().StringVar(&scanName, "name", "", "Food name")
	logScanCmd.Flags().Float64Var(&scanGrams, "grams", 0, "Grams eaten (default from config, 100)")
	logScanCmd.Flags().StringVar(&scanMime, "mime", "", "Image MIME type (detected when empty)")
	logScanCmd.Flags().StringVar(&scanModel, "model", "", "Override the label model")
	logScanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Only print the estimate")

	logBarcodeCmd.Flags().StringVar(&bcName, "name", "", "Food name (default product name)")
	logBarcodeCmd.Flags().Float64Var(&bcGrams, "grams", 0, "Grams eaten (default from config, 100)")

	logExportCmd.Flags().StringVar(&exportOut, "out", "ifcalc-log.xlsx", "Output .xlsx path")
	logExportCmd.Flags().StringVar(&exportFrom, "from", "", "First date to include (YYYY-MM-DD)")
	logExportCmd.Flags().StringVar(&exportTo, "to", "", "Last date to include (YYYY-MM-DD)")
}
