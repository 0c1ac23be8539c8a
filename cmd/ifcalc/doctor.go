package ifcalc

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored logs and profile for unreadable records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.Store, _ app.Config) error {
			report, err := service.RunDoctor(ctx, kv, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logs checked: %d\n", report.Logs)
			fmt.Fprintf(out, "Corrupt logs: %d %s\n", len(report.CorruptLogs), strings.Join(report.CorruptLogs, " "))
			fmt.Fprintf(out, "Mismatched logs: %d %s\n", len(report.MismatchedLogs), strings.Join(report.MismatchedLogs, " "))
			fmt.Fprintf(out, "Invalid profile: %t\n", report.InvalidProfile)
			if doctorFix {
				fmt.Fprintf(out, "Fixed logs: %d\n", report.FixedLogs)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(ctx, kv, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Replace unreadable logs with empty ones")
}
