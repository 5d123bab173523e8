package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
)

var syncCmd = LeafCommand{
	Use:   "sync",
	Short: "Pull the terminal's attendance log into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runSync(ctx, cmd, a.Services.Attendance)
		})
	},
}.Build()

func runSync(ctx context.Context, cmd *cobra.Command, svc attendance.AttendanceService) error {
	result, err := svc.Sync(ctx)
	if errors.Is(err, attendance.ErrSyncInProgress) {
		return fmt.Errorf("another synchronization is running, try again later")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s %s\n", Primary("sync completed"), Silent(result.RunID))
	_, _ = fmt.Fprintln(out, renderTable(
		[]string{"Fetched", "Applied", "Duplicates", "Dropped", "Unregistered", "Invalid"},
		[][]string{{
			strconv.Itoa(result.Fetched),
			strconv.Itoa(result.Applied),
			strconv.Itoa(result.Duplicates),
			strconv.Itoa(result.Dropped),
			strconv.Itoa(result.Unregistered),
			strconv.Itoa(result.Invalid),
		}},
	))
	if result.Unregistered > 0 {
		_, _ = fmt.Fprintln(out, Warning(fmt.Sprintf("%d punch(es) belong to unregistered finger ids", result.Unregistered)))
	}
	return nil
}

var syncRunsCmd = LeafCommand{
	Use:   "sync-runs",
	Short: "List recent synchronizations",
	IntFlags: []IntFlag{
		{Name: "limit", Usage: "number of runs to show", Default: 20},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runSyncRuns(ctx, cmd, a.Services.Attendance, limit)
		})
	},
}.Build()

func runSyncRuns(ctx context.Context, cmd *cobra.Command, svc attendance.AttendanceService, limit int) error {
	runs, err := svc.ListSyncRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No synchronizations yet."))
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		finished, failure := "-", ""
		if r.FinishedAt != nil {
			finished = *r.FinishedAt
		}
		if r.Error != nil {
			failure = *r.Error
		}
		rows = append(rows, []string{
			r.StartedAt,
			finished,
			r.Device,
			r.Status,
			strconv.Itoa(r.Fetched),
			strconv.Itoa(r.Applied),
			failure,
		})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Started", "Finished", "Device", "Status", "Fetched", "Applied", "Error"},
		rows,
	))
	return nil
}

var clearDeviceCmd = LeafCommand{
	Use:   "clear-device",
	Short: "Delete every punch stored on the terminal",
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "confirm that the terminal log was synchronized and may be erased"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("clearing the terminal is irreversible, run sync first and pass --yes")
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runClearDevice(ctx, cmd, a.Services.Attendance)
		})
	},
}.Build()

func runClearDevice(ctx context.Context, cmd *cobra.Command, svc attendance.AttendanceService) error {
	if err := svc.ClearDevice(ctx); err != nil {
		if errors.Is(err, attendance.ErrSyncInProgress) {
			return fmt.Errorf("a synchronization is running, try again later")
		}
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Primary("terminal log cleared"))
	return nil
}
