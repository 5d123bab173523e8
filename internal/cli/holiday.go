package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
)

var holidayAddCmd = LeafCommand{
	Use:   "add DATE",
	Short: "Mark a date (YYYY-MM-DD) as a holiday",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runHolidayAdd(ctx, cmd, a.Services.Holiday, args[0])
		})
	},
}.Build()

func runHolidayAdd(ctx context.Context, cmd *cobra.Command, svc holiday.HolidayService, date string) error {
	h, err := svc.Add(ctx, holiday.CreateHolidayRequest{Date: date})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "holiday %s added\n", Primary(h.Date+" ("+h.Weekday+")"))
	return nil
}

var holidayListCmd = LeafCommand{
	Use:   "list",
	Short: "List all holidays",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runHolidayList(ctx, cmd, a.Services.Holiday)
		})
	},
}.Build()

func runHolidayList(ctx context.Context, cmd *cobra.Command, svc holiday.HolidayService) error {
	holidays, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if len(holidays) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No holidays found."))
		return nil
	}

	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{h.Date, h.Weekday})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Date", "Day"}, rows))
	return nil
}

var holidayRemoveCmd = LeafCommand{
	Use:   "remove DATE",
	Short: "Remove a holiday",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runHolidayRemove(ctx, cmd, a.Services.Holiday, args[0])
		})
	},
}.Build()

func runHolidayRemove(ctx context.Context, cmd *cobra.Command, svc holiday.HolidayService, date string) error {
	if err := svc.Remove(ctx, date); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "holiday %s removed\n", Primary(date))
	return nil
}

var holidayCmd = GroupCommand{
	Use:   "holiday",
	Short: "Manage holidays",
	Subcommands: []*cobra.Command{
		holidayAddCmd,
		holidayListCmd,
		holidayRemoveCmd,
	},
}.Build()
