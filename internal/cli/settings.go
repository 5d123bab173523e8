package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
)

var settingsShowCmd = LeafCommand{
	Use:   "show",
	Short: "Show device, period and weekend settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runSettingsShow(ctx, cmd, a.Services.Settings)
		})
	},
}.Build()

func runSettingsShow(ctx context.Context, cmd *cobra.Command, svc settings.SettingsService) error {
	s, err := svc.Get(ctx)
	if err != nil {
		return err
	}
	commKey := "none"
	if s.CommKey != 0 {
		commKey = "set"
	}
	rows := [][]string{
		{"Device", s.IP + ":" + strconv.Itoa(s.Port)},
		{"Timeout", strconv.Itoa(s.TimeoutSeconds) + "s"},
		{"Comm key", commKey},
		{"Period 1", s.InLimit1 + " - " + s.OutLimit1},
		{"Period 2", s.InLimit2 + " - " + s.OutLimit2},
		{"Weekend", strings.Join(s.Weekend, ", ")},
		{"Username", s.Username},
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows))
	return nil
}

var settingsCmd = GroupCommand{
	Use:   "settings",
	Short: "Inspect settings",
	Subcommands: []*cobra.Command{
		settingsShowCmd,
	},
}.Build()
