// Package cli is the attendancectl operator command line. Every command runs
// against the same services as the HTTP API.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "attendancectl",
	Short:         "Operate the fingerprint attendance store and terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(syncRunsCmd)
	rootCmd.AddCommand(clearDeviceCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(holidayCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(backupCmd)
}

// Execute runs the command line. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = rootCmd.ErrOrStderr().Write([]byte(Error("Error: "+err.Error()) + "\n"))
	}
	return err
}

// withApp loads configuration, opens the store and runs fn with the wired
// services. Logs go to stderr so command output stays clean.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
