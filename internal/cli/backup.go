package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
)

const defaultBackupDir = "backups"

var backupCmd = LeafCommand{
	Use:   "backup",
	Short: "Write a JSON copy of employees, attendance, holidays and settings",
	StrFlags: []StringFlag{
		{Name: "out", Usage: "file or directory to write (default backups/backup_<timestamp>.json, - for stdout)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runBackup(ctx, cmd, a.Services.Backup, out, time.Now())
		})
	},
}.Build()

// backupPath resolves --out. An empty value or a directory gets the
// timestamped default name.
func backupPath(out string, now time.Time) string {
	if out == "" {
		return filepath.Join(defaultBackupDir, backup.FileName(now))
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, backup.FileName(now))
	}
	return out
}

func runBackup(ctx context.Context, cmd *cobra.Command, svc backup.BackupService, out string, now time.Time) error {
	if out == "-" {
		_, err := svc.Write(ctx, cmd.OutOrStdout())
		return err
	}

	path := backupPath(out, now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	summary, err := svc.Write(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s %s\n", Primary("backup written to"), path)
	_, _ = fmt.Fprintln(w, renderTable(
		[]string{"Employees", "Attendance", "Holidays", "Settings"},
		[][]string{{
			strconv.Itoa(summary.Employees),
			strconv.Itoa(summary.Attendance),
			strconv.Itoa(summary.Holidays),
			strconv.Itoa(summary.Settings),
		}},
	))
	return nil
}
