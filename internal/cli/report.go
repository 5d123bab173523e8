package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/export"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputPDF   = "pdf"
	outputXLSX  = "xlsx"
)

var reportFlags = []StringFlag{
	{Name: "from", Usage: "first date of the report (YYYY-MM-DD)"},
	{Name: "to", Usage: "last date of the report (YYYY-MM-DD)"},
	{Name: "scope", Usage: "periods to count: first, second or both", Default: string(report.ScopeBoth)},
	{Name: "format", Usage: "output format: table, json, pdf or xlsx", Default: outputTable},
	{Name: "out", Usage: "output file for pdf and xlsx (default attendance_<...>.<format>)"},
}

type reportOptions struct {
	From         string
	To           string
	Scope        string
	Format       string
	Out          string
	Organization string
}

func readReportOptions(cmd *cobra.Command) (reportOptions, error) {
	var opts reportOptions
	opts.From, _ = cmd.Flags().GetString("from")
	opts.To, _ = cmd.Flags().GetString("to")
	opts.Scope, _ = cmd.Flags().GetString("scope")
	opts.Format, _ = cmd.Flags().GetString("format")
	opts.Out, _ = cmd.Flags().GetString("out")

	switch opts.Format {
	case outputTable, outputJSON, outputPDF, outputXLSX:
	default:
		return opts, fmt.Errorf("format must be one of: table, json, pdf, xlsx")
	}
	return opts, nil
}

var reportIndividualCmd = LeafCommand{
	Use:      "individual",
	Short:    "Day-by-day report for one employee",
	StrFlags: reportFlags,
	IntFlags: []IntFlag{
		{Name: "employee", Usage: "finger id of the employee"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readReportOptions(cmd)
		if err != nil {
			return err
		}
		employeeID, _ := cmd.Flags().GetInt("employee")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			opts.Organization = a.Config.Export.Organization
			return runReportIndividual(ctx, cmd, a.Services.Report, employeeID, opts)
		})
	},
}.Build()

func runReportIndividual(ctx context.Context, cmd *cobra.Command, svc report.ReportService, employeeID int, opts reportOptions) error {
	rep, err := svc.Individual(ctx, report.IndividualReportRequest{
		EmployeeID: employeeID,
		From:       opts.From,
		To:         opts.To,
		Scope:      opts.Scope,
	})
	if err != nil {
		return err
	}
	name := fmt.Sprintf("attendance_%d_%s_%s", rep.EmployeeID, opts.From, opts.To)
	return writeReport(cmd, opts, name, export.IndividualTable(rep), report.NewIndividualReportResponse(rep))
}

var reportGeneralCmd = LeafCommand{
	Use:      "general",
	Short:    "Totals for every active employee",
	StrFlags: reportFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readReportOptions(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			opts.Organization = a.Config.Export.Organization
			return runReportGeneral(ctx, cmd, a.Services.Report, opts)
		})
	},
}.Build()

func runReportGeneral(ctx context.Context, cmd *cobra.Command, svc report.ReportService, opts reportOptions) error {
	rep, err := svc.General(ctx, report.GeneralReportRequest{
		From:  opts.From,
		To:    opts.To,
		Scope: opts.Scope,
	})
	if err != nil {
		return err
	}
	name := fmt.Sprintf("attendance_general_%s_%s", opts.From, opts.To)
	return writeReport(cmd, opts, name, export.GeneralTable(rep), report.NewGeneralReportResponse(rep))
}

var reportCmd = GroupCommand{
	Use:   "report",
	Short: "Build attendance reports",
	Subcommands: []*cobra.Command{
		reportIndividualCmd,
		reportGeneralCmd,
	},
}.Build()

// writeReport prints table and json output, and writes pdf and xlsx to a file.
func writeReport(cmd *cobra.Command, opts reportOptions, name string, t export.Table, body any) error {
	out := cmd.OutOrStdout()
	switch opts.Format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(body)
	case outputPDF, outputXLSX:
	default:
		printReport(out, t)
		return nil
	}

	path := opts.Out
	if path == "" {
		path = name + "." + opts.Format
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if opts.Format == outputPDF {
		err = export.PDF(f, t, export.Options{Organization: opts.Organization, GeneratedAt: time.Now()})
	} else {
		err = export.XLSX(f, t)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(out, "%s %s\n", Primary("report written to"), path)
	return nil
}
