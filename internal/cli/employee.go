package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
)

var employeeListCmd = LeafCommand{
	Use:   "list",
	Short: "List registered employees",
	BoolFlags: []BoolFlag{
		{Name: "active", Usage: "only active employees"},
	},
	StrFlags: []StringFlag{
		{Name: "search", Usage: "match part of the name or an exact finger id"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter employee.EmployeeFilter
		filter.ActiveOnly, _ = cmd.Flags().GetBool("active")
		filter.Search, _ = cmd.Flags().GetString("search")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runEmployeeList(ctx, cmd, a.Services.Employee, filter)
		})
	},
}.Build()

func runEmployeeList(ctx context.Context, cmd *cobra.Command, svc employee.EmployeeService, filter employee.EmployeeFilter) error {
	employees, err := svc.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No employees found."))
		return nil
	}

	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		active := "yes"
		if !e.Active {
			active = "no"
		}
		rows = append(rows, []string{strconv.Itoa(e.FingerID), e.Name, active})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Finger ID", "Name", "Active"}, rows))
	return nil
}

var employeeAddCmd = LeafCommand{
	Use:   "add FINGER_ID NAME...",
	Short: "Register an employee under the terminal's finger id",
	Args:  cobra.MinimumNArgs(2),
	BoolFlags: []BoolFlag{
		{Name: "inactive", Usage: "register the employee as inactive"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		inactive, _ := cmd.Flags().GetBool("inactive")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runEmployeeAdd(ctx, cmd, a.Services.Employee, args, !inactive)
		})
	},
}.Build()

func runEmployeeAdd(ctx context.Context, cmd *cobra.Command, svc employee.EmployeeService, args []string, active bool) error {
	fingerID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("finger id must be a number: %q", args[0])
	}
	e, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		FingerID: fingerID,
		Name:     strings.Join(args[1:], " "),
		Active:   &active,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "employee %s registered as #%d\n", Primary(e.Name), e.FingerID)
	return nil
}

var employeeRemoveCmd = LeafCommand{
	Use:   "remove FINGER_ID",
	Short: "Remove an employee and all of their attendance records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runEmployeeRemove(ctx, cmd, a.Services.Employee, args[0])
		})
	},
}.Build()

func runEmployeeRemove(ctx context.Context, cmd *cobra.Command, svc employee.EmployeeService, arg string) error {
	fingerID, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("finger id must be a number: %q", arg)
	}
	if err := svc.Delete(ctx, fingerID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "employee #%s removed\n", Primary(arg))
	return nil
}

var employeeCmd = GroupCommand{
	Use:   "employee",
	Short: "Manage employees",
	Subcommands: []*cobra.Command{
		employeeListCmd,
		employeeAddCmd,
		employeeRemoveCmd,
	},
}.Build()
