package commands

import (
	"esse3report/lib/serviceutil"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(departmentsCmd)
}

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Lists the departments (schools) the site currently offers.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		departments, err := newClient(ctx).Departments(ctx)
		if err != nil {
			serviceutil.Fatal("failed to fetch departments", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Department"})
		for _, dept := range departments {
			t.AppendRow(table.Row{dept.ID, dept.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
