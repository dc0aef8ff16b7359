package commands

import (
	"esse3report/lib/serviceutil"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var coursesDept *string

func init() {
	coursesDept = coursesCmd.Flags().String("dept", "", "Department ID to scope the catalog to.")
	rootCmd.AddCommand(coursesCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses [--dept <id>]",
	Short: "Lists the courses the site currently offers.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		courses, err := newClient(ctx).Courses(ctx, *coursesDept)
		if err != nil {
			serviceutil.Fatal("failed to fetch courses", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Course"})
		for _, course := range courses {
			t.AppendRow(table.Row{course.ID, course.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
