package commands

import (
	"esse3report/lib/serviceutil"
	"esse3report/services/examreport"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Fuzzy-searches departments and courses by name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		service := examreport.NewService(newClient(ctx), nil)

		suggestions, err := service.SmartSearch(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("search failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Kind", "Name", "ID", "Score"})
		for _, s := range suggestions {
			t.AppendRow(table.Row{
				s.Kind,
				s.Entity.Name,
				s.Entity.ID,
				fmt.Sprintf("%.2f", s.Score),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
