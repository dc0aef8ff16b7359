package commands

import (
	"esse3report/lib/serviceutil"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dumps the markup structure of the search page, for debugging broken discovery.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		page, err := newClient(ctx).InspectPage(ctx)
		if err != nil {
			serviceutil.Fatal("failed to inspect page", err)
		}

		fmt.Printf("page title: %s\n\n", page.Title)

		selects := table.NewWriter()
		selects.SetOutputMirror(os.Stdout)
		selects.AppendHeader(table.Row{"Select", "ID", "Options", "First options"})
		for _, sel := range page.Selects {
			firstOptions := ""
			for i, opt := range sel.FirstOptions {
				if i > 0 {
					firstOptions += ", "
				}
				firstOptions += fmt.Sprintf("%s=%q", opt.Value, opt.Label)
			}
			selects.AppendRow(table.Row{sel.Name, sel.ID, sel.OptionsCount, firstOptions})
		}
		selects.SetStyle(table.StyleRounded)
		selects.Render()

		forms := table.NewWriter()
		forms.SetOutputMirror(os.Stdout)
		forms.AppendHeader(table.Row{"Form", "Name", "Action", "Method"})
		for _, form := range page.Forms {
			forms.AppendRow(table.Row{form.ID, form.Name, form.Action, form.Method})
		}
		forms.SetStyle(table.StyleRounded)
		forms.Render()

		hidden := table.NewWriter()
		hidden.SetOutputMirror(os.Stdout)
		hidden.AppendHeader(table.Row{"Hidden input", "Value"})
		for _, input := range page.Hidden {
			hidden.AppendRow(table.Row{input.Name, input.Value})
		}
		hidden.SetStyle(table.StyleRounded)
		hidden.Render()
	},
}
