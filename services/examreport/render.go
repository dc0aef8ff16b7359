package examreport

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func reportTable(r Report) table.Writer {
	t := table.NewWriter()

	header := table.Row{"Activity", "Professor", "Total"}
	for _, month := range r.MonthColumns {
		header = append(header, month.String())
	}
	t.AppendHeader(header)

	for _, row := range r.Rows {
		out := table.Row{row.ActivityLabel, row.Professor, row.TotalDates}
		for _, month := range r.MonthColumns {
			out = append(out, row.PerMonth[month])
		}
		t.AppendRow(out)
	}

	return t
}

// RenderReport prints the rectangular report to stdout.
func RenderReport(r Report) {
	t := reportTable(r)
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// WriteCSV writes the same rectangle in CSV form for spreadsheet
// consumers.
func WriteCSV(w io.Writer, r Report) error {
	t := reportTable(r)
	_, err := io.WriteString(w, t.RenderCSV())
	return err
}
