package commands

import (
	"esse3report/lib/scrapers/esse3"
	"esse3report/lib/serviceutil"
	"esse3report/lib/sqliteutil"
	"esse3report/lib/timezone"
	"esse3report/services/examreport"
	"esse3report/services/examreport/db"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	reportCourse    *string
	reportMonths    *int
	reportStartDate *string
	reportOutput    *string
	reportDb        *string
)

func init() {
	reportCourse = reportCmd.Flags().StringP("course", "c", "cybersecurity", "Name of the course to search for.")
	reportMonths = reportCmd.Flags().IntP("months", "m", 6, "Number of months to search, within [1, 12].")
	reportStartDate = reportCmd.Flags().StringP("start-date", "s", "", "Search window start (dd/mm/yyyy), defaults to today.")
	reportOutput = reportCmd.Flags().StringP("output", "o", "", "Prefix for the CSV report file; empty skips the file.")
	reportDb = reportCmd.Flags().String("db", "", "Sqlite database to persist the run to; empty skips persistence.")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--course <name>] [--months <n>] [--start-date <dd/mm/yyyy>]",
	Short: "Scrapes exam dates for a course and renders the per-professor report.",
	Run: func(cmd *cobra.Command, args []string) {
		if *reportMonths < 1 || *reportMonths > 12 {
			serviceutil.Fatal("invalid flags", fmt.Errorf("--months must be within [1, 12], got %d", *reportMonths))
		}

		var startDate time.Time
		if *reportStartDate != "" {
			var err error
			startDate, err = esse3.ParseDate(*reportStartDate)
			if err != nil {
				serviceutil.Fatal("invalid --start-date, use dd/mm/yyyy", err)
			}
		}

		var store *examreport.Store
		if *reportDb != "" {
			database, err := sqliteutil.OpenDB(db.Schema, *reportDb)
			if err != nil {
				serviceutil.Fatal("failed to open run database", err)
			}
			defer database.Close()
			store = examreport.NewStore(database)
		}

		ctx := cmd.Context()
		service := examreport.NewService(newClient(ctx), store)

		t1 := time.Now()
		result, err := service.Run(ctx, examreport.RunOptions{
			Course:    *reportCourse,
			Months:    *reportMonths,
			StartDate: startDate,
		})
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info(
			"scrape finished",
			"records", len(result.Raw),
			"rows", len(result.Report.Rows),
			"seconds", time.Since(t1).Seconds(),
		)

		if len(result.Report.Rows) == 0 {
			fmt.Println("no exam dates found in the requested window")
			return
		}

		examreport.RenderReport(result.Report)

		if *reportOutput != "" {
			filename := fmt.Sprintf(
				"%s_report_%s.csv",
				*reportOutput,
				timezone.Now().Format("20060102_150405"),
			)
			f, err := os.Create(filename)
			if err != nil {
				serviceutil.Fatal("failed to create report file", err)
			}
			defer f.Close()
			if err := examreport.WriteCSV(f, result.Report); err != nil {
				serviceutil.Fatal("failed to write report file", err)
			}
			slog.Info("report written", "file", filename)
		}
	},
}
