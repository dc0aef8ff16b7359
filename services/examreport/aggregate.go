package examreport

import (
	"esse3report/lib/scrapers/esse3"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ReportRow is one (activity, professor) pair of the final report.
// PerMonth maps every month of the report's column union to a
// "/"-joined ascending list of unique day numbers, empty string when
// this pair has no date in that month.
type ReportRow struct {
	ActivityLabel string
	Professor     string
	TotalDates    int
	PerMonth      map[time.Month]string
}

// Report is the rectangular result of one aggregation: rows sorted by
// (activity, professor) and the union of months that carry any exam,
// in calendar order.
type Report struct {
	Rows         []ReportRow
	MonthColumns []time.Month
}

// Aggregate groups raw records by (activity, professor), normalizes
// and window-filters every date, buckets the survivors by month and
// builds the report. Groups left with no in-window date disappear
// entirely. The output is deterministic for a given input.
func Aggregate(records []esse3.RawExamRecord, start, end time.Time) Report {
	type groupKey struct {
		activity  string
		professor string
	}

	grouped := map[groupKey][]esse3.RawExamRecord{}
	var order []groupKey
	for _, rec := range records {
		professor := strings.TrimSpace(rec.ProfessorName)
		if professor == "" {
			professor = esse3.ProfessorUnspecified
		}
		key := groupKey{activity: rec.ActivityLabel, professor: professor}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], rec)
	}

	monthUnion := map[time.Month]struct{}{}
	type bucketedGroup struct {
		key     groupKey
		byMonth map[time.Month][]int
		total   int
	}

	var groups []bucketedGroup
	for _, key := range order {
		byMonth := map[time.Month]map[int]struct{}{}
		for _, rec := range grouped[key] {
			exam, ok := esse3.NormalizeRecord(rec, start, end)
			if !ok {
				continue
			}
			month := exam.Date.Month()
			if byMonth[month] == nil {
				byMonth[month] = map[int]struct{}{}
			}
			byMonth[month][exam.Date.Day()] = struct{}{}
		}
		if len(byMonth) == 0 {
			continue
		}

		group := bucketedGroup{key: key, byMonth: map[time.Month][]int{}}
		for month, daySet := range byMonth {
			days := make([]int, 0, len(daySet))
			for day := range daySet {
				days = append(days, day)
			}
			sort.Ints(days)
			group.byMonth[month] = days
			group.total += len(days)
			monthUnion[month] = struct{}{}
		}
		groups = append(groups, group)
	}

	columns := make([]time.Month, 0, len(monthUnion))
	for month := range monthUnion {
		columns = append(columns, month)
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i] < columns[j] })

	rows := make([]ReportRow, 0, len(groups))
	for _, group := range groups {
		row := ReportRow{
			ActivityLabel: group.key.activity,
			Professor:     group.key.professor,
			TotalDates:    group.total,
			PerMonth:      map[time.Month]string{},
		}
		// backfill so every row carries every column
		for _, month := range columns {
			row.PerMonth[month] = joinDays(group.byMonth[month])
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ActivityLabel != rows[j].ActivityLabel {
			return rows[i].ActivityLabel < rows[j].ActivityLabel
		}
		return rows[i].Professor < rows[j].Professor
	})

	return Report{Rows: rows, MonthColumns: columns}
}

func joinDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = strconv.Itoa(day)
	}
	return strings.Join(parts, "/")
}
