package examreport

import (
	"esse3report/lib/scrapers/esse3"
	"esse3report/lib/timezone"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, timezone.Location)
}

func TestAggregate(t *testing.T) {
	start := day(2025, time.July, 1)
	end := day(2025, time.August, 31)

	records := []esse3.RawExamRecord{
		{ActivityLabel: "Sistemi Operativi", ProfessorName: "Mario Rossi", DateText: "03/07/2025 - 09:30"},
		// same day twice, must be deduplicated
		{ActivityLabel: "Sistemi Operativi", ProfessorName: "Mario Rossi", DateText: "03/07/2025 - 14:30"},
		{ActivityLabel: "Sistemi Operativi", ProfessorName: "Mario Rossi", DateText: "15/08/2025"},
		// empty professor collapses into the Unspecified group
		{ActivityLabel: "Sistemi Operativi", ProfessorName: "  ", DateText: "10/07/2025"},
		// entirely out of window, the whole group disappears
		{ActivityLabel: "Reti di Calcolatori", ProfessorName: "Anna Bianchi", DateText: "01/10/2025"},
	}

	got := Aggregate(records, start, end)
	want := Report{
		MonthColumns: []time.Month{time.July, time.August},
		Rows: []ReportRow{
			{
				ActivityLabel: "Sistemi Operativi",
				Professor:     "Mario Rossi",
				TotalDates:    2,
				PerMonth: map[time.Month]string{
					time.July:   "3",
					time.August: "15",
				},
			},
			{
				ActivityLabel: "Sistemi Operativi",
				Professor:     esse3.ProfessorUnspecified,
				TotalDates:    1,
				PerMonth: map[time.Month]string{
					time.July:   "10",
					time.August: "",
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestAggregateSortsDaysWithinMonth(t *testing.T) {
	start := day(2025, time.July, 1)
	end := day(2025, time.July, 31)

	records := []esse3.RawExamRecord{
		{ActivityLabel: "Analisi", ProfessorName: "Luca Verdi", DateText: "20/07/2025"},
		{ActivityLabel: "Analisi", ProfessorName: "Luca Verdi", DateText: "05/07/2025"},
		{ActivityLabel: "Analisi", ProfessorName: "Luca Verdi", DateText: "05/07/2025"},
		{ActivityLabel: "Analisi", ProfessorName: "Luca Verdi", DateText: "12/07/2025"},
	}

	got := Aggregate(records, start, end)
	if len(got.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(got.Rows))
	}
	if days := got.Rows[0].PerMonth[time.July]; days != "5/12/20" {
		t.Fatalf("got days %q, want 5/12/20", days)
	}
	if got.Rows[0].TotalDates != 3 {
		t.Fatalf("got total %d, want 3", got.Rows[0].TotalDates)
	}
}

func TestAggregateRowOrdering(t *testing.T) {
	start := day(2025, time.July, 1)
	end := day(2025, time.July, 31)

	records := []esse3.RawExamRecord{
		{ActivityLabel: "Sistemi Operativi", ProfessorName: "Mario Rossi", DateText: "03/07/2025"},
		{ActivityLabel: "Analisi", ProfessorName: "Luca Verdi", DateText: "05/07/2025"},
		{ActivityLabel: "Analisi", ProfessorName: "Anna Bianchi", DateText: "07/07/2025"},
	}

	got := Aggregate(records, start, end)

	type pair struct{ activity, professor string }
	var order []pair
	for _, row := range got.Rows {
		order = append(order, pair{row.ActivityLabel, row.Professor})
	}
	want := []pair{
		{"Analisi", "Anna Bianchi"},
		{"Analisi", "Luca Verdi"},
		{"Sistemi Operativi", "Mario Rossi"},
	}
	if diff := cmp.Diff(want, order, cmp.AllowUnexported(pair{})); diff != "" {
		t.Fatal(diff)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	start := day(2025, time.July, 1)
	end := day(2025, time.September, 30)

	records := []esse3.RawExamRecord{
		{ActivityLabel: "Analisi", ProfessorName: "Luca Verdi", DateText: "05/07/2025"},
		{ActivityLabel: "Analisi", ProfessorName: "Anna Bianchi", DateText: "07/09/2025"},
		{ActivityLabel: "Sistemi Operativi", ProfessorName: "Mario Rossi", DateText: "03/08/2025"},
	}

	first := Aggregate(records, start, end)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Aggregate(records, start, end)); diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	got := Aggregate(nil, day(2025, time.July, 1), day(2025, time.July, 31))
	want := Report{}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatal(diff)
	}
}
