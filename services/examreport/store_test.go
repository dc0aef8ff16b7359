package examreport

import (
	"context"
	"encoding/json"
	"esse3report/lib/scrapers/esse3"
	"esse3report/lib/sqliteutil"
	"esse3report/services/examreport/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqldb, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })
	return NewStore(sqldb)
}

func testRunResult() RunResult {
	start := day(2025, time.July, 1)
	end := day(2025, time.August, 31)
	raw := []esse3.RawExamRecord{
		{
			ActivityLabel: "Sistemi Operativi",
			DateText:      "03/07/2025 - 09:30",
			TimeText:      "09:30",
			DetailsText:   "Scritto",
			ProfessorName: "Mario Rossi",
			NoteText:      "Aula 3",
		},
		{
			ActivityLabel: "Sistemi Operativi",
			DateText:      "15/08/2025",
			ProfessorName: "Mario Rossi",
		},
	}
	return RunResult{
		Course:      esse3.NamedEntity{ID: "301", Name: "Informatica"},
		WindowStart: start,
		WindowEnd:   end,
		Raw:         raw,
		Report:      Aggregate(raw, start, end),
	}
}

func TestSaveRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	runID, err := store.SaveRun(ctx, testRunResult())
	require.NoError(t, err)
	require.Greater(t, runID, int64(0))

	count, err := store.CountRunRecords(ctx, runID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var monthsJson string
	err = store.db.QueryRowContext(
		ctx,
		`SELECT months_json FROM report_row WHERE run_id = ?`,
		runID,
	).Scan(&monthsJson)
	require.NoError(t, err)

	var months map[string]string
	require.NoError(t, json.Unmarshal([]byte(monthsJson), &months))
	require.Equal(t, map[string]string{
		"July":   "3",
		"August": "15",
	}, months)
}

func TestSaveRunIsolatesRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.SaveRun(ctx, testRunResult())
	require.NoError(t, err)
	second, err := store.SaveRun(ctx, testRunResult())
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	count, err := store.CountRunRecords(ctx, second)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
