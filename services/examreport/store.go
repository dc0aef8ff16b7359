package examreport

import (
	"context"
	"database/sql"
	"encoding/json"
	"esse3report/lib/timezone"
	"time"
)

// Store persists completed runs: the raw records exactly as extracted
// plus the aggregated report rows, so a broken extraction can be
// re-analyzed without hitting the site again.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveRun(ctx context.Context, result RunResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO run (course_id, course_name, window_start, window_end, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		result.Course.ID,
		result.Course.Name,
		result.WindowStart.Format(time.RFC3339),
		result.WindowEnd.Format(time.RFC3339),
		timezone.Now().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, rec := range result.Raw {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO raw_exam_record
			(run_id, activity_label, date_text, time_text, details_text, professor_name, note_text)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.ActivityLabel, rec.DateText, rec.TimeText,
			rec.DetailsText, rec.ProfessorName, rec.NoteText,
		)
		if err != nil {
			return 0, err
		}
	}

	for _, row := range result.Report.Rows {
		months := map[string]string{}
		for month, days := range row.PerMonth {
			if days != "" {
				months[month.String()] = days
			}
		}
		monthsJson, err := json.Marshal(months)
		if err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO report_row (run_id, activity_label, professor, total_dates, months_json)
			VALUES (?, ?, ?, ?, ?)`,
			runID, row.ActivityLabel, row.Professor, row.TotalDates, string(monthsJson),
		)
		if err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}

// CountRunRecords reports how many raw records a run persisted.
func (s *Store) CountRunRecords(ctx context.Context, runID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM raw_exam_record WHERE run_id = ?`,
		runID,
	).Scan(&count)
	return count, err
}
