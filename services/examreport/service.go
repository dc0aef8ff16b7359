package examreport

import (
	"context"
	"esse3report/lib/scrapers/esse3"
	"esse3report/lib/timezone"
	"fmt"
	"log/slog"
	"time"
)

// how many department scopes a failed course lookup will broaden
// into before giving up
const maxDepartmentScopes = 3

type Service struct {
	client *esse3.Client
	store  *Store
}

// NewService wires the scraper client and an optional store; pass a
// nil store to skip persistence.
func NewService(client *esse3.Client, store *Store) Service {
	return Service{client: client, store: store}
}

type RunOptions struct {
	Course string
	Months int
	// zero value means "today"
	StartDate time.Time
}

type RunResult struct {
	Course      esse3.NamedEntity
	WindowStart time.Time
	WindowEnd   time.Time
	Raw         []esse3.RawExamRecord
	Report      Report
}

// Run executes one full scrape: form discovery, course resolution,
// per-activity exam search and aggregation. Individual activity
// failures are logged and skipped; whatever was collected still makes
// it into the report.
func (s Service) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	if opts.Months < 1 || opts.Months > 12 {
		return RunResult{}, fmt.Errorf("months must be within [1, 12], got %d", opts.Months)
	}

	start := opts.StartDate
	if start.IsZero() {
		start = timezone.Now()
	}
	end := start.AddDate(0, 0, opts.Months*30)

	form, err := s.client.FormData(ctx)
	if err != nil {
		return RunResult{}, err
	}
	form["data_da"] = esse3.FormatDate(start)
	form["data_a"] = esse3.FormatDate(end)

	course, err := s.FindCourse(ctx, opts.Course)
	if err != nil {
		return RunResult{}, err
	}
	slog.InfoContext(ctx, "course resolved", "name", course.Name, "id", course.ID)

	activities, err := s.client.Activities(ctx, form, course.ID)
	if err != nil {
		return RunResult{}, err
	}
	if len(activities) == 0 {
		slog.WarnContext(ctx, "course has no teaching activities", "course", course.Name)
	}

	var raw []esse3.RawExamRecord
	for i, activity := range activities {
		slog.InfoContext(
			ctx, "searching exams",
			"activity", activity.Label,
			"progress", fmt.Sprintf("%d/%d", i+1, len(activities)),
		)
		records, err := s.client.SearchExams(ctx, form, activity)
		if err != nil {
			if ctx.Err() != nil {
				// keep partial results on cancellation
				break
			}
			slog.WarnContext(ctx, "exam search failed, skipping activity", "activity", activity.Label, "err", err)
			continue
		}
		if len(records) == 0 {
			slog.WarnContext(ctx, "no exam data for activity", "activity", activity.Label)
		}
		raw = append(raw, records...)
	}

	result := RunResult{
		Course:      course,
		WindowStart: start,
		WindowEnd:   end,
		Raw:         raw,
		Report:      Aggregate(raw, start, end),
	}

	if s.store != nil {
		if _, err := s.store.SaveRun(ctx, result); err != nil {
			slog.WarnContext(ctx, "failed to persist run", "err", err)
		}
	}

	return result, nil
}

// FindCourse resolves a course name against the unscoped catalog
// first, then broadens into at most three department scopes. On
// failure the closest catalog names are logged as hints.
func (s Service) FindCourse(ctx context.Context, name string) (esse3.NamedEntity, error) {
	catalog, err := s.client.Courses(ctx, "")
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch unscoped course catalog", "err", err)
	}
	if course, ok := Resolve(name, catalog); ok {
		return course, nil
	}

	slog.InfoContext(ctx, "course not in primary catalog, broadening to departments", "course", name)
	departments, err := s.client.Departments(ctx)
	if err != nil {
		slog.WarnContext(ctx, "department discovery failed", "err", err)
	}

	scopes := departments
	if len(scopes) > maxDepartmentScopes {
		scopes = scopes[:maxDepartmentScopes]
	}
	for _, dept := range scopes {
		scoped, err := s.client.Courses(ctx, dept.ID)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch scoped catalog", "department", dept.Name, "err", err)
			continue
		}
		if course, ok := Resolve(name, scoped); ok {
			slog.InfoContext(ctx, "course found in department", "department", dept.Name, "course", course.Name)
			return course, nil
		}
		catalog = append(catalog, scoped...)
	}

	if hints := ClosestNames(name, catalog, 3); len(hints) > 0 {
		slog.WarnContext(ctx, "course not found, did you mean", "course", name, "closest", hints)
	}
	return esse3.NamedEntity{}, fmt.Errorf("course %q: %w", name, ErrResolutionFailed)
}

// SmartSearch ranks departments and courses against a free-form term,
// returning the top matches across both catalogs.
func (s Service) SmartSearch(ctx context.Context, term string) ([]Suggestion, error) {
	var candidates []Suggestion

	departments, err := s.client.Departments(ctx)
	if err != nil {
		slog.WarnContext(ctx, "department catalog unavailable for search", "err", err)
	}
	for _, dept := range departments {
		candidates = append(candidates, Suggestion{Entity: dept, Kind: "department"})
	}

	courses, err := s.client.Courses(ctx, "")
	if err != nil {
		slog.WarnContext(ctx, "course catalog unavailable for search", "err", err)
	}
	for _, course := range courses {
		candidates = append(candidates, Suggestion{Entity: course, Kind: "course"})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no catalogs available to search")
	}
	return RankSuggestions(term, candidates), nil
}
