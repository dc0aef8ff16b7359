package esse3

import "time"

// Professor sentinels. The two are deliberately distinct: Unspecified
// means the source row simply carried no professor, TBD means the
// extraction pipeline had degraded to the date-only fallback and never
// saw a professor column at all.
const (
	ProfessorUnspecified = "Unspecified"
	ProfessorTBD         = "To be determined"
)

// NamedEntity is a department or a course as listed by the esse3
// search form. Identity is the opaque ID, the name is only for
// display and matching.
type NamedEntity struct {
	ID       string
	Name     string
	ParentID string
}

// ActivityRef is a schedulable teaching unit under a course, the unit
// at which exam dates are queried.
type ActivityRef struct {
	ID    string
	Label string
}

// RawExamRecord is one detected row/line from a search result page.
// DateText always contains at least one plausible date token.
type RawExamRecord struct {
	DateText      string
	TimeText      string
	DetailsText   string
	ProfessorName string
	NoteText      string
	ActivityLabel string
}

type NormalizedExam struct {
	Date          time.Time
	Professor     string
	ActivityLabel string
}
