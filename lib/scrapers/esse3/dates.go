package esse3

import (
	"esse3report/lib/timezone"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "02/01/2006"

// parse layout accepts both padded and unpadded day/month, which is
// what the dd/mm/yyyy tokens in the wild actually look like.
const dateParseLayout = "2/1/2006"

var (
	dateRegex = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	timeRegex = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)

	dateLeadRegex = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}`)
	timeLeadRegex = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

// ParseDate parses a dd/mm/yyyy token, rejecting values that are not
// real calendar dates (31/02/2025 and the like).
func ParseDate(token string) (time.Time, error) {
	return time.ParseInLocation(dateParseLayout, strings.TrimSpace(token), timezone.Location)
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ExtractDates scans text for dd/mm/yyyy tokens and returns at most
// the first one that validates as a real calendar date. A field holds
// one primary exam date even when incidental numbers are around it.
func ExtractDates(text string) []time.Time {
	for _, token := range dateRegex.FindAllString(text, -1) {
		d, err := ParseDate(token)
		if err != nil {
			continue
		}
		return []time.Time{d}
	}
	return nil
}

// NormalizeRecord turns a raw record into zero or one NormalizedExam.
// Records whose date cannot be parsed, or falls outside [start, end],
// are dropped; a parse failure is logged and never fatal.
func NormalizeRecord(rec RawExamRecord, start, end time.Time) (NormalizedExam, bool) {
	dates := ExtractDates(rec.DateText)

	var date time.Time
	if len(dates) > 0 {
		date = dates[0]
	} else {
		literal := strings.TrimSpace(rec.DateText)
		if literal == "" {
			return NormalizedExam{}, false
		}
		var err error
		date, err = ParseDate(literal)
		if err != nil {
			slog.Warn("ignoring record with unparseable date", "date_text", literal)
			return NormalizedExam{}, false
		}
	}

	if date.Before(start) || date.After(end) {
		return NormalizedExam{}, false
	}

	professor := strings.TrimSpace(rec.ProfessorName)
	if professor == "" {
		professor = ProfessorUnspecified
	}

	return NormalizedExam{
		Date:          date,
		Professor:     professor,
		ActivityLabel: rec.ActivityLabel,
	}, true
}
