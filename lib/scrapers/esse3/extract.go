package esse3

import (
	"context"
	"esse3report/lib/htmlutil"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// cell text equal to one of these is an exam-type label, never a
// professor name.
var examTypeKeywords = []string{"scritto", "orale", "prova", "esame", "appello"}

var honorificRegex = regexp.MustCompile(`(?i)\b(prof\.|dott\.)\s*([A-Za-zÀ-ÿ]+\s+[A-Za-zÀ-ÿ]+)`)

type ExtractionOutcome struct {
	Records []RawExamRecord
}

func (o ExtractionOutcome) Empty() bool {
	return len(o.Records) == 0
}

type extractionStrategy struct {
	name string
	run  func(doc *goquery.Document) ExtractionOutcome
}

// Ordered from most to least structure-dependent. Only the first
// strategy that produces records is used; stages are never merged, so
// a malformed page degrades to coarser extraction instead of failing.
var extractionChain = []extractionStrategy{
	{"structured-rows", extractStructuredRows},
	{"generic-tables", extractGenericTables},
	{"text-lines", extractTextLines},
	{"date-only", extractDateOnly},
}

// Extract runs the fallback chain over a result page and returns the
// records of the first strategy that found any. An empty result is
// "no data for this page", never an error.
func Extract(ctx context.Context, doc *goquery.Document) []RawExamRecord {
	for _, strategy := range extractionChain {
		outcome := strategy.run(doc)
		if outcome.Empty() {
			continue
		}
		slog.DebugContext(
			ctx, "extraction strategy matched",
			"strategy", strategy.name,
			"records", len(outcome.Records),
		)
		return outcome.Records
	}
	slog.WarnContext(ctx, "no extraction strategy produced records")
	return nil
}

// looksLikeProfessor reports whether a cell's text plausibly holds a
// professor name: not an exam-type keyword, at least two words, at
// least one word starting uppercase, and not itself a date or a time.
func looksLikeProfessor(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range examTypeKeywords {
		if lower == kw {
			return false
		}
	}
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}
	hasUpper := false
	for _, w := range words {
		if unicode.IsUpper([]rune(w)[0]) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return false
	}
	if dateLeadRegex.MatchString(text) || timeLeadRegex.MatchString(text) {
		return false
	}
	return true
}

func cellText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return ""
	}
	return htmlutil.CleanText(cells.Eq(i).Text())
}

// Strategy 1: rows explicitly tagged as result rows. The professor is
// wherever it is, so every cell is probed with looksLikeProfessor;
// dates, times, details and notes are positional.
func extractStructuredRows(doc *goquery.Document) ExtractionOutcome {
	var records []RawExamRecord

	doc.Find("tr.rigaElenco").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		dateText := cellText(cells, 0)
		if !dateRegex.MatchString(dateText) {
			return
		}

		professor := ProfessorUnspecified
		for i := 0; i < cells.Length(); i++ {
			if text := cellText(cells, i); looksLikeProfessor(text) {
				professor = text
				break
			}
		}

		records = append(records, RawExamRecord{
			DateText:      dateText,
			TimeText:      cellText(cells, 1),
			DetailsText:   cellText(cells, 2),
			ProfessorName: professor,
			NoteText:      cellText(cells, 4),
		})
	})

	return ExtractionOutcome{Records: records}
}

// Strategy 2: any table whose rows carry the known five-column shape:
// cell 2 is date/time, cell 3 exam type, cell 4 professor. The first
// row of every table is assumed to be a header.
func extractGenericTables(doc *goquery.Document) ExtractionOutcome {
	var records []RawExamRecord

	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		tbl.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
			if rowIdx == 0 {
				return
			}
			cells := row.Find("td, th")
			if cells.Length() < 5 {
				return
			}

			dateText := cellText(cells, 2)
			if !dateRegex.MatchString(dateText) {
				return
			}

			professor := cellText(cells, 4)
			if professor == "" {
				professor = ProfessorUnspecified
			}

			records = append(records, RawExamRecord{
				DateText: dateText,
				// the time is already part of the date cell here
				TimeText:      "",
				DetailsText:   cellText(cells, 3),
				ProfessorName: professor,
				NoteText:      cellText(cells, 5),
			})
		})
	})

	return ExtractionOutcome{Records: records}
}

// Strategy 3: no usable tables at all, scan the visible text line by
// line. A line with a date qualifies; time and professor tokens are
// picked up opportunistically.
func extractTextLines(doc *goquery.Document) ExtractionOutcome {
	var records []RawExamRecord

	for _, line := range htmlutil.VisibleLines(doc) {
		if !dateRegex.MatchString(line) {
			continue
		}

		record := RawExamRecord{
			DateText:      line,
			DetailsText:   line,
			ProfessorName: ProfessorUnspecified,
		}
		if match := timeRegex.FindString(line); match != "" {
			record.TimeText = match
		}
		if match := honorificRegex.FindString(line); match != "" {
			record.ProfessorName = match
		}
		records = append(records, record)
	}

	return ExtractionOutcome{Records: records}
}

// Strategy 4: last resort, every line holding a date becomes a record.
// The TBD sentinel marks that the pipeline degraded this far, as
// opposed to the source genuinely omitting the professor.
func extractDateOnly(doc *goquery.Document) ExtractionOutcome {
	var records []RawExamRecord

	for _, line := range htmlutil.VisibleLines(doc) {
		if !dateRegex.MatchString(line) {
			continue
		}
		records = append(records, RawExamRecord{
			DateText:      line,
			DetailsText:   line,
			ProfessorName: ProfessorTBD,
		})
	}

	return ExtractionOutcome{Records: records}
}
