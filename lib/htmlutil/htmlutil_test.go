package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs of whitespace", "Mario   Rossi", "Mario Rossi"},
		{"trims edges", "\n\t 03/07/2025 \n", "03/07/2025"},
		{"strips non-printable", "Aula3", "Aula3"},
		{"empty", "   \n ", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.in); got != tc.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestVisibleLines(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>
		<p>Appello del 03/07/2025</p>

		<p>   </p>
		<div>Prof.   Mario Rossi</div>
	</body></html>`))
	if err != nil {
		t.Fatal(err)
	}

	got := VisibleLines(doc)
	want := []string{
		"Appello del 03/07/2025",
		"Prof. Mario Rossi",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}
