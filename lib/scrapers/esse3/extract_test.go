package esse3

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractStructuredRows(t *testing.T) {
	doc := parseDoc(t, `
		<table>
			<tr class="rigaElenco">
				<td>03/07/2025</td><td>09:30</td><td>Scritto</td><td>Mario Rossi</td><td>Aula 3</td>
			</tr>
			<tr class="rigaElenco">
				<td>15/08/2025</td><td>10:00</td><td>Orale</td><td></td><td></td>
			</tr>
			<tr class="rigaElenco">
				<td>da definire</td><td>x</td><td>y</td>
			</tr>
			<tr>
				<td>20/09/2025</td><td>11:00</td><td>Scritto</td><td>Anna Bianchi</td>
			</tr>
		</table>`)

	got := Extract(context.Background(), doc)
	want := []RawExamRecord{
		{
			DateText:      "03/07/2025",
			TimeText:      "09:30",
			DetailsText:   "Scritto",
			ProfessorName: "Mario Rossi",
			NoteText:      "Aula 3",
		},
		{
			DateText:      "15/08/2025",
			TimeText:      "10:00",
			DetailsText:   "Orale",
			ProfessorName: ProfessorUnspecified,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractGenericTables(t *testing.T) {
	// no rigaElenco rows anywhere, so the chain falls through to the
	// positional table shape
	doc := parseDoc(t, `
		<table>
			<tr>
				<th>Corso</th><th>Periodo</th><th>Data</th><th>Tipo</th><th>Docente</th><th>Note</th>
			</tr>
			<tr>
				<td>Reti di Calcolatori</td><td>Primo semestre</td><td>03/07/2025 - 09:30</td>
				<td>Scritto</td><td>Anna Bianchi</td><td>Aula Magna</td>
			</tr>
			<tr>
				<td>Reti di Calcolatori</td><td>Primo semestre</td><td>da definire</td>
				<td>Orale</td><td>Anna Bianchi</td><td></td>
			</tr>
			<tr>
				<td>riga</td><td>troppo corta</td>
			</tr>
		</table>`)

	got := Extract(context.Background(), doc)
	want := []RawExamRecord{
		{
			DateText:      "03/07/2025 - 09:30",
			DetailsText:   "Scritto",
			ProfessorName: "Anna Bianchi",
			NoteText:      "Aula Magna",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractTextLines(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<p>Appello del 03/07/2025 alle ore 09:30 con Prof. Mario Rossi</p>
		<p>Appello del 15/08/2025</p>
		<p>Nessun altro appello in programma</p>
	</body></html>`)

	got := Extract(context.Background(), doc)
	want := []RawExamRecord{
		{
			DateText:      "Appello del 03/07/2025 alle ore 09:30 con Prof. Mario Rossi",
			TimeText:      "09:30",
			DetailsText:   "Appello del 03/07/2025 alle ore 09:30 con Prof. Mario Rossi",
			ProfessorName: "Prof. Mario Rossi",
		},
		{
			DateText:      "Appello del 15/08/2025",
			DetailsText:   "Appello del 15/08/2025",
			ProfessorName: ProfessorUnspecified,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractDateOnly(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<div>15/08/2025</div>
		<div>nessuna data qui</div>
	</body></html>`)

	got := extractDateOnly(doc)
	want := ExtractionOutcome{Records: []RawExamRecord{
		{
			DateText:      "15/08/2025",
			DetailsText:   "15/08/2025",
			ProfessorName: ProfessorTBD,
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractStagesNeverMerge(t *testing.T) {
	// both a tagged row and a generic five-column table are present;
	// only the tagged row may be extracted
	doc := parseDoc(t, `
		<table>
			<tr class="rigaElenco">
				<td>03/07/2025</td><td>09:30</td><td>Scritto</td>
			</tr>
		</table>
		<table>
			<tr><th>a</th><th>b</th><th>c</th><th>d</th><th>e</th><th>f</th></tr>
			<tr>
				<td>x</td><td>y</td><td>15/08/2025</td><td>Orale</td><td>Anna Bianchi</td><td></td>
			</tr>
		</table>`)

	got := Extract(context.Background(), doc)
	want := []RawExamRecord{
		{
			DateText:      "03/07/2025",
			TimeText:      "09:30",
			DetailsText:   "Scritto",
			ProfessorName: ProfessorUnspecified,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Nessun appello trovato.</p></body></html>`)
	if got := Extract(context.Background(), doc); got != nil {
		t.Fatalf("expected no records, got %v", got)
	}
}

func TestLooksLikeProfessor(t *testing.T) {
	testCases := []struct {
		text string
		want bool
	}{
		{"Mario Rossi", true},
		{"De Luca Giovanni", true},
		{"Scritto", false},
		{"orale", false},
		{"Rossi", false},
		{"mario rossi", false},
		{"03/07/2025", false},
		{"03/07/2025 Mario Rossi", false},
		{"09:30 Aula 3", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			if got := looksLikeProfessor(tc.text); got != tc.want {
				t.Fatalf("looksLikeProfessor(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
