package importer

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/thecola13/team-maker/internal/roster"
)

const sampleCSV = `Full Name,Email,Phone,Degree Program,Year of Study,First Track,Motivation,LinkedIn,GitHub,CV (Drive Link)
Tommaso Giacomello,tommaso.giacomello@studbocconi.it,123,BEMACS,3,ML,Build things,,,
Ada Lovelace,ada@example.com,NaN,Maths,2,Entrepreneurship,"Engines, mostly",https://linkedin.com/in/ada,,
`

func TestNormalizeStringifiesValues(t *testing.T) {
	got := Normalize(RawRecord{
		"Email":   "a@x",
		"Phone":   float64(123),
		"Year":    int64(2),
		"Missing": nil,
		"Ratio":   math.NaN(),
		"Flag":    true,
	})
	want := map[string]string{"Email": "a@x", "Phone": "123", "Year": "2", "Missing": "", "Ratio": "", "Flag": "true"}
	if len(got) != len(want) {
		t.Fatalf("normalize kept %d columns, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q", k, got[k], v)
		}
	}
	if len(Normalize(RawRecord{})) != 0 {
		t.Fatalf("empty record must stay empty")
	}
}

func TestDedupFirstSeenWins(t *testing.T) {
	batch := []RawRecord{
		{"Email": "a@x", "Name": "A1"},
		{"Email": "a@x", "Name": "A2"},
	}
	got := Dedup(batch, nil)
	if len(got) != 1 || got[0]["Name"] != "A1" {
		t.Fatalf("Dedup = %v, want single A1", got)
	}
}

func TestDedupSkipsMissingEmailAndExisting(t *testing.T) {
	existing := []roster.Participant{{"Email": "old@x"}, {"Full Name": "no email"}}
	batch := []RawRecord{
		{"Email": "old@x"},
		{"Email": nil, "Full Name": "ghost"},
		{"Full Name": "no column"},
		{"Email": "new@x"},
		{"Email": "NEW@x"},
	}
	got := Dedup(batch, existing)
	if len(got) != 2 || got[0].Email() != "new@x" || got[1].Email() != "NEW@x" {
		t.Fatalf("Dedup = %v, want new@x then NEW@x", got)
	}
}

func TestDedupKeepsWhitespaceEmail(t *testing.T) {
	got := Dedup([]RawRecord{{"Email": " "}, {"Email": " "}, {"Email": ""}}, nil)
	if len(got) != 1 || got[0].Email() != " " {
		t.Fatalf("Dedup = %v, want a single record keyed by a space", got)
	}
}

func TestDedupIsIdempotent(t *testing.T) {
	batch, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	current := []roster.Participant{{"Email": "someone@x"}}
	first := Dedup(batch.Records, current)
	if len(first) != 2 {
		t.Fatalf("first import = %d, want 2", len(first))
	}
	merged := append(first, current...)
	if again := Dedup(batch.Records, merged); len(again) != 0 {
		t.Fatalf("re-import = %v, want nothing", again)
	}
}

func TestReadCSV(t *testing.T) {
	batch, err := ReadCSV(strings.NewReader("\ufeff" + sampleCSV))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if batch.Columns[0] != "Full Name" {
		t.Fatalf("first column = %q, BOM not stripped", batch.Columns[0])
	}
	if len(batch.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(batch.Records))
	}
	ada := Normalize(batch.Records[1])
	if ada["Phone"] != "" {
		t.Fatalf("NaN phone = %q, want empty", ada["Phone"])
	}
	if ada["Motivation"] != "Engines, mostly" {
		t.Fatalf("quoted field = %q", ada["Motivation"])
	}
	if ada["GitHub"] != "" {
		t.Fatalf("blank cell = %q, want empty", ada["GitHub"])
	}
}

func TestReadCSVShortRowsAndDuplicateHeaders(t *testing.T) {
	batch, err := ReadCSV(strings.NewReader("Email,Note,Note\na@x\n"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := []string{"Email", "Note", "Note.1"}
	for i := range want {
		if batch.Columns[i] != want[i] {
			t.Fatalf("columns = %v, want %v", batch.Columns, want)
		}
	}
	record := Normalize(batch.Records[0])
	if record["Note.1"] != "" || record["Email"] != "a@x" {
		t.Fatalf("short row = %v", record)
	}
}

func TestReadCSVMalformed(t *testing.T) {
	for name, input := range map[string]string{
		"empty":      "",
		"long row":   "Email\na@x,extra\n",
		"bare quote": "Email,Name\na@x,Bo\"b\n",
	} {
		if _, err := ReadCSV(strings.NewReader(input)); !errors.Is(err, ErrMalformedImport) {
			t.Fatalf("%s: err = %v, want ErrMalformedImport", name, err)
		}
	}
}
