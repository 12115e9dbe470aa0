package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedImport is returned when the CSV cannot be parsed. Nothing from
// a malformed file is imported.
var ErrMalformedImport = errors.New("malformed import")

// missingTokens are cell values read as a missing value, matching what the
// registration spreadsheet tooling writes for blank answers.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"-nan": {},
	"null": {},
	"NULL": {},
	"None": {},
	"<NA>": {},
}

// Batch is a fully parsed CSV file.
type Batch struct {
	Columns []string
	Records []RawRecord
}

// ReadCSV parses a CSV with a header row. The whole input is read before
// returning so a failure never yields a partial batch.
func ReadCSV(r io.Reader) (Batch, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Batch{}, fmt.Errorf("%w: no header row", ErrMalformedImport)
		}
		return Batch{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	columns := uniqueColumns(header)

	var records []RawRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
		}
		if len(row) > len(columns) {
			line, _ := reader.FieldPos(0)
			return Batch{}, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformedImport, line, len(row), len(columns))
		}
		record := make(RawRecord, len(columns))
		for i, column := range columns {
			if i >= len(row) {
				record[column] = nil
				continue
			}
			if _, missing := missingTokens[row[i]]; missing {
				record[column] = nil
				continue
			}
			record[column] = row[i]
		}
		records = append(records, record)
	}
	return Batch{Columns: columns, Records: records}, nil
}

// uniqueColumns renames repeated headers to "Name.1", "Name.2", ... so no
// column silently overwrites another.
func uniqueColumns(header []string) []string {
	counts := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, name := range header {
		taken[name] = struct{}{}
	}
	out := make([]string, len(header))
	for i, name := range header {
		n := counts[name]
		counts[name] = n + 1
		if n == 0 {
			out[i] = name
			continue
		}
		candidate := name + "." + strconv.Itoa(n)
		for {
			if _, clash := taken[candidate]; !clash {
				break
			}
			n++
			candidate = name + "." + strconv.Itoa(n)
		}
		counts[name] = n + 1
		taken[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}
