package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type csvSource struct{}

func (csvSource) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
}

// Read loads a CSV file. A first record that starts with a timestamp marks
// the headerless flat-file format; anything else is the header.
func (csvSource) Read(path string, _ Options) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Table{}, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	if headerless(records[0]) {
		return LocalTable(records), nil
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

func headerless(first []string) bool {
	if len(first) == 0 {
		return false
	}
	_, err := NormalizeTimestamp(unquote(first[0]), nil)
	return err == nil
}
