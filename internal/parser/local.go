package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/mood"
)

// LocalHeader is the implicit header of the flat-file format (timestamp,mood,score).
var LocalHeader = []string{"timestamp", "mood", "score"}

// EncodeLine renders an observation as one flat-file line, without the newline.
func EncodeLine(o mood.Observation) string {
	return o.At.Format(time.RFC3339) + "," + o.Mood + "," + strconv.Itoa(o.Score)
}

// LocalTable places headerless records under LocalHeader. Legacy date,mood
// records are padded with an empty score so it is derived from the label.
func LocalTable(records [][]string) Table {
	tbl := Table{Header: LocalHeader, Rows: make([][]string, 0, len(records))}
	for _, rec := range records {
		row := make([]string, len(LocalHeader))
		copy(row, rec)
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

// ReadLocal reads the flat-file format. Blank lines are ignored.
func ReadLocal(r io.Reader) (Table, error) {
	var records [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		records = append(records, strings.Split(line, ","))
	}
	if err := sc.Err(); err != nil {
		return Table{}, fmt.Errorf("scan lines: %w", err)
	}
	return LocalTable(records), nil
}
