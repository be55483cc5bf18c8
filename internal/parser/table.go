package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/mood"
)

// Table is a header row plus data rows. Every observation store returns this shape.
type Table struct {
	Header []string
	Rows   [][]string
}

// Options controls how rows become observations.
type Options struct {
	// Location interprets timestamps written without an offset. Nil means time.Local.
	Location *time.Location
	// Sheet selects the worksheet when reading XLSX files. Empty means the first sheet.
	Sheet string
}

// Result holds the observations that survived parsing.
type Result struct {
	Observations []mood.Observation
	Rows         int
	Skipped      int
}

// Schema holds column indices of the logical fields; -1 means absent.
type Schema struct {
	Mood      int
	Score     int
	Timestamp int
	User      int
}

var (
	moodNames      = []string{"mood", "moods"}
	scoreNames     = []string{"score", "skor"}
	timestampNames = []string{"timestamp", "time", "created_at", "date"}
	userNames      = []string{"user_id", "userid", "user"}
)

// ResolveSchema maps header names onto the logical schema regardless of
// column order. Mood, score and timestamp are required, except for the
// legacy two-column date,mood shape where the score comes from the label.
func ResolveSchema(header []string) (Schema, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(unquote(h))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	s := Schema{
		Mood:      findColumn(idx, moodNames),
		Score:     findColumn(idx, scoreNames),
		Timestamp: findColumn(idx, timestampNames),
		User:      findColumn(idx, userNames),
	}
	if s.Mood < 0 || s.Timestamp < 0 {
		return Schema{}, mood.ErrUnrecognizedSchema
	}
	if s.Score < 0 && len(header) != 2 {
		return Schema{}, mood.ErrUnrecognizedSchema
	}
	return s, nil
}

func findColumn(idx map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i
		}
	}
	return -1
}

func (s Schema) required() int {
	m := s.Mood
	if s.Timestamp > m {
		m = s.Timestamp
	}
	if s.Score > m {
		m = s.Score
	}
	return m
}

// Parse turns a table into observations in input order. Malformed rows are
// dropped and counted; a header that matches no schema abandons the batch.
func Parse(tbl Table, opt Options) (*Result, error) {
	res := &Result{}
	if len(tbl.Header) == 0 {
		return res, nil
	}
	schema, err := ResolveSchema(tbl.Header)
	if err != nil {
		return res, err
	}
	need := schema.required()
	for _, row := range tbl.Rows {
		res.Rows++
		o, ok := parseRow(row, schema, need, opt.Location)
		if !ok {
			res.Skipped++
			continue
		}
		res.Observations = append(res.Observations, o)
	}
	return res, nil
}

func parseRow(row []string, s Schema, need int, loc *time.Location) (mood.Observation, bool) {
	if len(row) <= need {
		return mood.Observation{}, false
	}
	label := unquote(row[s.Mood])
	if label == "" {
		return mood.Observation{}, false
	}
	at, err := NormalizeTimestamp(unquote(row[s.Timestamp]), loc)
	if err != nil {
		return mood.Observation{}, false
	}
	var score int
	var scoreOK bool
	if s.Score >= 0 {
		score, err = strconv.Atoi(unquote(row[s.Score]))
		scoreOK = err == nil
	}
	o := mood.Observation{
		Mood:  label,
		Score: mood.Reconcile(label, score, scoreOK),
		At:    at,
	}
	if s.User >= 0 && s.User < len(row) {
		o.Owner = unquote(row[s.User])
	}
	return o, true
}

// ParseText splits a comma-separated body into a Table. The first non-blank
// line is the header. Quoted fields are not unescaped beyond quote stripping
// at parse time, and embedded commas are not supported.
func ParseText(body string) Table {
	var tbl Table
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if tbl.Header == nil {
			tbl.Header = fields
			continue
		}
		tbl.Rows = append(tbl.Rows, fields)
	}
	return tbl
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}
