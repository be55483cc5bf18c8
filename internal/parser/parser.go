package parser

import (
	"fmt"
	"os"
)

// Source reads a tabular file into a Table.
type Source interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (Table, error)
}

var registry []Source

// Register adds a source implementation to the registry.
func Register(s Source) {
	registry = append(registry, s)
}

// ReadFile selects a source based on filename and returns its table.
// Unknown extensions are read as comma-separated text.
func ReadFile(path string, opt Options) (Table, error) {
	if _, err := os.Stat(path); err != nil {
		return Table{}, fmt.Errorf("read file: %w", err)
	}
	for _, s := range registry {
		if s.CanRead(path) {
			return s.Read(path, opt)
		}
	}
	return csvSource{}.Read(path, opt)
}

// ParseFile reads a file through the registry and parses its rows.
func ParseFile(path string, opt Options) (*Result, error) {
	tbl, err := ReadFile(path, opt)
	if err != nil {
		return nil, err
	}
	return Parse(tbl, opt)
}

func init() {
	Register(csvSource{})
	Register(xlsxSource{})
}
