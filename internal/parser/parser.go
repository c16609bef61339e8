// Package parser turns uploaded tabular files into header-keyed rows.
package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError wraps the I/O or decode fault that stopped a file from being parsed
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record is one CSV data row and the line it starts on
type Record struct {
	Line   int
	Values map[string]string
}

// ReadCSV opens a UTF-8 CSV file and returns one map per data row,
// keyed by the header row
func ReadCSV(path string) ([]map[string]string, error) {
	records, err := ReadCSVRecords(path)
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

// ReadCSVRecords is ReadCSV keeping the source line of each row
func ReadCSVRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	records, err := ParseCSVRecords(file)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// ParseCSV reads CSV records from r. Values are returned as-is, without type coercion.
// Rows shorter than the header omit the missing columns; extra cells are dropped.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	records, err := ParseCSVRecords(r)
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

// ParseCSVRecords is ParseCSV keeping the source line of each row.
// Blank lines are skipped and a quoted field may span lines, so the
// line is taken from the reader rather than the row index.
func ParseCSVRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read header: %w", err)}
	}
	if err := checkUTF8(header); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("header: %w", err)}
	}

	records := make([]Record, 0)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		line, _ := reader.FieldPos(0)
		if err := checkUTF8(fields); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("line %d: %w", line, err)}
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		records = append(records, Record{Line: line, Values: row})
	}

	return records, nil
}

func values(records []Record) []map[string]string {
	rows := make([]map[string]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Values
	}
	return rows
}

// ReadJSONFile decodes a whole JSON document into a generic value
func ReadJSONFile(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return value, nil
}

func checkUTF8(fields []string) error {
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return errors.New("invalid UTF-8 encoding")
		}
	}
	return nil
}
