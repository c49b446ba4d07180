package agency

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is a flat record of a CSV document, indexed by column name.
type Row map[string]string

// EncodeCSV writes rows with a header row made of columns.
//
// Every field is quoted, and embedded quotes are doubled. A column missing
// from a row is written as an empty field. Rows are separated by "\n".
func EncodeCSV(w io.Writer, columns []string, rows []Row) error {
	bw := bufio.NewWriter(w)
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
	}

	writeLine(columns)
	fields := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			fields[i] = row[col]
		}
		bw.WriteByte('\n')
		writeLine(fields)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write CSV: %w", err)
	}
	return nil
}

// DecodeCSV reads a CSV document whose first row is the header.
//
// Decoding is permissive: blank lines are skipped, stray quotes are kept as
// text, short rows get empty values for their missing columns and extra
// fields are dropped. The only errors are read errors from r.
func DecodeCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		br.Discard(3)
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1 // Allow variable number of fields
	cr.LazyQuotes = true

	var header []string
	var rows []Row
	for {
		record, err := cr.Read()
		var perr *csv.ParseError
		switch {
		case err == nil, errors.Is(err, io.EOF):
			// a record cut by the end of input comes along with io.EOF.
		case errors.As(err, &perr):
			// LazyQuotes leaves no syntax error, but stay tolerant anyway.
			continue
		default:
			return nil, fmt.Errorf("cannot read CSV: %w", err)
		}
		if len(record) > 0 && !blank(record) {
			if header == nil {
				header = make([]string, len(record))
				for i, h := range record {
					header[i] = strings.TrimSpace(h)
				}
			} else {
				row := make(Row, len(header))
				for i, col := range header {
					if i < len(record) {
						row[col] = record[i]
					} else {
						row[col] = ""
					}
				}
				rows = append(rows, row)
			}
		}
		if err != nil {
			break
		}
	}
	return rows, nil
}

// blank reports whether a record comes from a line with only spaces.
func blank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}
