// Package flatfile reads delimited vendor feed files into rows keyed
// by header column name, so downstream passes are independent of the
// column order a vendor export happens to use.
package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/comparekart/catalog-engine/pkg/apperrors"
)

// Row maps a header column name to the raw cell value for one record.
type Row map[string]string

// Reader parses delimited flat files. The zero value reads
// comma-separated UTF-8 input.
type Reader struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune
	// Encoding selects the input character encoding: "utf8" (default),
	// "windows1251" or "latin1". Vendor exports are not always UTF-8.
	Encoding string
}

// ReadFile parses the file at path into rows keyed by the header line.
// The read is a single pass; records whose field count does not match
// the header fail with *apperrors.ParseError.
func (r *Reader) ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := r.read(f)
	if err != nil {
		if perr, ok := err.(*csv.ParseError); ok {
			return nil, &apperrors.ParseError{File: path, Line: perr.Line, Err: perr.Err}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func (r *Reader) read(src io.Reader) ([]Row, error) {
	decoded, err := r.decode(src)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}
}

func (r *Reader) decode(src io.Reader) (io.Reader, error) {
	switch strings.ToLower(r.Encoding) {
	case "", "utf8", "utf-8":
		return src, nil
	case "windows1251":
		return transform.NewReader(src, charmap.Windows1251.NewDecoder()), nil
	case "latin1", "iso8859-1":
		return transform.NewReader(src, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", r.Encoding)
	}
}
