// Package iocsv implements the tabular artifacts exchanged between the
// pipeline roles: plain UTF-8 CSV files and DEFLATE-compressed CSV
// files inside a single-member zip archive (paths ending in ".zip").
//
// Tables keep column order and row order exactly as read; all writes
// are atomic (write to a temporary file, then rename), so a failed
// stage never leaves a partial artifact behind.
package iocsv

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is an ordered, fully materialized CSV table with a header row.
type Table struct {
	Columns []string
	Rows    [][]string
	colIdx  map[string]int
}

// New creates an empty table with the given column order.
func New(columns []string) *Table {
	t := &Table{Columns: columns}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.colIdx = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.colIdx[c] = i
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Col returns the position of a column in the header.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.colIdx[name]
	return i, ok
}

// Value returns the cell at the given row for a named column.
// The column must exist.
func (t *Table) Value(row int, column string) string {
	return t.Rows[row][t.colIdx[column]]
}

// AppendRow adds a row. The caller is responsible for matching the
// column count.
func (t *Table) AppendRow(row []string) {
	t.Rows = append(t.Rows, row)
}

// Select returns a new table restricted to the given columns, in the
// given order. Rows are copied.
func (t *Table) Select(columns []string) (*Table, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		j, ok := t.colIdx[c]
		if !ok {
			return nil, MissingColumnError(c)
		}
		idx[i] = j
	}
	res := New(append([]string{}, columns...))
	for _, row := range t.Rows {
		newRow := make([]string, len(idx))
		for i, j := range idx {
			newRow[i] = row[j]
		}
		res.AppendRow(newRow)
	}
	return res, nil
}

// Drop returns a new table without the given columns. Unknown names
// are ignored, matching the forgiving behavior of the projection step.
func (t *Table) Drop(columns ...string) *Table {
	dropped := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		dropped[c] = struct{}{}
	}
	var kept []string
	for _, c := range t.Columns {
		if _, ok := dropped[c]; !ok {
			kept = append(kept, c)
		}
	}
	res, _ := t.Select(kept)
	return res
}

// Read loads a table from a plain CSV file with a header row.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()
	return parse(path, f)
}

// ReadZip loads a table from the first CSV member of a zip archive.
func ReadZip(path string) (*Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ZipReadError(path, err)
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return nil, ZipReadError(path, io.ErrUnexpectedEOF)
	}
	member, err := zr.File[0].Open()
	if err != nil {
		return nil, ZipReadError(path, err)
	}
	defer member.Close()
	return parse(path, member)
}

// Load dispatches on the path suffix: ".zip" paths hold compressed
// CSV, everything else is read as plain CSV.
func Load(path string) (*Table, error) {
	if strings.HasSuffix(path, ".zip") {
		return ReadZip(path)
	}
	return Read(path)
}

func parse(path string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, ReadError(path, err)
	}
	if len(records) == 0 {
		return nil, HeaderError(path)
	}
	t := New(records[0])
	for _, row := range records[1:] {
		if len(row) != len(t.Columns) {
			return nil, HeaderError(path)
		}
		t.AppendRow(row)
	}
	return t, nil
}

// Write stores the table as a plain CSV file. The write is atomic.
func (t *Table) Write(path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		return t.writeCSV(w)
	})
}

// WriteZip stores the table as a DEFLATE-compressed CSV member inside
// a zip archive. The member is named after the path base with a .csv
// extension. The write is atomic.
func (t *Table) WriteZip(path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		base := strings.TrimSuffix(filepath.Base(path), ".zip") + ".csv"
		member, err := zw.Create(base)
		if err != nil {
			return err
		}
		if err = t.writeCSV(member); err != nil {
			return err
		}
		return zw.Close()
	})
}

// Save dispatches on the path suffix, mirroring Load.
func (t *Table) Save(path string) error {
	if strings.HasSuffix(path, ".zip") {
		return t.WriteZip(path)
	}
	return t.Write(path)
}

func (t *Table) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func atomicWrite(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return WriteError(path, err)
	}
	tmpName := tmp.Name()
	if err = fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return WriteError(path, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return WriteError(path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return WriteError(path, err)
	}
	return nil
}
