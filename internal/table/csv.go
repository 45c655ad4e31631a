package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/paperclass/internal/model"
)

const utf8BOM = "\ufeff"

// LoadOptions controls how an input file is normalized
type LoadOptions struct {
	Delimiter     rune
	JournalColumn string   // Source column renamed to Journal
	DropColumns   []string // Optional columns removed if present
}

// Load reads a delimited file, drops optional columns, renames the journal
// column and checks that Title, Abstract and Journal are present.
func Load(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open input: %v", model.ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f, opts.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	t.Drop(opts.DropColumns...)
	if opts.JournalColumn != "" {
		if err := t.Rename(opts.JournalColumn, ColumnJournal); err != nil {
			return nil, err
		}
	}
	if err := t.Require(ColumnTitle, ColumnAbstract, ColumnJournal); err != nil {
		return nil, err
	}
	return t, nil
}

// Read parses a delimited stream whose first record is the header
func Read(r io.Reader, delimiter rune) (*Table, error) {
	if delimiter == 0 {
		delimiter = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", model.ErrInputSchema)
		}
		return nil, readError("read header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows [][]string
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError("read row", err)
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: record %d has %d fields, header has %d",
				model.ErrInputSchema, line, len(rec), len(header))
		}
		rows = append(rows, rec)
	}

	return New(header, rows), nil
}

// readError classifies a csv read failure. Malformed content is a schema
// problem; anything else came from the underlying reader.
func readError(what string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %s: %v", model.ErrInputSchema, what, err)
	}
	return fmt.Errorf("%w: %s: %v", model.ErrIO, what, err)
}

// Encode writes the table, header first
func (t *Table) Encode(w io.Writer, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Save writes the table to path atomically: the file either appears complete or not at all
func (t *Table) Save(path string, delimiter rune) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create output directory: %v", model.ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", model.ErrIO, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := t.Encode(tmp, delimiter); err != nil {
		return fmt.Errorf("%w: write %s: %v", model.ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", model.ErrIO, path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", model.ErrIO, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename into %s: %v", model.ErrIO, path, err)
	}
	return nil
}
