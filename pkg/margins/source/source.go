// Package source decodes spreadsheet files into raw rows.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/komsit37/margins/pkg/margins/types"
)

var (
	// ErrDecode wraps every failure to read a file's contents as rows.
	ErrDecode = errors.New("decode failed")
	// ErrUnsupported is returned for file types without a decoder.
	ErrUnsupported = errors.New("unsupported file type")
)

// Decoder turns file contents into rows keyed by the header row.
// Empty input yields no rows and no error.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) ([]types.RawRow, error)
}

// Extensions lists the file extensions ForFile accepts.
var Extensions = []string{".xlsx", ".csv", ".yaml", ".yml", ".json"}

// ForFile picks a decoder from the file name's extension.
func ForFile(name string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return XLSXDecoder{}, nil
	case ".csv":
		return CSVDecoder{}, nil
	case ".yaml", ".yml", ".json":
		return YAMLDecoder{}, nil
	}
	return nil, fmt.Errorf("%w: %s (expected one of %s)", ErrUnsupported, filepath.Base(name), strings.Join(Extensions, ", "))
}

// Load decodes the file at path.
func Load(ctx context.Context, path string) ([]types.RawRow, error) {
	dec, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dec.Decode(ctx, f)
}

func decodeErr(format string, err error) error {
	return fmt.Errorf("%w: "+format+": %v", ErrDecode, err)
}

// headerNames cleans a header row: trims, names blank headers Column_N and
// suffixes duplicates with _1, _2...
func headerNames(raw []string) []string {
	headers := make([]string, len(raw))
	used := map[string]bool{}
	next := map[string]int{}
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		name := h
		for used[name] {
			next[h]++
			name = fmt.Sprintf("%s_%d", h, next[h])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

// buildRows zips headers with each record, skipping fully blank records.
// cell converts a single string value; it is only called for non-empty values.
func buildRows(ctx context.Context, headers []string, records [][]string, cell func(r, c int, v string) types.Cell) ([]types.RawRow, error) {
	rows := make([]types.RawRow, 0, len(records))
	for ri, rec := range records {
		if ri%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(rec) {
			continue
		}
		row := make(types.RawRow, len(headers))
		for ci, h := range headers {
			v := ""
			if ci < len(rec) {
				v = rec[ci]
			}
			c := types.Empty()
			if v != "" {
				c = cell(ri, ci, v)
			}
			row[ci] = types.Column{Header: h, Value: c}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
