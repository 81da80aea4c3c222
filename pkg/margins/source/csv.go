package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"

	"github.com/komsit37/margins/pkg/margins/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVDecoder reads delimited text. The delimiter is sniffed from the header line
// and every non-empty cell is text.
type CSVDecoder struct {
	// Comma forces the delimiter when non-zero.
	Comma rune
}

func (d CSVDecoder) Decode(ctx context.Context, r io.Reader) ([]types.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, decodeErr("read csv", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = d.Comma
	if reader.Comma == 0 {
		reader.Comma = sniffDelimiter(data)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, decodeErr("parse csv", err)
	}

	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start >= len(records) {
		return nil, nil
	}
	headers := headerNames(records[start])
	return buildRows(ctx, headers, records[start+1:], func(_, _ int, v string) types.Cell {
		return types.Text(v)
	})
}

// sniffDelimiter picks the most frequent of , ; and tab on the first line,
// ignoring quoted sections. Comma wins ties.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	counts := map[byte]int{}
	quoted := false
	for _, b := range line {
		switch {
		case b == '"':
			quoted = !quoted
		case !quoted && (b == ',' || b == ';' || b == '\t'):
			counts[b]++
		}
	}
	best := byte(',')
	for _, b := range []byte{';', '\t'} {
		if counts[b] > counts[best] {
			best = b
		}
	}
	return rune(best)
}
