package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/margins/pkg/margins/types"
)

// YAMLDecoder reads a top-level sequence of mappings, one mapping per row.
// JSON arrays of objects decode as well. Key order is preserved.
type YAMLDecoder struct{}

func (YAMLDecoder) Decode(ctx context.Context, r io.Reader) ([]types.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, decodeErr("read yaml", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, decodeErr("parse yaml", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	// Allow an optional wrapper: "products: [...]"
	if root.Kind == yaml.MappingNode {
		if items := mappingValue(root, "products"); items != nil {
			root = items
		}
	}
	if root.Kind != yaml.SequenceNode {
		return nil, decodeErr("parse yaml", fmt.Errorf("expected a list of rows, got %s", nodeKind(root)))
	}

	rows := make([]types.RawRow, 0, len(root.Content))
	for i, item := range root.Content {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item.Kind != yaml.MappingNode {
			return nil, decodeErr("parse yaml", fmt.Errorf("row %d: expected a mapping, got %s", i+1, nodeKind(item)))
		}
		row := make(types.RawRow, 0, len(item.Content)/2)
		for k := 0; k+1 < len(item.Content); k += 2 {
			row = append(row, types.Column{
				Header: item.Content[k].Value,
				Value:  yamlCell(item.Content[k+1]),
			})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func yamlCell(n *yaml.Node) types.Cell {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		// nested structures have no meaning as a cell; keep their source text
		out, err := yaml.Marshal(n)
		if err != nil {
			return types.Empty()
		}
		return types.Text(string(bytes.TrimSpace(out)))
	}
	switch n.ShortTag() {
	case "!!null":
		return types.Empty()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return types.Bool(b)
		}
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return types.Number(f)
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return types.Number(f)
		}
	}
	if n.Value == "" {
		return types.Empty()
	}
	return types.Text(n.Value)
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "document"
	}
}
