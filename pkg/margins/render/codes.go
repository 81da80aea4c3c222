package render

import (
	"fmt"
	"io"
	"strings"
)

// codesRenderer prints all product codes in a single comma-separated line.
type codesRenderer struct{}

func NewCodesRenderer() Renderer {
	return codesRenderer{}
}

func (codesRenderer) Render(w io.Writer, v View, _ RenderOptions) error {
	codes := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		code := strings.TrimSpace(row.Product.Code)
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	_, err := fmt.Fprintln(w, strings.Join(codes, ","))
	return err
}
