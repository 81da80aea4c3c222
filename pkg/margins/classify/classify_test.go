package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/komsit37/margins/pkg/margins/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		product  string
		expected types.ProductType
	}{
		{"code slash tisk", "ABC123/TISK", "Whatever", types.ProductTypePrint},
		{"code slash pdf", "ABC123/PDF", "Whatever", types.ProductTypePDF},
		{"code dash tisk", "ABC-TISK-2", "", types.ProductTypePrint},
		{"code dash pdf", "abc-pdf", "", types.ProductTypePDF},
		{"code suffix tisk", "ABCTISK", "", types.ProductTypePrint},
		{"code suffix pdf", "ABCPDF", "", types.ProductTypePDF},
		{"lower case code", "x1/tisk", "", types.ProductTypePrint},
		{"name fallback pdf", "ABC123", "Some PDF export", types.ProductTypePDF},
		{"name fallback tisk", "ABC123", "Kalendář tisk", types.ProductTypePrint},
		{"name fallback print", "ABC123", "Poster print", types.ProductTypePrint},
		{"nothing", "ABC123", "Nothing special", types.ProductTypeUnknown},
		{"empty", "", "", types.ProductTypeUnknown},
		{"code wins over name", "ABC/PDF", "Printed poster", types.ProductTypePDF},
		{"both code markers resolve to print", "A/PDF-TISK", "", types.ProductTypePrint},
		{"both name markers resolve to print", "ABC", "PDF and TISK", types.ProductTypePrint},
		{"marker in middle without separator", "TISKABC", "", types.ProductTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.code, tt.product))
		})
	}
}
