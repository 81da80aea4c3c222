// Package classify tags products as print or pdf from their code and name.
package classify

import (
	"strings"

	"github.com/komsit37/margins/pkg/margins/types"
)

// Detect classifies a product. The code is the source of truth; the name is only
// consulted when the code carries neither marker. Print is checked before pdf at
// each level, so the result is always exactly one type.
func Detect(code, name string) types.ProductType {
	code = strings.ToUpper(code)
	name = strings.ToUpper(name)

	switch {
	case hasMarker(code, "TISK"):
		return types.ProductTypePrint
	case hasMarker(code, "PDF"):
		return types.ProductTypePDF
	case strings.Contains(name, "TISK") || strings.Contains(name, "PRINT"):
		return types.ProductTypePrint
	case strings.Contains(name, "PDF"):
		return types.ProductTypePDF
	}
	return types.ProductTypeUnknown
}

// hasMarker matches "/M", "-M" anywhere in code, or code ending with M.
func hasMarker(code, marker string) bool {
	return strings.Contains(code, "/"+marker) ||
		strings.Contains(code, "-"+marker) ||
		strings.HasSuffix(code, marker)
}
