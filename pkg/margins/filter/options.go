package filter

import (
	"sort"

	"github.com/komsit37/margins/pkg/margins/types"
)

// Available lists the distinct filter values present in a product set.
type Available struct {
	Variants   map[string][]string
	Visibility map[string][]string
	Types      []types.ProductType
}

// Options collects the variant and visibility values and product types that occur
// in products. Values are sorted; empty visibility values are left out.
func Options(products []types.Product) Available {
	variants := map[string]map[string]struct{}{}
	visibility := map[string]map[string]struct{}{}
	present := map[types.ProductType]bool{}

	add := func(m map[string]map[string]struct{}, k, v string) {
		if m[k] == nil {
			m[k] = map[string]struct{}{}
		}
		m[k][v] = struct{}{}
	}
	for _, p := range products {
		for _, k := range types.VariantKeys {
			if v, ok := p.Variants.Get(k); ok {
				add(variants, k, v)
			}
		}
		for _, k := range types.VisibilityKeys {
			if v, ok := p.Visibility.Get(k); ok && v != "" {
				add(visibility, k, v)
			}
		}
		present[p.ProductType] = true
	}

	out := Available{Variants: flatten(variants), Visibility: flatten(visibility)}
	for _, t := range types.ProductTypes {
		if present[t] {
			out.Types = append(out.Types, t)
		}
	}
	return out
}

func flatten(m map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		vals := make([]string, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		out[k] = vals
	}
	return out
}
