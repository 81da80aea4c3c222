package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/komsit37/margins/pkg/margins/types"
)

// Filter matches a product.
type Filter interface {
	Match(p types.Product) bool
}

// Func adapts a plain function to Filter.
type Func func(p types.Product) bool

func (f Func) Match(p types.Product) bool { return f(p) }

// Parse builds a search filter over product code and name from an expression:
// - Comma-separated exact codes or names: "A1,B2"
// - Glob: "KNIHA*"
// - Regex: "/^X\d+/"
// - Anything else: case-insensitive substring
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid search regex: %w", err)
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		set := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?") {
		return newGlob(expr), nil
	}
	return SubstrCI{needle: expr}, nil
}

type Always bool

func (a Always) Match(types.Product) bool { return bool(a) }

type ExactSet struct{ set map[string]struct{} }

func (e ExactSet) Match(p types.Product) bool {
	if _, ok := e.set[p.Code]; ok {
		return true
	}
	_, ok := e.set[p.Name]
	return ok
}

// Glob matches code or name case-insensitively. Unlike filepath.Match, "*" also
// matches "/".
type Glob struct {
	pattern string
	re      *regexp.Regexp
}

func newGlob(pattern string) Glob {
	q := regexp.QuoteMeta(pattern)
	q = strings.ReplaceAll(q, `\*`, ".*")
	q = strings.ReplaceAll(q, `\?`, ".")
	return Glob{pattern: pattern, re: regexp.MustCompile("(?is)^" + q + "$")}
}

func (g Glob) Match(p types.Product) bool {
	return g.re.MatchString(p.Code) || g.re.MatchString(p.Name)
}

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(p types.Product) bool {
	return r.re.MatchString(p.Code) || r.re.MatchString(p.Name)
}

// SubstrCI matches if code or name contains needle, case-insensitively.
type SubstrCI struct{ needle string }

func (s SubstrCI) Match(p types.Product) bool {
	n := strings.ToLower(s.needle)
	return strings.Contains(strings.ToLower(p.Code), n) || strings.Contains(strings.ToLower(p.Name), n)
}

func (g Glob) String() string     { return fmt.Sprintf("glob:%s", g.pattern) }
func (s SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", s.needle) }
func (r Regex) String() string    { return fmt.Sprintf("regex:%s", r.re) }

// Chip is one active key:value selection, e.g. color:red.
type Chip struct {
	Key   string
	Value string
}

func (c Chip) String() string { return c.Key + ":" + c.Value }

// ParseChip splits "key:value". The value may itself contain colons.
func ParseChip(s string) (Chip, error) {
	key, value, ok := strings.Cut(s, ":")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Chip{}, fmt.Errorf("invalid filter %q, want key:value", s)
	}
	return Chip{Key: key, Value: strings.TrimSpace(value)}, nil
}

// Variant matches products having any of the chips' variant values.
// No chips matches everything.
func Variant(chips []Chip) (Filter, error) {
	for _, c := range chips {
		if !contains(types.VariantKeys, c.Key) {
			return nil, fmt.Errorf("unknown variant %q; available: %s", c.Key, strings.Join(types.VariantKeys, ", "))
		}
	}
	if len(chips) == 0 {
		return Always(true), nil
	}
	return Func(func(p types.Product) bool {
		for _, c := range chips {
			if v, ok := p.Variants.Get(c.Key); ok && v == c.Value {
				return true
			}
		}
		return false
	}), nil
}

// Visibility matches products having any of the chips' visibility values.
func Visibility(chips []Chip) (Filter, error) {
	for _, c := range chips {
		if !contains(types.VisibilityKeys, c.Key) {
			return nil, fmt.Errorf("unknown visibility %q; available: %s", c.Key, strings.Join(types.VisibilityKeys, ", "))
		}
	}
	if len(chips) == 0 {
		return Always(true), nil
	}
	return Func(func(p types.Product) bool {
		for _, c := range chips {
			if v, ok := p.Visibility.Get(c.Key); ok && v == c.Value {
				return true
			}
		}
		return false
	}), nil
}

// OfType matches a single product type. An empty type matches everything.
func OfType(t types.ProductType) (Filter, error) {
	switch t {
	case "":
		return Always(true), nil
	case types.ProductTypePrint, types.ProductTypePDF, types.ProductTypeUnknown:
		return Func(func(p types.Product) bool { return p.ProductType == t }), nil
	default:
		return nil, fmt.Errorf("unknown product type %q", t)
	}
}

// All matches when every filter matches. Nil filters are skipped.
func All(filters ...Filter) Filter {
	return Func(func(p types.Product) bool {
		for _, f := range filters {
			if f != nil && !f.Match(p) {
				return false
			}
		}
		return true
	})
}

// Apply returns the products f matches, in input order.
func Apply(products []types.Product, f Filter) []types.Product {
	if f == nil {
		f = Always(true)
	}
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
