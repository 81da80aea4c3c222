package types

import "time"

// ProductType is the exclusive print/pdf classification of a product.
type ProductType string

const (
	ProductTypePrint   ProductType = "print"
	ProductTypePDF     ProductType = "pdf"
	ProductTypeUnknown ProductType = "unknown"
)

// ProductTypes lists every classification in display order.
var ProductTypes = []ProductType{ProductTypePrint, ProductTypePDF, ProductTypeUnknown}

// Health buckets a margin percentage.
type Health string

const (
	HealthLow    Health = "low"
	HealthMedium Health = "medium"
	HealthGood   Health = "good"
)

// Variants holds optional variant attributes. A nil field means the source had no
// value for it, which is distinct from an empty string.
type Variants struct {
	Color      *string `json:"color,omitempty"`
	Part       *string `json:"part,omitempty"`
	PDF        *string `json:"pdf,omitempty"`
	Print      *string `json:"print,omitempty"`
	Size       *string `json:"size,omitempty"`
	Colored    *string `json:"colored,omitempty"`
	Monochrome *string `json:"monochrome,omitempty"`
}

// VariantKeys lists the variant attribute names in display order.
var VariantKeys = []string{"color", "part", "pdf", "print", "size", "colored", "monochrome"}

// Get returns the attribute stored under key.
func (v Variants) Get(key string) (string, bool) {
	var p *string
	switch key {
	case "color":
		p = v.Color
	case "part":
		p = v.Part
	case "pdf":
		p = v.PDF
	case "print":
		p = v.Print
	case "size":
		p = v.Size
	case "colored":
		p = v.Colored
	case "monochrome":
		p = v.Monochrome
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set stores value under key. Unknown keys are ignored.
func (v *Variants) Set(key, value string) {
	p := &value
	switch key {
	case "color":
		v.Color = p
	case "part":
		v.Part = p
	case "pdf":
		v.PDF = p
	case "print":
		v.Print = p
	case "size":
		v.Size = p
	case "colored":
		v.Colored = p
	case "monochrome":
		v.Monochrome = p
	}
}

// Visibility describes the display-visibility category of an item.
type Visibility struct {
	Variant *string `json:"variant,omitempty"`
	Product *string `json:"product,omitempty"`
}

// VisibilityKeys lists the visibility attribute names.
var VisibilityKeys = []string{"variant", "product"}

// Get returns the attribute stored under key.
func (v Visibility) Get(key string) (string, bool) {
	var p *string
	switch key {
	case "variant":
		p = v.Variant
	case "product":
		p = v.Product
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set stores value under key. Unknown keys are ignored.
func (v *Visibility) Set(key, value string) {
	switch key {
	case "variant":
		v.Variant = &value
	case "product":
		v.Product = &value
	}
}

// Product is a normalized spreadsheet row. Numeric fields are always finite.
type Product struct {
	Code           string  `json:"code"`
	PairCode       string  `json:"pairCode"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	PriceRatio     float64 `json:"priceRatio"`
	StandardPrice  float64 `json:"standardPrice"`
	PurchasePrice  float64 `json:"purchasePrice"`
	IncludingVat   bool    `json:"includingVat"`
	PercentVat     float64 `json:"percentVat"`
	RelativeMargin float64 `json:"relativeMargin"`
	AbsoluteMargin float64 `json:"absoluteMargin"`
	// RelativeMarginSet is true when the source supplied a relative margin cell.
	RelativeMarginSet bool        `json:"relativeMarginSet,omitempty"`
	Variants          Variants    `json:"variants"`
	Visibility        Visibility  `json:"visibility"`
	ProductType       ProductType `json:"productType"`
}

// AnalysisSummary aggregates margin statistics over a product set.
// The three counts always sum to TotalProducts.
type AnalysisSummary struct {
	TotalProducts     int     `json:"totalProducts"`
	AvgMargin         float64 `json:"avgMargin"`
	LowMarginCount    int     `json:"lowMarginCount"`
	MediumMarginCount int     `json:"mediumMarginCount"`
	HighMarginCount   int     `json:"highMarginCount"`
}

// MarginAnalysis is one imported spreadsheet snapshot.
type MarginAnalysis struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	FileName  string          `json:"fileName"`
	CreatedAt time.Time       `json:"createdAt"`
	Products  []Product       `json:"products"`
	Summary   AnalysisSummary `json:"summary"`
}

// CalculatedMargin is the price a product needs to reach a target margin.
type CalculatedMargin struct {
	TargetPercentage   float64 `json:"targetPercentage"`
	NewPrice           float64 `json:"newPrice"`
	PriceChange        float64 `json:"priceChange"`
	PriceChangePercent float64 `json:"priceChangePercent"`
}
