// Package product defines the product variants held by the webshop catalog.
package product

// Kind is the discriminator that identifies a product variant.
type Kind string

const (
	KindElectronics Kind = "electronics"
	KindFurniture   Kind = "furniture"
	KindClothing    Kind = "clothing"
	// KindUnknown is assigned to variants this package does not know about.
	// It is never accepted by New.
	KindUnknown Kind = "unknown"
)

// Kinds returns every kind that New can construct.
func Kinds() []Kind {
	return []Kind{KindElectronics, KindFurniture, KindClothing}
}

// Attributes holds the fields shared by all product variants.
type Attributes struct {
	ArticleNumber string
	Title         string
	Price         float64
	Description   string
}

// Attrs returns a copy of the attributes.
func (a Attributes) Attrs() Attributes {
	return a
}

// Product is a catalog item. Electronics, Furniture and Clothing are the
// recognized variants; any other type embedding Attributes is reported as KindUnknown.
type Product interface {
	Attrs() Attributes
}

type Electronics struct{ Attributes }

type Furniture struct{ Attributes }

type Clothing struct{ Attributes }

// NewElectronics creates an Electronics product.
func NewElectronics(articleNumber, title string, price float64, description string) Electronics {
	return Electronics{Attributes{ArticleNumber: articleNumber, Title: title, Price: price, Description: description}}
}

// NewFurniture creates a Furniture product.
func NewFurniture(articleNumber, title string, price float64, description string) Furniture {
	return Furniture{Attributes{ArticleNumber: articleNumber, Title: title, Price: price, Description: description}}
}

// NewClothing creates a Clothing product.
func NewClothing(articleNumber, title string, price float64, description string) Clothing {
	return Clothing{Attributes{ArticleNumber: articleNumber, Title: title, Price: price, Description: description}}
}

// KindOf returns the discriminator for p.
// Keep in sync with New: every case here needs a matching case there.
func KindOf(p Product) Kind {
	switch p.(type) {
	case Electronics, *Electronics:
		return KindElectronics
	case Furniture, *Furniture:
		return KindFurniture
	case Clothing, *Clothing:
		return KindClothing
	default:
		return KindUnknown
	}
}

// New builds the variant identified by kind.
// The second result is false when kind is not one of Kinds().
func New(kind Kind, attrs Attributes) (Product, bool) {
	switch kind {
	case KindElectronics:
		return Electronics{attrs}, true
	case KindFurniture:
		return Furniture{attrs}, true
	case KindClothing:
		return Clothing{attrs}, true
	default:
		return nil, false
	}
}
