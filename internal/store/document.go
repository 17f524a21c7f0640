package store

import (
	"fmt"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names of a product document.
const (
	fieldArticleNumber = "articleNumber"
)

// Document is the stored representation of a product.
type Document struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Type          string             `bson:"type"`
	ArticleNumber string             `bson:"articleNumber"`
	Title         string             `bson:"title"`
	Price         float64            `bson:"price"`
	Description   string             `bson:"description"`
}

// ToDocument tags p with its kind and copies its fields.
// Variants unknown to the product package are tagged "unknown" and can not be read back.
func ToDocument(p product.Product) Document {
	attrs := p.Attrs()
	return Document{
		Type:          string(product.KindOf(p)),
		ArticleNumber: attrs.ArticleNumber,
		Title:         attrs.Title,
		Price:         attrs.Price,
		Description:   attrs.Description,
	}
}

// FromDocument rebuilds the product variant named by the document's type tag.
// Returns ErrUnknownProductType if the tag is not recognized.
func FromDocument(doc Document) (product.Product, error) {
	p, ok := product.New(product.Kind(doc.Type), product.Attributes{
		ArticleNumber: doc.ArticleNumber,
		Title:         doc.Title,
		Price:         doc.Price,
		Description:   doc.Description,
	})
	if !ok {
		return nil, fmt.Errorf("%w %q for article %s", perrors.ErrUnknownProductType, doc.Type, doc.ArticleNumber)
	}
	return p, nil
}
