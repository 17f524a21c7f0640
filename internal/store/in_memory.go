package store

import (
	"context"
	"sync"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InMemory implements ProductStore on a slice of documents kept in insertion order.
type InMemory struct {
	mu     sync.RWMutex
	docs   []Document
	tracer trace.Tracer
	opts   storeOptions
}

// NewInMemoryStore creates a new in-memory ProductStore.
func NewInMemoryStore(opts ...Option) *InMemory {
	return &InMemory{
		docs:   make([]Document, 0),
		tracer: otel.Tracer(tracerName),
		opts:   newOptions(opts),
	}
}

// Insert stores a raw document as is. It lets callers seed documents that
// Save would never produce, such as ones with an unrecognized type tag.
func (s *InMemory) Insert(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.docs = append(s.docs, doc)
}

// Save appends the product as a new document.
func (s *InMemory) Save(ctx context.Context, p product.Product) (err error) {
	if p == nil {
		return perrors.ErrNilProduct
	}
	doc := ToDocument(p)
	_, finish := startOp(ctx, s.tracer, s.opts.recorder, "InMemory.Save", "save",
		attribute.String("product.article_number", doc.ArticleNumber),
		attribute.String("product.type", doc.Type))
	defer func() { finish(err) }()

	s.Insert(doc)
	return nil
}

// FindAll returns all products in insertion order.
func (s *InMemory) FindAll(ctx context.Context) (products []product.Product, err error) {
	_, finish := startOp(ctx, s.tracer, s.opts.recorder, "InMemory.FindAll", "find_all")
	defer func() { finish(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	products = make([]product.Product, 0, len(s.docs))
	for _, doc := range s.docs {
		p, mapErr := FromDocument(doc)
		if mapErr != nil {
			if s.opts.strictTypes {
				return nil, mapErr
			}
			s.opts.recorder.DocumentSkipped(doc.Type)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// FindByArticleNumber returns the earliest inserted product with the given article number.
func (s *InMemory) FindByArticleNumber(ctx context.Context, articleNumber string) (p product.Product, err error) {
	_, finish := startOp(ctx, s.tracer, s.opts.recorder, "InMemory.FindByArticleNumber", "find_by_article_number",
		attribute.String("product.article_number", articleNumber))
	defer func() { finish(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.ArticleNumber == articleNumber {
			return FromDocument(doc)
		}
	}
	return nil, perrors.ErrProductNotFound
}

// ExistsByArticleNumber reports whether any document has the given article number.
func (s *InMemory) ExistsByArticleNumber(ctx context.Context, articleNumber string) (exists bool, err error) {
	_, finish := startOp(ctx, s.tracer, s.opts.recorder, "InMemory.ExistsByArticleNumber", "exists_by_article_number",
		attribute.String("product.article_number", articleNumber))
	defer func() { finish(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.ArticleNumber == articleNumber {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of stored documents.
func (s *InMemory) Count(ctx context.Context) (count int64, err error) {
	_, finish := startOp(ctx, s.tracer, s.opts.recorder, "InMemory.Count", "count")
	defer func() { finish(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.docs)), nil
}

// Close is a no-op.
func (s *InMemory) Close(_ context.Context) error {
	return nil
}
