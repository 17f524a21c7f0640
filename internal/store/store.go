// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"errors"
	"time"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/product"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, MongoDB).
type ProductStore interface {
	// Save inserts the product as a new document.
	// No uniqueness check is made, saving the same article number twice stores two documents.
	Save(ctx context.Context, p product.Product) error

	// FindAll returns every product in store iteration order.
	// Documents with an unrecognized type tag are skipped unless strict types are enabled,
	// in which case ErrUnknownProductType is returned.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]product.Product, error)

	// FindByArticleNumber returns the first product with the given article number.
	// Returns ErrProductNotFound if no document matches, ErrUnknownProductType if the
	// matching document has an unrecognized type tag.
	FindByArticleNumber(ctx context.Context, articleNumber string) (product.Product, error)

	// ExistsByArticleNumber reports whether any document has the given article number,
	// regardless of its type tag.
	ExistsByArticleNumber(ctx context.Context, articleNumber string) (bool, error)

	// Count returns the total number of documents in the collection.
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying connection. Calling it more than once is a no-op.
	Close(ctx context.Context) error
}

// Recorder receives per-operation measurements from a store.
type Recorder interface {
	ObserveOperation(op string, err error, elapsed time.Duration)
	DocumentSkipped(typeTag string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, error, time.Duration) {}
func (nopRecorder) DocumentSkipped(string)                        {}

type storeOptions struct {
	strictTypes bool
	recorder    Recorder
}

// Option configures a store.
type Option func(*storeOptions)

// WithStrictTypes makes FindAll fail with ErrUnknownProductType instead of skipping
// documents whose type tag is not recognized.
func WithStrictTypes(strict bool) Option {
	return func(o *storeOptions) {
		o.strictTypes = strict
	}
}

// WithRecorder sets the recorder used for operation metrics.
func WithRecorder(r Recorder) Option {
	return func(o *storeOptions) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) storeOptions {
	o := storeOptions{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const tracerName = "github.com/abgdnv/webshop/internal/store"

// startOp opens a span for op and returns a function that ends it and records the outcome.
// ErrProductNotFound is an expected outcome and does not mark the span as failed.
func startOp(ctx context.Context, tracer trace.Tracer, rec Recorder, spanName, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
	start := time.Now()
	return ctx, func(err error) {
		if err != nil && !errors.Is(err, perrors.ErrProductNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		rec.ObserveOperation(op, err, time.Since(start))
		span.End()
	}
}

var (
	_ ProductStore = (*MongoStore)(nil)
	_ ProductStore = (*InMemory)(nil)
)
