package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/product"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MongoStore implements ProductStore on a single MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
	tracer     trace.Tracer
	opts       storeOptions

	closeOnce sync.Once
	closeErr  error
}

// NewMongoStore creates a ProductStore backed by the given collection.
// The client must already be connected; MongoStore takes ownership of it and disconnects it on Close.
func NewMongoStore(client *mongo.Client, database, collection string, logger *slog.Logger, opts ...Option) *MongoStore {
	m := &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_store"),
		tracer:     otel.Tracer(tracerName),
		opts:       newOptions(opts),
	}
	m.logger.Info("Connected to MongoDB!", "database", database, "collection", collection)
	return m
}

// Save inserts the product as a new document.
func (m *MongoStore) Save(ctx context.Context, p product.Product) (err error) {
	if p == nil {
		return perrors.ErrNilProduct
	}
	doc := ToDocument(p)
	ctx, finish := startOp(ctx, m.tracer, m.opts.recorder, "MongoStore.Save", "save",
		attribute.String("product.article_number", doc.ArticleNumber),
		attribute.String("product.type", doc.Type))
	defer func() { finish(err) }()

	if _, err = m.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	m.logger.InfoContext(ctx, "Product saved to MongoDB", "title", doc.Title, "articleNumber", doc.ArticleNumber)
	return nil
}

// FindAll scans the whole collection in cursor order.
func (m *MongoStore) FindAll(ctx context.Context) (products []product.Product, err error) {
	ctx, finish := startOp(ctx, m.tracer, m.opts.recorder, "MongoStore.FindAll", "find_all")
	defer func() { finish(err) }()

	cursor, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	products = make([]product.Product, 0)
	for cursor.Next(ctx) {
		var doc Document
		if err = cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product document: %w", err)
		}
		p, mapErr := FromDocument(doc)
		if mapErr != nil {
			if m.opts.strictTypes {
				err = mapErr
				return nil, err
			}
			m.logger.DebugContext(ctx, "Skipping document with unknown type", "type", doc.Type, "articleNumber", doc.ArticleNumber)
			m.opts.recorder.DocumentSkipped(doc.Type)
			continue
		}
		products = append(products, p)
	}
	if err = cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// FindByArticleNumber reads the first document matching articleNumber.
func (m *MongoStore) FindByArticleNumber(ctx context.Context, articleNumber string) (p product.Product, err error) {
	ctx, finish := startOp(ctx, m.tracer, m.opts.recorder, "MongoStore.FindByArticleNumber", "find_by_article_number",
		attribute.String("product.article_number", articleNumber))
	defer func() { finish(err) }()

	var doc Document
	err = m.collection.FindOne(ctx, articleNumberFilter(articleNumber)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by article number: %w", err)
	}
	return FromDocument(doc)
}

// ExistsByArticleNumber counts at most one matching document.
func (m *MongoStore) ExistsByArticleNumber(ctx context.Context, articleNumber string) (exists bool, err error) {
	ctx, finish := startOp(ctx, m.tracer, m.opts.recorder, "MongoStore.ExistsByArticleNumber", "exists_by_article_number",
		attribute.String("product.article_number", articleNumber))
	defer func() { finish(err) }()

	count, err := m.collection.CountDocuments(ctx, articleNumberFilter(articleNumber), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count products by article number: %w", err)
	}
	return count > 0, nil
}

// Count returns the number of documents in the collection and logs it.
func (m *MongoStore) Count(ctx context.Context) (count int64, err error) {
	ctx, finish := startOp(ctx, m.tracer, m.opts.recorder, "MongoStore.Count", "count")
	defer func() { finish(err) }()

	count, err = m.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	m.logger.InfoContext(ctx, fmt.Sprintf("MongoDB contains %d products.", count), "count", count)
	return count, nil
}

// Close disconnects the client. Subsequent calls return the result of the first one.
func (m *MongoStore) Close(ctx context.Context) error {
	m.closeOnce.Do(func() {
		if m.client == nil {
			return
		}
		if err := m.client.Disconnect(ctx); err != nil {
			m.closeErr = fmt.Errorf("failed to disconnect from MongoDB: %w", err)
			return
		}
		m.logger.Info("MongoDB connection closed.")
	})
	return m.closeErr
}

func articleNumberFilter(articleNumber string) bson.D {
	return bson.D{{Key: fieldArticleNumber, Value: articleNumber}}
}
