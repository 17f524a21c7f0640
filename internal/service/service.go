// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/product"
	"github.com/abgdnv/webshop/internal/store"
	"github.com/abgdnv/webshop/pkg/messaging"
	"github.com/abgdnv/webshop/pkg/messaging/events"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create stores a new product. Saving an existing article number again adds a duplicate.
	// Returns ErrUnknownProductType if the type is not a known product kind.
	Create(ctx context.Context, product ProductDto) (*ProductDto, error)

	// FindAll returns all products, skipping those whose stored type is not recognized.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByArticleNumber retrieves the first product with the given article number.
	// Returns ErrProductNotFound if no product exists with the given article number.
	FindByArticleNumber(ctx context.Context, articleNumber string) (*ProductDto, error)

	// ExistsByArticleNumber reports whether a product with the given article number is stored.
	ExistsByArticleNumber(ctx context.Context, articleNumber string) (bool, error)

	// Count returns the number of stored product documents.
	Count(ctx context.Context) (int64, error)
}

// PublishRecorder receives the outcome of each event publish.
type PublishRecorder interface {
	EventPublished(err error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	recorder   PublishRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new instance of ProductService with the provided repository.
// Saved products are announced through publisher; recorder may be nil.
func NewService(repo store.ProductStore, publisher messaging.Publisher, recorder PublishRecorder, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &Service{
		repository: repo,
		publisher:  publisher,
		recorder:   recorder,
		logger:     logger.With("component", "service"),
		now:        time.Now,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	Type          string  `json:"type"          validate:"required"`
	ArticleNumber string  `json:"articleNumber" validate:"required"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
}

// Create saves the product and publishes a ProductSavedEvent.
// A failed publish is logged; the product stays saved.
func (s *Service) Create(ctx context.Context, dto ProductDto) (*ProductDto, error) {
	p, err := fromDto(dto)
	if err != nil {
		return nil, err
	}
	if err := s.repository.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	event := events.ProductSavedEvent{
		Type:          dto.Type,
		ArticleNumber: dto.ArticleNumber,
		Title:         dto.Title,
		Price:         dto.Price,
		SavedAt:       s.now().UTC(),
	}
	pubErr := s.publisher.Publish(ctx, event)
	if s.recorder != nil {
		s.recorder.EventPublished(pubErr)
	}
	if pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish product saved event", "articleNumber", dto.ArticleNumber, "error", pubErr)
	}

	return toDto(p), nil
}

// FindAll retrieves all products and returns them as ProductDtos.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(item)
	}

	return productDTOs, nil
}

// FindByArticleNumber retrieves a product by its article number.
func (s *Service) FindByArticleNumber(ctx context.Context, articleNumber string) (*ProductDto, error) {
	p, err := s.repository.FindByArticleNumber(ctx, articleNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by article number %s: %w", articleNumber, err)
	}

	return toDto(p), nil
}

// ExistsByArticleNumber reports whether any document carries the article number.
func (s *Service) ExistsByArticleNumber(ctx context.Context, articleNumber string) (bool, error) {
	exists, err := s.repository.ExistsByArticleNumber(ctx, articleNumber)
	if err != nil {
		return false, fmt.Errorf("failed to check product %s: %w", articleNumber, err)
	}
	return exists, nil
}

// Count returns the number of stored product documents.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.repository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// fromDto builds the product variant named by dto.Type.
func fromDto(dto ProductDto) (product.Product, error) {
	p, ok := product.New(product.Kind(dto.Type), product.Attributes{
		ArticleNumber: dto.ArticleNumber,
		Title:         dto.Title,
		Price:         dto.Price,
		Description:   dto.Description,
	})
	if !ok {
		return nil, fmt.Errorf("%w %q", perrors.ErrUnknownProductType, dto.Type)
	}
	return p, nil
}

// toDto converts a product.Product to a ProductDto.
func toDto(p product.Product) *ProductDto {
	attrs := p.Attrs()
	return &ProductDto{
		Type:          string(product.KindOf(p)),
		ArticleNumber: attrs.ArticleNumber,
		Title:         attrs.Title,
		Price:         attrs.Price,
		Description:   attrs.Description,
	}
}
