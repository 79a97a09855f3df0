package services

import (
	"context"
	"strings"

	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Catalog is the read-only product lookup the cart depends on
type Catalog interface {
	Lookup(ctx context.Context, productID string) (models.Product, bool)
	List(ctx context.Context) []models.Product
	Search(ctx context.Context, query string) []models.Product
}

// ProductService serves an immutable product catalog from memory
type ProductService struct {
	products []models.Product
	byID     map[string]int
	metrics  *metrics.AppMetrics
}

// NewProductService creates a catalog over the given products. Order is
// kept for List and Search; on duplicate IDs the first product wins.
func NewProductService(products []models.Product, metrics *metrics.AppMetrics) *ProductService {
	s := &ProductService{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		metrics:  metrics,
	}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

// Lookup returns a product by exact ID
func (s *ProductService) Lookup(ctx context.Context, productID string) (models.Product, bool) {
	idx, ok := s.byID[productID]
	if !ok {
		return models.Product{}, false
	}
	p := s.products[idx]

	viewAttrs := s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.String("product_id", p.ID),
		attribute.String("product_category", p.Category),
	})
	s.metrics.ProductsViewed.Add(ctx, 1, metric.WithAttributes(viewAttrs...))

	return p, true
}

// List returns every product in catalog order
func (s *ProductService) List(_ context.Context) []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Search matches query case-insensitively against name, description and
// category. An empty query matches everything.
func (s *ProductService) Search(_ context.Context, query string) []models.Product {
	q := strings.ToLower(query)
	out := []models.Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
