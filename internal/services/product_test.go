package services

import (
	"context"
	"testing"

	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestCatalog() *ProductService {
	return NewProductService(SeedProducts(), metrics.NewNoopMetrics("cart-test"))
}

func TestLookup_EveryProduct(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	for _, p := range SeedProducts() {
		got, ok := catalog.Lookup(ctx, p.ID)
		assert.True(t, ok, p.ID)
		assert.Equal(t, p, got)
	}

	_, ok := catalog.Lookup(ctx, "nonexistent")
	assert.False(t, ok)
}

func TestList_KeepsCatalogOrder(t *testing.T) {
	products := newTestCatalog().List(context.Background())

	assert.Len(t, products, 8)
	assert.Equal(t, "prod-001", products[0].ID)
	assert.Equal(t, "prod-008", products[7].ID)
}

func TestNewProductService_FirstDuplicateWins(t *testing.T) {
	catalog := NewProductService([]models.Product{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
	}, metrics.NewNoopMetrics("cart-test"))

	p, ok := catalog.Lookup(context.Background(), "a")
	assert.True(t, ok)
	assert.Equal(t, "first", p.Name)
	assert.Len(t, catalog.List(context.Background()), 1)
}

func TestSearch(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name, case-insensitive", "macbook", []string{"prod-002"}},
		{"description", "noise cancelling", []string{"prod-007"}},
		{"category", "LAPTOPS", []string{"prod-002", "prod-008"}},
		{"matches several fields in catalog order", "apple", []string{"prod-001", "prod-002", "prod-003", "prod-004"}},
		{"miss", "toaster", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Search(ctx, tt.query)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
