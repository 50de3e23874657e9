package catalogsvc

import (
	"context"
	"testing"

	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/service/models/product"
	"github.com/freshmart/storefront/internal/service/models/promotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products   []product.Product
	total      int
	lastFilter product.QueryProductsModel
}

func (f *fakeProductRepo) GetPricing(context.Context, int64) (*product.Pricing, error) {
	return nil, nil
}

func (f *fakeProductRepo) Query(
	_ context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	f.lastFilter = *filter
	return f.products, nil
}

func (f *fakeProductRepo) Count(context.Context, *product.QueryProductsModel) (int, error) {
	return f.total, nil
}

func (f *fakeProductRepo) ListCategories(context.Context) ([]category.Category, error) {
	return []category.Category{{ID: 1, Name: "Produce"}}, nil
}

type fakePromotionRepo struct{}

func (fakePromotionRepo) ListActive(context.Context) ([]promotion.Promotion, error) {
	return []promotion.Promotion{{ID: 1, Title: "Summer sale"}}, nil
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	t.Run("defaults page and limit", func(t *testing.T) {
		t.Parallel()

		repo := &fakeProductRepo{
			products: []product.Product{{ID: 1, Name: "Bananas"}},
			total:    41,
		}
		svc := NewCatalogService(repo, fakePromotionRepo{})

		page, err := svc.ListProducts(context.Background(), product.QueryProductsModel{})
		require.NoError(t, err)

		assert.Equal(t, 1, repo.lastFilter.Page)
		assert.Equal(t, defaultPageSize, repo.lastFilter.Limit)
		assert.Equal(t, 41, page.Pagination.Total)
		assert.Equal(t, 3, page.Pagination.TotalPages)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		t.Parallel()

		svc := NewCatalogService(&fakeProductRepo{}, fakePromotionRepo{})

		page, err := svc.ListProducts(context.Background(), product.QueryProductsModel{})
		require.NoError(t, err)

		assert.NotNil(t, page.Products)
		assert.Empty(t, page.Products)
		assert.Equal(t, 0, page.Pagination.TotalPages)
	})

	t.Run("passes the filter through", func(t *testing.T) {
		t.Parallel()

		repo := &fakeProductRepo{}
		svc := NewCatalogService(repo, fakePromotionRepo{})

		_, err := svc.ListProducts(context.Background(), product.QueryProductsModel{
			CategoryID: 3,
			Search:     "milk",
			Page:       2,
			Limit:      10,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(3), repo.lastFilter.CategoryID)
		assert.Equal(t, "milk", repo.lastFilter.Search)
		assert.Equal(t, 2, repo.lastFilter.Page)
		assert.Equal(t, 10, repo.lastFilter.Limit)
	})
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact division", total: 40, limit: 20, want: 2},
		{name: "remainder adds a page", total: 41, limit: 20, want: 3},
		{name: "fewer than one page", total: 5, limit: 20, want: 1},
		{name: "no results", total: 0, limit: 20, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totalPages(tt.total, tt.limit))
		})
	}
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(&fakeProductRepo{}, fakePromotionRepo{})

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Produce", categories[0].Name)
}

func TestListPromotions(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(&fakeProductRepo{}, fakePromotionRepo{})

	promotions, err := svc.ListPromotions(context.Background())
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, "Summer sale", promotions[0].Title)
}
