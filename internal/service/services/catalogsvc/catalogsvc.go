package catalogsvc

import (
	"context"

	"github.com/freshmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/ipromotionrepo"
	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/service/models/product"
	"github.com/freshmart/storefront/internal/service/models/promotion"
)

const defaultPageSize = 20

// CatalogService serves product, category and promotion listings.
type CatalogService struct {
	productRepo   iproductrepo.IProductRepository
	promotionRepo ipromotionrepo.IPromotionRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	productRepo iproductrepo.IProductRepository,
	promotionRepo ipromotionrepo.IPromotionRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
	}
}

// ListProducts returns a page of active products with pagination info.
func (s *CatalogService) ListProducts(
	ctx context.Context,
	filter product.QueryProductsModel,
) (*product.Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}

	products, err := s.productRepo.Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []product.Product{}
	}

	return &product.Page{
		Products: products,
		Pagination: product.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}

// ListCategories returns active categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]category.Category, error) {
	return s.productRepo.ListCategories(ctx)
}

// ListPromotions returns promotions currently running.
func (s *CatalogService) ListPromotions(ctx context.Context) ([]promotion.Promotion, error) {
	return s.promotionRepo.ListActive(ctx)
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
