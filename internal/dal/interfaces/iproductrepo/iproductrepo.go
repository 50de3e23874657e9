package iproductrepo

import (
	"context"

	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/service/models/product"
)

// IProductRepository is an interface for the catalog postgres repository.
type IProductRepository interface {
	// GetPricing returns the point-in-time price and loyalty earn rate of an
	// active product, or errs.ErrNotFound.
	GetPricing(ctx context.Context, productID int64) (*product.Pricing, error)

	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Count(ctx context.Context, filter *product.QueryProductsModel) (int, error)
	ListCategories(ctx context.Context) ([]category.Category, error)
}
