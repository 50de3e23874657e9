package ipromotionrepo

import (
	"context"

	"github.com/freshmart/storefront/internal/service/models/promotion"
)

// IPromotionRepository is an interface for the promotion postgres repository.
type IPromotionRepository interface {
	ListActive(ctx context.Context) ([]promotion.Promotion, error)
}
