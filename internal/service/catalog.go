package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arkhipovd/storefront/internal/events"
	"github.com/arkhipovd/storefront/internal/logging"
	"github.com/arkhipovd/storefront/internal/models"
	"github.com/arkhipovd/storefront/internal/store"
)

var ErrValidation = errors.New("validation failed")

var (
	ratingMax = decimal.NewFromInt(5)
)

// CatalogService validates catalog input against the schema rules and
// delegates to the store. Change events go to Kafka when a producer is
// configured; publishing is best-effort and never fails the request.
type CatalogService struct {
	Store    store.Storage
	Producer *events.Producer
}

// Products answers the catalog listing. A search query takes precedence
// over a category filter when both are given.
func (s *CatalogService) Products(ctx context.Context, search, category string) ([]models.Product, error) {
	switch {
	case search != "":
		return s.Store.SearchProducts(ctx, search)
	case category != "":
		return s.Store.ProductsByCategory(ctx, category)
	default:
		return s.Store.Products(ctx)
	}
}

func (s *CatalogService) Product(ctx context.Context, id uint) (*models.Product, error) {
	return s.Store.Product(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, data models.InsertProduct) (*models.Product, error) {
	if err := validateInsertProduct(data); err != nil {
		return nil, err
	}

	prod, err := s.Store.CreateProduct(ctx, data)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	if err := validateProductPatch(patch); err != nil {
		return nil, err
	}

	prod, err := s.Store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.Store.DeleteProduct(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return true, nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.ProductTopic, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", event["type"], "error", err)
	}
}

func validateInsertProduct(data models.InsertProduct) error {
	if data.Name == "" || data.Description == "" || data.Image == "" || data.Category == "" {
		return fmt.Errorf("%w: name, description, image and category are required", ErrValidation)
	}
	if err := validatePrice(data.Price); err != nil {
		return err
	}
	if data.OriginalPrice != nil {
		if err := validatePrice(*data.OriginalPrice); err != nil {
			return err
		}
	}
	return validateProductNumbers(data.DiscountPercentage, data.StockQuantity, data.ReviewCount, data.Rating)
}

func validateProductPatch(patch models.ProductPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if patch.Description != nil && *patch.Description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}
	if patch.Image != nil && *patch.Image == "" {
		return fmt.Errorf("%w: image cannot be empty", ErrValidation)
	}
	if patch.Category != nil && *patch.Category == "" {
		return fmt.Errorf("%w: category cannot be empty", ErrValidation)
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.OriginalPrice != nil {
		if err := validatePrice(*patch.OriginalPrice); err != nil {
			return err
		}
	}
	return validateProductNumbers(patch.DiscountPercentage, patch.StockQuantity, patch.ReviewCount, patch.Rating)
}

// validatePrice accepts a decimal currency string like "9.99".
func validatePrice(price string) error {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("%w: price %q is not a decimal", ErrValidation, price)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if d.Exponent() < -2 {
		return fmt.Errorf("%w: price %q has more than two decimal places", ErrValidation, price)
	}
	return nil
}

func validateProductNumbers(discount, stock, reviews *int, rating *string) error {
	if discount != nil && (*discount < 0 || *discount > 100) {
		return fmt.Errorf("%w: discountPercentage must be between 0 and 100", ErrValidation)
	}
	if stock != nil && *stock < 0 {
		return fmt.Errorf("%w: stockQuantity cannot be negative", ErrValidation)
	}
	if reviews != nil && *reviews < 0 {
		return fmt.Errorf("%w: reviewCount cannot be negative", ErrValidation)
	}
	if rating != nil {
		r, err := decimal.NewFromString(*rating)
		if err != nil {
			return fmt.Errorf("%w: rating %q is not a decimal", ErrValidation, *rating)
		}
		if r.IsNegative() || r.GreaterThan(ratingMax) {
			return fmt.Errorf("%w: rating must be between 0.0 and 5.0", ErrValidation)
		}
	}
	return nil
}
