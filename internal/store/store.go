// Package store holds the entity storage abstraction of the storefront:
// users and products keyed by numeric id, with substring search and
// category filtering. Two backends implement the same contract, an
// in-memory map store and a GORM-backed local store.
package store

import (
	"context"
	"errors"

	"github.com/arkhipovd/storefront/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Storage interface {
	User(ctx context.Context, id uint) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, data models.InsertUser) (*models.User, error)

	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id uint) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	CreateProduct(ctx context.Context, data models.InsertProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) (bool, error)
}

// SessionState persists the current-user marker between restarts. The
// memory backend keeps it in the process, the GORM backend in a
// single-row table.
type SessionState interface {
	SaveSession(ctx context.Context, userID uint, token string) error
	LoadSession(ctx context.Context) (userID uint, token string, err error)
	ClearSession(ctx context.Context) error
}

// newProduct builds a full record out of a creation payload, filling
// schema defaults for absent optional fields. ID and timestamps are the
// backend's job.
func newProduct(data models.InsertProduct) models.Product {
	p := models.Product{
		Name:          data.Name,
		Description:   data.Description,
		Price:         data.Price,
		OriginalPrice: data.OriginalPrice,
		Image:         data.Image,
		Category:      data.Category,
		InStock:       true,
		Rating:        "0.0",
		Brand:         data.Brand,
		Features:      data.Features,
	}
	if data.InStock != nil {
		p.InStock = *data.InStock
	}
	if data.DiscountPercentage != nil {
		p.DiscountPercentage = *data.DiscountPercentage
	}
	if data.StockQuantity != nil {
		p.StockQuantity = *data.StockQuantity
	}
	if data.Rating != nil {
		p.Rating = *data.Rating
	}
	if data.ReviewCount != nil {
		p.ReviewCount = *data.ReviewCount
	}
	return p
}

// applyPatch merges the non-nil patch fields over an existing record.
// ID and CreatedAt are never touched.
func applyPatch(p *models.Product, patch models.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = patch.OriginalPrice
	}
	if patch.DiscountPercentage != nil {
		p.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.ReviewCount != nil {
		p.ReviewCount = *patch.ReviewCount
	}
	if patch.Brand != nil {
		p.Brand = patch.Brand
	}
	if patch.Features != nil {
		p.Features = patch.Features
	}
}
