package store

import (
	"context"
	"fmt"

	"github.com/arkhipovd/storefront/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

var seedUsers = []models.InsertUser{
	{Username: "customer", Email: "customer@example.com", Password: "password123", Role: models.RoleUser},
	{Username: "admin", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin},
}

var seedProducts = []models.InsertProduct{
	{
		Name:               "Apple iPhone 15 Pro Max",
		Description:        "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system with 5x telephoto zoom",
		Price:              "1199.99",
		OriginalPrice:      strPtr("1299.99"),
		DiscountPercentage: intPtr(8),
		Image:              "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=500&h=500&fit=crop",
		Category:           "Electronics",
		StockQuantity:      intPtr(25),
		Rating:             strPtr("4.8"),
		ReviewCount:        intPtr(15420),
		Brand:              strPtr("Apple"),
		Features:           strPtr("A17 Pro chip, Titanium design, 5x telephoto zoom, Action Button, USB-C"),
	},
	{
		Name:               "Sony WH-1000XM5 Wireless Headphones",
		Description:        "Industry-leading noise canceling with exceptional sound quality and 30-hour battery life",
		Price:              "349.99",
		OriginalPrice:      strPtr("399.99"),
		DiscountPercentage: intPtr(13),
		Image:              "https://images.unsplash.com/photo-1583394838336-acd977736f90?w=500&h=500&fit=crop",
		Category:           "Electronics",
		StockQuantity:      intPtr(45),
		Rating:             strPtr("4.7"),
		ReviewCount:        intPtr(12567),
		Brand:              strPtr("Sony"),
		Features:           strPtr("Active noise canceling, 30-hour battery, Quick charge, Multipoint connection"),
	},
	{
		Name:               "MacBook Air M3 13-inch",
		Description:        "Supercharged by the M3 chip with 18-hour battery life and stunning Liquid Retina display",
		Price:              "1099.99",
		OriginalPrice:      strPtr("1199.99"),
		DiscountPercentage: intPtr(8),
		Image:              "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=500&h=500&fit=crop",
		Category:           "Electronics",
		StockQuantity:      intPtr(12),
		Rating:             strPtr("4.9"),
		ReviewCount:        intPtr(9876),
		Brand:              strPtr("Apple"),
		Features:           strPtr("M3 chip, 18-hour battery, Liquid Retina display, 8GB unified memory"),
	},
	{
		Name:               "Apple AirPods Pro (2nd Generation)",
		Description:        "Active Noise Cancelling Earbuds with Personalized Spatial Audio, MagSafe Charging Case, H2 Chip",
		Price:              "199.99",
		OriginalPrice:      strPtr("249.99"),
		DiscountPercentage: intPtr(20),
		Image:              "https://images.unsplash.com/photo-1588423771073-b8903fbb85b5?w=500&h=500&fit=crop",
		Category:           "Electronics",
		StockQuantity:      intPtr(50),
		Rating:             strPtr("4.4"),
		ReviewCount:        intPtr(89543),
		Brand:              strPtr("Apple"),
		Features:           strPtr("Active Noise Cancellation, Spatial Audio, MagSafe Charging, Sweat and Water Resistant"),
	},
	{
		Name:               "Nike Air Force 1 '07 Sneakers",
		Description:        "Classic basketball shoe with leather upper and Air-Sole unit for lightweight cushioning",
		Price:              "89.99",
		OriginalPrice:      strPtr("110.00"),
		DiscountPercentage: intPtr(18),
		Image:              "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500&h=500&fit=crop",
		Category:           "Fashion",
		StockQuantity:      intPtr(67),
		Rating:             strPtr("4.5"),
		ReviewCount:        intPtr(23456),
		Brand:              strPtr("Nike"),
		Features:           strPtr("Leather upper, Air-Sole cushioning, Rubber outsole, Classic design"),
	},
	{
		Name:               "Levi's Men's 511 Slim Jeans",
		Description:        "Classic slim fit jeans made with premium denim, comfortable for all-day wear",
		Price:              "39.99",
		OriginalPrice:      strPtr("59.99"),
		DiscountPercentage: intPtr(33),
		Image:              "https://images.unsplash.com/photo-1542272604-787c3835535d?w=500&h=500&fit=crop",
		Category:           "Fashion",
		StockQuantity:      intPtr(75),
		Rating:             strPtr("4.3"),
		ReviewCount:        intPtr(12456),
		Brand:              strPtr("Levi's"),
		Features:           strPtr("Slim fit, stretch denim, classic five-pocket styling, machine washable"),
	},
	{
		Name:               "Instant Pot Duo 7-in-1 Electric Pressure Cooker",
		Description:        "7-in-1 functionality: pressure cooker, slow cooker, rice cooker, steamer, saute, yogurt maker, warmer",
		Price:              "79.99",
		OriginalPrice:      strPtr("119.99"),
		DiscountPercentage: intPtr(33),
		Image:              "https://images.unsplash.com/photo-1586511925558-a4c6376fe65f?w=500&h=500&fit=crop",
		Category:           "Home & Kitchen",
		StockQuantity:      intPtr(30),
		Rating:             strPtr("4.6"),
		ReviewCount:        intPtr(45678),
		Brand:              strPtr("Instant Pot"),
		Features:           strPtr("7-in-1 functionality, 6-quart capacity, dishwasher safe, stainless steel inner pot"),
	},
	{
		Name:               "Nike Air Max 270 Running Shoes",
		Description:        "Men's running shoes with visible Air Max unit in the heel for maximum comfort and style",
		Price:              "89.99",
		OriginalPrice:      strPtr("130.00"),
		DiscountPercentage: intPtr(31),
		Image:              "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500&h=500&fit=crop",
		Category:           "Sports & Outdoors",
		StockQuantity:      intPtr(85),
		Rating:             strPtr("4.5"),
		ReviewCount:        intPtr(23456),
		Brand:              strPtr("Nike"),
		Features:           strPtr("Air Max technology, mesh upper, rubber outsole, cushioned midsole"),
	},
	{
		Name:               "The Silent Patient by Alex Michaelides",
		Description:        "Bestselling psychological thriller novel about a woman's act of violence and a psychotherapist obsessed with treating her",
		Price:              "12.99",
		OriginalPrice:      strPtr("16.99"),
		DiscountPercentage: intPtr(24),
		Image:              "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=500&h=500&fit=crop",
		Category:           "Books & Media",
		StockQuantity:      intPtr(120),
		Rating:             strPtr("4.4"),
		ReviewCount:        intPtr(18765),
		Brand:              strPtr("Celadon Books"),
		Features:           strPtr("Paperback, 336 pages, psychological thriller, bestseller"),
	},
	{
		Name:               "Rubik's Cube 3x3 Speed Cube",
		Description:        "Classic color-matching puzzle with improved turning for faster solving",
		Price:              "14.99",
		OriginalPrice:      strPtr("18.99"),
		DiscountPercentage: intPtr(21),
		Image:              "https://images.unsplash.com/photo-1558060370-d644479cb6f7?w=500&h=500&fit=crop",
		Category:           "Toys & Games",
		StockQuantity:      intPtr(94),
		Rating:             strPtr("4.4"),
		ReviewCount:        intPtr(8765),
		Brand:              strPtr("Rubik's"),
		Features:           strPtr("Speed cube, Improved turning, Corner cutting, Classic puzzle"),
	},
}

// Seed fills an empty store with the demo accounts and catalog. A store
// that already holds products is left alone, so a persistent backend is
// only seeded on first start.
func Seed(ctx context.Context, s Storage) error {
	existing, err := s.Products(ctx)
	if err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, u := range seedUsers {
		if _, err := s.UserByEmail(ctx, u.Email); err == nil {
			continue
		}
		if _, err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range seedProducts {
		if _, err := s.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	return nil
}
