package services

import "github.com/SigNoz/cart-graphql-api/internal/models"

// SeedProducts returns the demo catalog served when no database is configured
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "prod-001",
			Name:        "iPhone 15 Pro Max",
			Price:       34990000,
			Description: "Genuine Apple iPhone 15 Pro Max",
			Image:       "https://images.unsplash.com/photo-1695048133142-1a20484d2569",
			Stock:       50,
			Category:    "Phones",
		},
		{
			ID:          "prod-002",
			Name:        "MacBook Pro M3",
			Price:       49990000,
			Description: "Apple MacBook Pro laptop with the M3 chip",
			Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8",
			Stock:       30,
			Category:    "Laptops",
		},
		{
			ID:          "prod-003",
			Name:        "AirPods Pro 2",
			Price:       6990000,
			Description: "Apple AirPods Pro wireless earbuds, 2nd generation",
			Image:       "https://images.unsplash.com/photo-1600294037681-c80b4cb5b434",
			Stock:       100,
			Category:    "Accessories",
		},
		{
			ID:          "prod-004",
			Name:        "Apple Watch Ultra 2",
			Price:       21990000,
			Description: "Apple Watch Ultra 2 smartwatch",
			Image:       "https://images.unsplash.com/photo-1434493789847-2f02dc6ca35d",
			Stock:       25,
			Category:    "Watches",
		},
		{
			ID:          "prod-005",
			Name:        "iPad Pro M2",
			Price:       28990000,
			Description: "iPad Pro 12.9 inch tablet with the M2 chip",
			Image:       "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0",
			Stock:       40,
			Category:    "Tablets",
		},
		{
			ID:          "prod-006",
			Name:        "Samsung Galaxy S24 Ultra",
			Price:       31990000,
			Description: "Samsung Galaxy S24 Ultra phone",
			Image:       "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf",
			Stock:       45,
			Category:    "Phones",
		},
		{
			ID:          "prod-007",
			Name:        "Sony WH-1000XM5",
			Price:       8990000,
			Description: "Sony WH-1000XM5 noise cancelling headphones",
			Image:       "https://images.unsplash.com/photo-1546435770-a3e426bf472b",
			Stock:       60,
			Category:    "Accessories",
		},
		{
			ID:          "prod-008",
			Name:        "Dell XPS 15",
			Price:       42990000,
			Description: "Premium 15 inch Dell XPS laptop",
			Image:       "https://images.unsplash.com/photo-1593642632559-0c6d3fc62b89",
			Stock:       20,
			Category:    "Laptops",
		},
	}
}
