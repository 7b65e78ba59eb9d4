package store

import "github.com/ecoscan/ecoscan-api/internal/domain"

// SeedProducts returns the reference products every store starts with.
// A fresh slice is returned on each call.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:       1,
			Name:     "Organic Oat Milk",
			Brand:    "EcoFoods",
			Category: "Dairy Alternatives",
			Barcode:  "8901234567890",
			EcoScore: "A+",
			Metrics: domain.Metrics{
				Materials:       92,
				CarbonFootprint: 85,
				Recyclability:   78,
			},
			Impact: domain.Impact{
				CO2:       "0.4kg CO₂e",
				Water:     "48 liters",
				Packaging: "78% Recyclable",
				Land:      "Minimal Impact",
			},
			Ingredients: "Oats (water, organic oats), sunflower oil, sea salt, natural flavors.",
			Certifications: []domain.Certification{
				{Name: "Organic", Color: "green"},
				{Name: "Non-GMO", Color: "blue"},
				{Name: "Vegan", Color: "amber"},
			},
			Production:       "Made using renewable energy sources. Water-efficient processing.",
			PackagingDetails: "Tetra Pak with plant-based cap. Please rinse and recycle where facilities exist.",
		},
		{
			ID:       2,
			Name:     "Bamboo Toothbrush",
			Brand:    "EcoSmile",
			Category: "Personal Care",
			Barcode:  "7809123456789",
			EcoScore: "A",
			Metrics: domain.Metrics{
				Materials:       95,
				CarbonFootprint: 90,
				Recyclability:   80,
			},
			Impact: domain.Impact{
				CO2:       "0.2kg CO₂e",
				Water:     "15 liters",
				Packaging: "100% Compostable",
				Land:      "Sustainable bamboo",
			},
			Ingredients: "Bamboo handle, plant-based bristles, natural dyes.",
			Certifications: []domain.Certification{
				{Name: "Plastic-Free", Color: "blue"},
				{Name: "Biodegradable", Color: "green"},
			},
			Production:       "Handcrafted using sustainable bamboo. Low-impact manufacturing.",
			PackagingDetails: "Cardboard packaging made from recycled materials. Fully compostable.",
		},
	}
}

// SeedAlternatives returns the static alternative suggestions for the seeded products
func SeedAlternatives() []domain.Alternative {
	return []domain.Alternative{
		{ID: 101, ProductID: 1, Name: "Small Planet Oat Milk", EcoScore: "A+", Feature: "Zero-waste packaging"},
		{ID: 102, ProductID: 1, Name: "Local Farms Oat Milk", EcoScore: "A", Feature: "Local production, less transport"},
		{ID: 201, ProductID: 2, Name: "Refillable Bamboo Toothbrush", EcoScore: "A+", Feature: "Replaceable head, handle lasts for years"},
		{ID: 202, ProductID: 2, Name: "Neem Wood Toothbrush", EcoScore: "A", Feature: "Fast-growing, pesticide-free wood"},
	}
}
