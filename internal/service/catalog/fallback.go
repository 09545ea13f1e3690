package catalog

import "eggypro-store/internal/domain"

// fallbackProducts mirrors the seed catalog. The mixed price
// representations are deliberate: they match what the live upstream feed
// produces, so the fallback path exercises the same normalization the
// database path does.
var fallbackProducts = []domain.Product{
	{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d001",
		Slug:        "eggy-whey-classic",
		Name:        "EggyPro Whey Classic",
		Description: "25g protein per serving, vanilla",
		Price:       "29.99",
		ImageURL:    "/images/products/whey-classic.jpg",
	},
	{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d002",
		Slug:        "eggy-whey-isolate",
		Name:        "EggyPro Whey Isolate",
		Description: "Zero lactose isolate, chocolate",
		Price:       39.99,
		ImageURL:    "/images/products/whey-isolate.jpg",
	},
	{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d003",
		Slug:        "eggy-creatine",
		Name:        "EggyPro Creatine Monohydrate",
		Description: "Micronized, 500g tub",
		Price:       "$24.99",
		ImageURL:    "/images/products/creatine.jpg",
	},
	{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d004",
		Slug:        "eggy-mass-gainer",
		Name:        "EggyPro Mass Gainer",
		Description: "1,250 calories per serving",
		Price:       "$1,049.00",
		ImageURL:    "/images/products/mass-gainer.jpg",
	},
	{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d005",
		Slug:        "eggy-shaker",
		Name:        "EggyPro Shaker Bottle",
		Description: "700ml, leakproof",
		Price:       12.5,
		ImageURL:    "/images/products/shaker.jpg",
	},
	{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d006",
		Slug:        "eggy-pre-workout",
		Name:        "EggyPro Pre-Workout",
		Description: "Citrus blast, 30 servings",
		Price:       "34.99",
		ImageURL:    "/images/products/pre-workout.jpg",
	},
}
