package seed

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"eggypro-store/internal/price"
)

type productSeed struct {
	Slug        string
	Name        string
	Description string
	Price       string
	ImageURL    string
}

// Apply inserts the demo catalog for manual testing. It is idempotent via
// ON CONFLICT. Prices are stored as the raw feed text, decorations and all,
// matching what the live import produces.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Slug:        "eggy-whey-classic",
			Name:        "EggyPro Whey Classic",
			Description: "25g protein per serving, vanilla",
			Price:       "29.99",
			ImageURL:    "/images/products/whey-classic.jpg",
		},
		{
			Slug:        "eggy-whey-isolate",
			Name:        "EggyPro Whey Isolate",
			Description: "Zero lactose isolate, chocolate",
			Price:       "39.99",
			ImageURL:    "/images/products/whey-isolate.jpg",
		},
		{
			Slug:        "eggy-creatine",
			Name:        "EggyPro Creatine Monohydrate",
			Description: "Micronized, 500g tub",
			Price:       "$24.99",
			ImageURL:    "/images/products/creatine.jpg",
		},
		{
			Slug:        "eggy-mass-gainer",
			Name:        "EggyPro Mass Gainer",
			Description: "1,250 calories per serving",
			Price:       "$1,049.00",
			ImageURL:    "/images/products/mass-gainer.jpg",
		},
		{
			Slug:        "eggy-shaker",
			Name:        "EggyPro Shaker Bottle",
			Description: "700ml, leakproof",
			Price:       "12.50",
			ImageURL:    "/images/products/shaker.jpg",
		},
		{
			Slug:        "eggy-pre-workout",
			Name:        "EggyPro Pre-Workout",
			Description: "Citrus blast, 30 servings",
			Price:       "34.99",
			ImageURL:    "/images/products/pre-workout.jpg",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (slug, name, description, price, price_cents, image_url)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url
`
	cents := int64(0)
	if n := price.Normalize(p.Price); n.Valid {
		cents = int64(math.Round(n.Value * 100))
	}
	_, err := pool.Exec(ctx, q, p.Slug, p.Name, p.Description, p.Price, cents, p.ImageURL)
	return err
}
