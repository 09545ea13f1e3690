package product

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"eggypro-store/internal/domain"
	"eggypro-store/internal/price"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// The price column is TEXT on purpose: the upstream feed the catalog is
// synced from does not guarantee a numeric type, and the storefront keeps
// the raw value intact through to the price normalizer.
func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, slug, name, COALESCE(description, ''), price, COALESCE(image_url, ''), created_at
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Warn("product repo: list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("product repo: list rows failed", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `
SELECT id::text, slug, name, COALESCE(description, ''), price, COALESCE(image_url, ''), created_at
FROM products
WHERE slug = $1
`
	row := r.pool.QueryRow(ctx, q, slug)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Warn("product repo: get failed", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, name, description, price, price_cents, image_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url
RETURNING id::text, created_at
`
	out := product
	if err := r.pool.QueryRow(ctx, q,
		product.ID, product.Slug, product.Name, product.Description, rawPriceText(product.Price), priceCents(product.Price), product.ImageURL,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		r.logger.Warn("product repo: upsert failed", zap.String("slug", product.Slug), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var priceText string
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &priceText, &p.ImageURL, &p.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	p.Price = priceText
	return p, nil
}

// priceCents normalizes the raw price at write time so reporting queries can
// aggregate without reparsing. Unparseable prices record 0.
func priceCents(raw any) int64 {
	n := price.Normalize(raw)
	if !n.Valid {
		return 0
	}
	return int64(math.Round(n.Value * 100))
}

func rawPriceText(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
