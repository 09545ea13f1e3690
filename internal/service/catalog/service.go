// Package catalog serves product reads with a fallback: when the database
// is unreachable (or the circuit breaker has opened after repeated
// failures), the storefront answers from a compiled-in product set instead
// of failing the page.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"eggypro-store/internal/domain"
	productrepo "eggypro-store/internal/repository/product"
)

type Service struct {
	repo     productrepo.Repository
	breaker  *gobreaker.CircuitBreaker[[]domain.Product]
	sfg      singleflight.Group
	logger   *zap.Logger
	fallback []domain.Product
}

// New builds the catalog service. repo may be nil, in which case every read
// is served from the fallback set (the no-database development mode).
func New(repo productrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker := gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:    "catalog-db",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// A clean not-found is a healthy database answering, not a failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("catalog breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &Service{
		repo:     repo,
		breaker:  breaker,
		logger:   logger,
		fallback: fallbackProducts,
	}
}

// List returns all products, from the database when it is healthy and from
// the fallback set otherwise.
func (s *Service) List(ctx context.Context) []domain.Product {
	if s.repo == nil {
		return s.fallback
	}
	v, err, _ := s.sfg.Do("list", func() (any, error) {
		return s.breaker.Execute(func() ([]domain.Product, error) {
			return s.repo.List(ctx)
		})
	})
	if err != nil {
		s.logger.Warn("catalog list falling back to static data", zap.Error(err))
		return s.fallback
	}
	products := v.([]domain.Product)
	if len(products) == 0 {
		// An empty catalog usually means an unseeded database; the static
		// set keeps the storefront browsable.
		return s.fallback
	}
	return products
}

// Get returns one product by slug. ErrNotFound means the slug exists in
// neither the database nor the fallback set.
func (s *Service) Get(ctx context.Context, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	if s.repo != nil {
		v, err, _ := s.sfg.Do("get:"+slug, func() (any, error) {
			return s.breaker.Execute(func() ([]domain.Product, error) {
				p, err := s.repo.GetBySlug(ctx, slug)
				if err != nil {
					return nil, err
				}
				return []domain.Product{*p}, nil
			})
		})
		if err == nil {
			products := v.([]domain.Product)
			return &products[0], nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			// A clean miss from a healthy database is authoritative for
			// seeded catalogs, but the fallback set may still carry it.
			return s.fromFallback(slug)
		}
		s.logger.Warn("catalog get falling back to static data", zap.String("slug", slug), zap.Error(err))
	}
	return s.fromFallback(slug)
}

func (s *Service) fromFallback(slug string) (*domain.Product, error) {
	for i := range s.fallback {
		if s.fallback[i].Slug == slug {
			return &s.fallback[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
