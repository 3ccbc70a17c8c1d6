package usecase

import (
	"context"
	"fmt"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// FacetAggregator считает фасеты для фильтров UI. Фасеты глобальные: они не зависят
// от текущих фильтров и страницы.
type FacetAggregator struct {
	storage port.FacetRepositoryPort
}

func NewFacetAggregator(storage port.FacetRepositoryPort) *FacetAggregator {
	return &FacetAggregator{storage: storage}
}

// Execute нужен для отдельного эндпоинта фасетов.
func (fa *FacetAggregator) Execute(ctx context.Context) (*domain.Facets, error) {
	return fa.Aggregate(ctx)
}

// Aggregate параллельно считает все измерения. Ошибка любого измерения - ошибка целиком.
func (fa *FacetAggregator) Aggregate(ctx context.Context) (*domain.Facets, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FacetAggregator",
	})

	results := make([][]domain.FacetCount, len(domain.FacetDimensions))

	g, gCtx := errgroup.WithContext(ctx)
	for i, dimension := range domain.FacetDimensions {
		i, dimension := i, dimension
		g.Go(func() error {
			facets, err := fa.storage.FacetBy(gCtx, dimension, dimension.Limit())
			if err != nil {
				return fmt.Errorf("failed to build %s facets: %w", dimension, err)
			}
			results[i] = facets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Facet aggregation failed", err, nil)
		return nil, err
	}

	facets := &domain.Facets{
		Categories: results[0],
		Cities:     results[1],
		Areas:      results[2],
	}
	logger.Debug("Facets aggregated", port.Fields{
		"categories": len(facets.Categories),
		"cities":     len(facets.Cities),
		"areas":      len(facets.Areas),
	})
	return facets, nil
}
