package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// FacetRepository считает фасеты по всей таблице специалистов, без учета фильтров поиска.
type FacetRepository struct {
	pool *pgxpool.Pool
}

func NewFacetRepository(pool *pgxpool.Pool) (*FacetRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &FacetRepository{
		pool: pool,
	}, nil
}

// facetQueries - запрос на каждое измерение. Пустые метки не считаются,
// специалист учитывается в метке один раз.
var facetQueries = map[domain.FacetDimension]string{
	domain.FacetByCategory: `
		SELECT p.category, COUNT(DISTINCT p.id)
		FROM professionals p
		WHERE p.category IS NOT NULL AND btrim(p.category) <> ''
		GROUP BY p.category
		ORDER BY 2 DESC, 1 ASC
		LIMIT $1`,
	domain.FacetByCity: `
		SELECT p.city, COUNT(DISTINCT p.id)
		FROM professionals p
		WHERE p.city IS NOT NULL AND btrim(p.city) <> ''
		GROUP BY p.city
		ORDER BY 2 DESC, 1 ASC
		LIMIT $1`,
	domain.FacetByArea: `
		SELECT sa.area_name, COUNT(DISTINCT sa.professional_id)
		FROM professional_service_areas sa
		WHERE btrim(sa.area_name) <> ''
		GROUP BY sa.area_name
		ORDER BY 2 DESC, 1 ASC
		LIMIT $1`,
}

// FacetBy возвращает топ меток измерения с количеством специалистов.
func (r *FacetRepository) FacetBy(ctx context.Context, dimension domain.FacetDimension, limit int) ([]domain.FacetCount, error) {
	query, ok := facetQueries[dimension]
	if !ok {
		return nil, fmt.Errorf("unknown facet dimension %q", dimension)
	}

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s facets: %w", dimension, err)
	}
	defer rows.Close()

	facets := make([]domain.FacetCount, 0, limit)
	for rows.Next() {
		var facet domain.FacetCount
		if err := rows.Scan(&facet.Label, &facet.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s facet: %w", dimension, err)
		}
		facets = append(facets, facet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s facets: %w", dimension, err)
	}
	return facets, nil
}
