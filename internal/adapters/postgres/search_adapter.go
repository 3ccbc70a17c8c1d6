package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

// SearchMatching возвращает страницу специалистов, отсортированную по релевантности
func (a *ProfessionalStorageAdapter) SearchMatching(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Professional, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ProfessionalStorageAdapter",
		"method":    "SearchMatching",
		"limit":     criteria.PageSize,
		"offset":    criteria.Offset(),
	})

	whereClause, scoreExpr, args := applyCriteria(criteria, a.policy)

	query := fmt.Sprintf(`
		SELECT %s, %s AS score
		FROM professionals p
		%s
		ORDER BY score DESC, p.rating DESC NULLS LAST, p.id ASC
		LIMIT $%d OFFSET $%d`,
		professionalColumns, scoreExpr, whereClause, len(args)+1, len(args)+2,
	)
	queryArgs := append(args, criteria.PageSize, criteria.Offset())

	rows, err := a.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		repoLogger.Error("Failed to search professionals", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to search professionals: %w", err)
	}
	defer rows.Close()

	professionals := make([]domain.Professional, 0, criteria.PageSize)
	for rows.Next() {
		var score float64
		p, err := scanProfessional(rows, &score)
		if err != nil {
			return nil, fmt.Errorf("failed to scan professional: %w", err)
		}
		professionals = append(professionals, p)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during professionals rows iteration", err, nil)
		return nil, fmt.Errorf("failed to iterate professionals: %w", err)
	}
	rows.Close()

	if err := a.loadRelations(ctx, professionals); err != nil {
		repoLogger.Error("Failed to load professional relations", err, nil)
		return nil, err
	}

	repoLogger.Debug("Successfully found professionals for page", port.Fields{"count": len(professionals)})
	return professionals, nil
}

// CountMatching считает специалистов с тем же предикатом, что и SearchMatching
func (a *ProfessionalStorageAdapter) CountMatching(ctx context.Context, criteria domain.SearchCriteria) (int64, error) {
	whereClause, _, args := applyCriteria(criteria, a.policy)
	query := fmt.Sprintf("SELECT COUNT(*) FROM professionals p %s", whereClause)

	var total int64
	if err := a.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to count professionals", err, port.Fields{
			"component": "ProfessionalStorageAdapter",
			"query":     query,
		})
		return 0, fmt.Errorf("failed to count professionals: %w", err)
	}
	return total, nil
}

// ResolveAreaName находит известный район, больше всего похожий на подсказку
func (a *ProfessionalStorageAdapter) ResolveAreaName(ctx context.Context, hint string) (*string, error) {
	query := fmt.Sprintf(`
		SELECT area_name
		FROM (SELECT DISTINCT area_name FROM professional_service_areas) areas
		WHERE similarity(area_name, $1) >= %v
		ORDER BY similarity(area_name, $1) DESC, area_name ASC
		LIMIT 1`, a.policy.AreaResolveThreshold)

	var area string
	err := a.pool.QueryRow(ctx, query, hint).Scan(&area)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve area name: %w", err)
	}
	return &area, nil
}
