package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// ProfessionalStorageAdapter реализует порты поиска и чтения профилей для PostgreSQL.
type ProfessionalStorageAdapter struct {
	pool   *pgxpool.Pool
	policy domain.RankingPolicy
}

// NewProfessionalStorageAdapter создает новый экземпляр адаптера.
func NewProfessionalStorageAdapter(pool *pgxpool.Pool) (*ProfessionalStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ProfessionalStorageAdapter{
		pool:   pool,
		policy: domain.DefaultRankingPolicy,
	}, nil
}

// professionalColumns - колонки профиля в порядке scanProfessional.
const professionalColumns = `
	p.id, p.slug, coalesce(p.first_name, ''), coalesce(p.last_name, ''), coalesce(p.display_name, ''),
	coalesce(p.headline, ''), coalesce(p.bio, ''), coalesce(p.avatar_url, ''), coalesce(p.category, ''),
	coalesce(p.city, ''), coalesce(p.state, ''), coalesce(p.country, ''), p.remote,
	p.is_available, p.is_verified, p.rating, p.review_count,
	p.hourly_rate_min, p.hourly_rate_max, coalesce(p.currency, '')`

// scanProfessional читает колонки professionalColumns; extra - дополнительные колонки после них.
func scanProfessional(row pgx.Row, extra ...any) (domain.Professional, error) {
	var p domain.Professional
	dest := []any{
		&p.ID, &p.Slug, &p.FirstName, &p.LastName, &p.DisplayName,
		&p.Headline, &p.Bio, &p.AvatarURL, &p.Category,
		&p.City, &p.State, &p.Country, &p.Remote,
		&p.IsAvailable, &p.IsVerified, &p.Rating, &p.ReviewCount,
		&p.HourlyRateMin, &p.HourlyRateMax, &p.Currency,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Professional{}, err
	}
	return p, nil
}

// loadRelations догружает подкатегории и районы обслуживания для уже выбранных специалистов.
// Два запроса на страницу вместо двух на каждого специалиста.
func (a *ProfessionalStorageAdapter) loadRelations(ctx context.Context, professionals []domain.Professional) error {
	if len(professionals) == 0 {
		return nil
	}

	ids := make([]int64, len(professionals))
	index := make(map[int64]int, len(professionals))
	for i, p := range professionals {
		ids[i] = p.ID
		index[p.ID] = i
	}

	subRows, err := a.pool.Query(ctx, `
		SELECT ps.professional_id, s.id, s.name, s.category
		FROM professional_subcategories ps
		JOIN subcategories s ON s.id = ps.subcategory_id
		WHERE ps.professional_id = ANY($1)
		ORDER BY s.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("failed to load subcategories: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var professionalID int64
		var sub domain.Subcategory
		if err := subRows.Scan(&professionalID, &sub.ID, &sub.Name, &sub.Category); err != nil {
			return fmt.Errorf("failed to scan subcategory: %w", err)
		}
		i := index[professionalID]
		professionals[i].Subcategories = append(professionals[i].Subcategories, sub)
	}
	if err := subRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate subcategories: %w", err)
	}

	areaRows, err := a.pool.Query(ctx, `
		SELECT professional_id, area_name
		FROM professional_service_areas
		WHERE professional_id = ANY($1)
		ORDER BY id ASC`, ids)
	if err != nil {
		return fmt.Errorf("failed to load service areas: %w", err)
	}
	defer areaRows.Close()

	for areaRows.Next() {
		var professionalID int64
		var area string
		if err := areaRows.Scan(&professionalID, &area); err != nil {
			return fmt.Errorf("failed to scan service area: %w", err)
		}
		i := index[professionalID]
		professionals[i].ServiceAreas = append(professionals[i].ServiceAreas, area)
	}
	return areaRows.Err()
}
