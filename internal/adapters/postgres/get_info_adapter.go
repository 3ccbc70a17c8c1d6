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

// profileColumns - поля полной карточки, которых нет в поисковой выдаче.
const profileColumns = `
	coalesce(p.cover_image_url, ''), coalesce(p.email, ''), coalesce(p.phone, ''), coalesce(p.whatsapp, '')`

// GetByID находит профиль специалиста вместе с подкатегориями, районами, услугами и ссылками
func (a *ProfessionalStorageAdapter) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	return a.getOne(ctx, "GetByID", "p.id = $1", id)
}

// GetBySlug находит профиль по slug для публичной страницы специалиста
func (a *ProfessionalStorageAdapter) GetBySlug(ctx context.Context, slug string) (*domain.Professional, error) {
	return a.getOne(ctx, "GetBySlug", "p.slug = $1", slug)
}

func (a *ProfessionalStorageAdapter) getOne(ctx context.Context, method, condition string, arg interface{}) (*domain.Professional, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ProfessionalStorageAdapter",
		"method":    method,
		"key":       arg,
	})

	query := fmt.Sprintf("SELECT %s, %s FROM professionals p WHERE %s", professionalColumns, profileColumns, condition)
	var coverImageURL string
	var contact domain.ContactInfo
	p, err := scanProfessional(a.pool.QueryRow(ctx, query, arg),
		&coverImageURL, &contact.Email, &contact.Phone, &contact.WhatsApp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Professional not found", nil)
			return nil, domain.ErrProfessionalNotFound
		}
		repoLogger.Error("Failed to get professional", err, nil)
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}

	p.CoverImageURL = coverImageURL
	p.Contact = contact

	professionals := []domain.Professional{p}
	if err := a.loadRelations(ctx, professionals); err != nil {
		repoLogger.Error("Failed to load professional relations", err, nil)
		return nil, err
	}
	if err := a.loadProfileDetails(ctx, &professionals[0]); err != nil {
		repoLogger.Error("Failed to load professional profile details", err, nil)
		return nil, err
	}
	return &professionals[0], nil
}

// loadProfileDetails догружает услуги и ссылки на соцсети одного специалиста.
func (a *ProfessionalStorageAdapter) loadProfileDetails(ctx context.Context, p *domain.Professional) error {
	serviceRows, err := a.pool.Query(ctx, `
		SELECT id, title, coalesce(description, ''), price_min, price_max,
			coalesce(currency, ''), coalesce(price_unit, ''), coalesce(duration, '')
		FROM services
		WHERE professional_id = $1
		ORDER BY id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load services: %w", err)
	}
	defer serviceRows.Close()

	for serviceRows.Next() {
		var s domain.ServiceOffering
		if err := serviceRows.Scan(&s.ID, &s.Title, &s.Description, &s.PriceMin, &s.PriceMax,
			&s.Currency, &s.PriceUnit, &s.Duration); err != nil {
			return fmt.Errorf("failed to scan service: %w", err)
		}
		p.Services = append(p.Services, s)
	}
	if err := serviceRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate services: %w", err)
	}

	linkRows, err := a.pool.Query(ctx, `
		SELECT id, platform, url, coalesce(label, '')
		FROM social_links
		WHERE professional_id = $1
		ORDER BY id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load social links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var l domain.SocialLink
		if err := linkRows.Scan(&l.ID, &l.Platform, &l.URL, &l.Label); err != nil {
			return fmt.Errorf("failed to scan social link: %w", err)
		}
		p.SocialLinks = append(p.SocialLinks, l)
	}
	return linkRows.Err()
}

// DistinctCities возвращает отсортированный список непустых городов
func (a *ProfessionalStorageAdapter) DistinctCities(ctx context.Context) ([]string, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT DISTINCT p.city
		FROM professionals p
		WHERE p.city IS NOT NULL AND p.city <> ''
		ORDER BY p.city`)
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct cities: %w", err)
	}
	defer rows.Close()

	cities := make([]string, 0)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}
