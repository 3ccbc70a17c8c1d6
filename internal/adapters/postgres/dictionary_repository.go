package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// DictionaryRepository читает справочник подкатегорий.
type DictionaryRepository struct {
	pool *pgxpool.Pool
}

func NewDictionaryRepository(pool *pgxpool.Pool) (*DictionaryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &DictionaryRepository{
		pool: pool,
	}, nil
}

func (r *DictionaryRepository) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	return r.querySubcategories(ctx, "SELECT id, name, category FROM subcategories ORDER BY name")
}

func (r *DictionaryRepository) ListSubcategoriesByCategory(ctx context.Context, category string) ([]domain.Subcategory, error) {
	return r.querySubcategories(ctx, "SELECT id, name, category FROM subcategories WHERE category = $1 ORDER BY name", category)
}

// ListCategories получает уникальные родительские категории
func (r *DictionaryRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT DISTINCT category FROM subcategories ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *DictionaryRepository) querySubcategories(ctx context.Context, query string, args ...interface{}) ([]domain.Subcategory, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategories: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Subcategory, 0)
	for rows.Next() {
		var sub domain.Subcategory
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Category); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		items = append(items, sub)
	}
	return items, rows.Err()
}
