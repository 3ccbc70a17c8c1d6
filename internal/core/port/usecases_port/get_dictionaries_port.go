package usecases_port

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type GetDictionariesUseCase interface {
	ListSubcategories(ctx context.Context) ([]domain.Subcategory, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListSubcategoriesByCategory(ctx context.Context, category string) ([]domain.Subcategory, error)
}
