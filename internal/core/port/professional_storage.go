package port

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// ProfessionalSearchPort - хранилище, умеющее отбирать и ранжировать специалистов
// по правилам domain.RankingPolicy.
type ProfessionalSearchPort interface {
	// SearchMatching возвращает одну страницу подходящих специалистов в порядке релевантности.
	SearchMatching(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Professional, error)
	// CountMatching считает всех подходящих специалистов с тем же предикатом, без пагинации.
	CountMatching(ctx context.Context, criteria domain.SearchCriteria) (int64, error)
	// ResolveAreaName ищет самый похожий известный район; nil - если ничего не прошло порог.
	ResolveAreaName(ctx context.Context, hint string) (*string, error)
}

// FacetRepositoryPort считает фасеты по всей базе специалистов.
type FacetRepositoryPort interface {
	FacetBy(ctx context.Context, dimension domain.FacetDimension, limit int) ([]domain.FacetCount, error)
}

// ProfessionalInfoPort - точечные выборки профилей.
type ProfessionalInfoPort interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Professional, error)
	DistinctCities(ctx context.Context) ([]string, error)
}

// DictionaryRepositoryPort - справочник подкатегорий (только чтение).
type DictionaryRepositoryPort interface {
	ListSubcategories(ctx context.Context) ([]domain.Subcategory, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListSubcategoriesByCategory(ctx context.Context, category string) ([]domain.Subcategory, error)
}
