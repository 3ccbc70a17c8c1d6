package usecase

import (
	"context"
	"strings"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

// GetDictionariesUseCase отдает справочник подкатегорий для фильтров.
type GetDictionariesUseCase struct {
	storage port.DictionaryRepositoryPort
}

func NewGetDictionariesUseCase(storage port.DictionaryRepositoryPort) *GetDictionariesUseCase {
	return &GetDictionariesUseCase{storage: storage}
}

func (uc *GetDictionariesUseCase) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	items, err := uc.storage.ListSubcategories(ctx)
	if err != nil {
		uc.logError(ctx, "ListSubcategories", err)
		return nil, err
	}
	return nonNil(items), nil
}

func (uc *GetDictionariesUseCase) ListCategories(ctx context.Context) ([]string, error) {
	items, err := uc.storage.ListCategories(ctx)
	if err != nil {
		uc.logError(ctx, "ListCategories", err)
		return nil, err
	}
	return nonNil(items), nil
}

func (uc *GetDictionariesUseCase) ListSubcategoriesByCategory(ctx context.Context, category string) ([]domain.Subcategory, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return []domain.Subcategory{}, nil
	}
	items, err := uc.storage.ListSubcategoriesByCategory(ctx, category)
	if err != nil {
		uc.logError(ctx, "ListSubcategoriesByCategory", err)
		return nil, err
	}
	return nonNil(items), nil
}

func (uc *GetDictionariesUseCase) logError(ctx context.Context, method string, err error) {
	contextkeys.LoggerFromContext(ctx).Error("Dictionary storage returned an error", err, port.Fields{
		"use_case": "GetDictionaries",
		"method":   method,
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
