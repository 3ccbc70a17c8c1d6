package usecase

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

type GetDistinctCitiesUseCase struct {
	storage port.ProfessionalInfoPort
}

func NewGetDistinctCitiesUseCase(storage port.ProfessionalInfoPort) *GetDistinctCitiesUseCase {
	return &GetDistinctCitiesUseCase{storage: storage}
}

// Execute возвращает все непустые города по алфавиту.
func (uc *GetDistinctCitiesUseCase) Execute(ctx context.Context) ([]string, error) {
	cities, err := uc.storage.DistinctCities(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to get distinct cities", err, port.Fields{"use_case": "GetDistinctCities"})
		return nil, err
	}
	if cities == nil {
		cities = []string{}
	}
	return cities, nil
}
