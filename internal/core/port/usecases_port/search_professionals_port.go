package usecases_port

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type SearchProfessionalsUseCase interface {
	Execute(ctx context.Context, raw domain.RawSearchCriteria) (*domain.SearchResult, error)
}
