package usecases_port

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type GetFacetsUseCase interface {
	Execute(ctx context.Context) (*domain.Facets, error)
}
