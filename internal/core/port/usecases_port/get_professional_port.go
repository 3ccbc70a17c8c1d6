package usecases_port

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type GetProfessionalByIDUseCase interface {
	Execute(ctx context.Context, id int64) (*domain.Professional, error)
}

type GetProfessionalBySlugUseCase interface {
	Execute(ctx context.Context, slug string) (*domain.Professional, error)
}
