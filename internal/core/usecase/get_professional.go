package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

type GetProfessionalByIDUseCase struct {
	storage port.ProfessionalInfoPort
}

func NewGetProfessionalByIDUseCase(storage port.ProfessionalInfoPort) *GetProfessionalByIDUseCase {
	return &GetProfessionalByIDUseCase{storage: storage}
}

func (uc *GetProfessionalByIDUseCase) Execute(ctx context.Context, id int64) (*domain.Professional, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":        "GetProfessionalByID",
		"professional_id": id,
	})

	if id <= 0 {
		return nil, domain.ErrProfessionalNotFound
	}

	professional, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		logLookupError(ucLogger, err)
		return nil, err
	}
	return professional, nil
}

type GetProfessionalBySlugUseCase struct {
	storage port.ProfessionalInfoPort
}

func NewGetProfessionalBySlugUseCase(storage port.ProfessionalInfoPort) *GetProfessionalBySlugUseCase {
	return &GetProfessionalBySlugUseCase{storage: storage}
}

func (uc *GetProfessionalBySlugUseCase) Execute(ctx context.Context, slug string) (*domain.Professional, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetProfessionalBySlug",
		"slug":     slug,
	})

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrProfessionalNotFound
	}

	professional, err := uc.storage.GetBySlug(ctx, slug)
	if err != nil {
		logLookupError(ucLogger, err)
		return nil, err
	}
	return professional, nil
}

func logLookupError(logger port.LoggerPort, err error) {
	if errors.Is(err, domain.ErrProfessionalNotFound) {
		logger.Warn("Professional not found", nil)
		return
	}
	logger.Error("Storage returned an error", err, nil)
}
