package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// SearchProfessionalsUseCase - основной сценарий поиска: нормализация фильтров, разбор
// "X in Y", выборка страницы, подсчет, фасеты и сборка ответа.
type SearchProfessionalsUseCase struct {
	storage     port.ProfessionalSearchPort
	interpreter *QueryInterpreter
	facets      *FacetAggregator
	events      port.SearchEventsPort
	now         func() time.Time
}

func NewSearchProfessionalsUseCase(storage port.ProfessionalSearchPort, facets port.FacetRepositoryPort, events port.SearchEventsPort) *SearchProfessionalsUseCase {
	return &SearchProfessionalsUseCase{
		storage:     storage,
		interpreter: NewQueryInterpreter(storage),
		facets:      NewFacetAggregator(facets),
		events:      events,
		now:         time.Now,
	}
}

func (uc *SearchProfessionalsUseCase) Execute(ctx context.Context, raw domain.RawSearchCriteria) (*domain.SearchResult, error) {
	startedAt := uc.now()

	criteria := domain.NormalizeCriteria(raw)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "SearchProfessionals",
		"page":       criteria.Page,
		"page_size":  criteria.PageSize,
		"has_filter": criteria.HasAnyFilter(),
	})
	ucLogger.Info("Use case started", nil)

	interpreted, err := uc.interpreter.Interpret(ctx, criteria)
	if err != nil {
		ucLogger.Error("Query interpretation failed", err, nil)
		return nil, err
	}

	var (
		professionals []domain.Professional
		total         int64
		facets        *domain.Facets
	)

	// Страница, количество и фасеты друг от друга не зависят
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := uc.storage.SearchMatching(gCtx, interpreted)
		if err != nil {
			return fmt.Errorf("failed to search professionals: %w", err)
		}
		professionals = page
		return nil
	})
	g.Go(func() error {
		count, err := uc.storage.CountMatching(gCtx, interpreted)
		if err != nil {
			return fmt.Errorf("failed to count professionals: %w", err)
		}
		total = count
		return nil
	})
	g.Go(func() error {
		aggregated, err := uc.facets.Aggregate(gCtx)
		if err != nil {
			return err
		}
		facets = aggregated
		return nil
	})

	if err := g.Wait(); err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	result := domain.AssembleSearchResult(criteria, professionals, total, *facets)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Professionals),
		"total_pages":   result.TotalPages,
	})

	uc.publishEvent(ctx, ucLogger, criteria, interpreted, result, startedAt)

	return result, nil
}

// publishEvent отправляет аналитику. Ошибка публикации не ломает поиск.
func (uc *SearchProfessionalsUseCase) publishEvent(ctx context.Context, logger port.LoggerPort, original, interpreted domain.SearchCriteria, result *domain.SearchResult, startedAt time.Time) {
	if uc.events == nil {
		return
	}

	finishedAt := uc.now()
	event := domain.SearchPerformedEvent{
		EventID:          uuid.NewString(),
		TraceID:          contextkeys.TraceIDFromContext(ctx),
		OriginalQuery:    original.Query,
		InterpretedQuery: interpreted.Query,
		ResolvedArea:     interpreted.Area,
		HasAnyFilter:     original.HasAnyFilter(),
		Total:            result.Total,
		Page:             result.Page,
		PageSize:         result.PageSize,
		Duration:         finishedAt.Sub(startedAt),
		OccurredAt:       finishedAt.UTC(),
	}

	if err := uc.events.PublishSearchPerformed(ctx, event); err != nil {
		logger.Warn("Failed to publish search event", port.Fields{"error": err.Error(), "event_id": event.EventID})
	}
}
