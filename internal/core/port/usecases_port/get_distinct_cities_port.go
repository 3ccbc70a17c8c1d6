package usecases_port

import "context"

type GetDistinctCitiesUseCase interface {
	Execute(ctx context.Context) ([]string, error)
}
