package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

// locationSplit разбирает "plumber in indiranagar" на ключевое слово и подсказку о районе.
var locationSplit = regexp.MustCompile(`(?i)^(.+?)\s+(?:in|near|at|around)\s+(.+)$`)

// AreaResolver - часть хранилища, нужная интерпретатору.
type AreaResolver interface {
	ResolveAreaName(ctx context.Context, hint string) (*string, error)
}

// QueryInterpreter вытаскивает из свободного текста подсказку о районе.
type QueryInterpreter struct {
	resolver AreaResolver
}

func NewQueryInterpreter(resolver AreaResolver) *QueryInterpreter {
	return &QueryInterpreter{resolver: resolver}
}

// Interpret возвращает новые критерии: если запрос вида "<keyword> in <hint>" и район явно
// не задан, query становится keyword, а area - найденным районом. Нераспознанная подсказка
// отбрасывается.
func (qi *QueryInterpreter) Interpret(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchCriteria, error) {
	if criteria.Query == nil || criteria.Area != nil {
		return criteria, nil
	}

	keyword, hint, ok := SplitLocationHint(*criteria.Query)
	if !ok {
		return criteria, nil
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "QueryInterpreter",
		"query":     *criteria.Query,
		"keyword":   keyword,
		"hint":      hint,
	})

	area, err := qi.resolver.ResolveAreaName(ctx, hint)
	if err != nil {
		return criteria, fmt.Errorf("failed to resolve area hint %q: %w", hint, err)
	}

	if area != nil {
		logger.Info("Natural query interpreted", port.Fields{"area": *area})
	} else {
		// Подсказка теряется и не превращается в фильтр по городу - возможны ложноотрицательные результаты
		logger.Warn("Area hint not found, dropping it from the query", nil)
	}

	return criteria.WithQuery(&keyword).WithArea(area), nil
}

// SplitLocationHint делит запрос по связке in/near/at/around. Связка должна быть окружена пробелами,
// ключевое слово берется минимальное, подсказка - до конца строки.
func SplitLocationHint(query string) (keyword, hint string, ok bool) {
	m := locationSplit.FindStringSubmatch(query)
	if m == nil {
		return "", "", false
	}
	keyword = strings.TrimSpace(m[1])
	hint = strings.TrimSpace(m[2])
	if keyword == "" || hint == "" {
		return "", "", false
	}
	return keyword, hint, true
}
