package rest

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// parseSearchParams читает параметры поиска. Некорректные значения не приводят к 400:
// они превращаются в "фильтр не задан" или в значение по умолчанию.
func parseSearchParams(query url.Values) domain.RawSearchCriteria {
	return domain.RawSearchCriteria{
		Query:    query.Get("q"),
		City:     query.Get("city"),
		Location: query.Get("location"),
		State:    query.Get("state"),
		Country:  query.Get("country"),
		Area:     query.Get("area"),

		Remote:    parseBool(query, "remote"),
		Available: parseBool(query, "available"),

		Subcategories: parseStringSlice(query, "subcategories"),
		Skills:        parseStringSlice(query, "skills"),
		Categories:    parseStringSlice(query, "categories"),
		Category:      query.Get("category"),

		Page:     parseIntOrZero(query, "page"),
		PageSize: parseIntOrZero(query, "pageSize"),
	}
}

// parseBool - nil, если параметра нет или он не похож на bool
func parseBool(query url.Values, key string) *bool {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// parseIntOrZero - 0 для пустого и нечислового значения, дальше разбирается нормализатор
func parseIntOrZero(query url.Values, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(query.Get(key)))
	if err != nil {
		return 0
	}
	return value
}

// parseStringSlice понимает и повторяющийся параметр (?a=x&a=y), и список через запятую (?a=x,y)
func parseStringSlice(query url.Values, key string) []string {
	values, ok := query[key]
	if !ok {
		return nil
	}
	var result []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
