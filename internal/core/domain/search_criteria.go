package domain

import (
	"strings"
)

const DefaultPageSize = 10

// RawSearchCriteria - фильтры в том виде, в каком их прислал клиент (с legacy-алиасами и пустыми строками).
type RawSearchCriteria struct {
	Query    string
	City     string
	Location string // алиас для City
	State    string
	Country  string
	Area     string

	Remote    *bool
	Available *bool

	Subcategories []string
	Skills        []string // устаревший алиас для Subcategories
	Categories    []string
	Category      string // одиночный алиас для Categories

	Page     int
	PageSize int
}

// SearchCriteria - каноничные фильтры поиска. После NormalizeCriteria не меняется,
// интерпретатор запроса возвращает новую копию.
type SearchCriteria struct {
	Query   *string
	City    *string
	State   *string
	Country *string
	Area    *string

	Remote    *bool
	Available *bool

	SubcategoryNames []string
	CategoryNames    []string

	Page     int
	PageSize int
}

// NormalizeCriteria приводит сырые фильтры к каноничному виду. Ошибок не бывает:
// все некорректное превращается в "нет фильтра" или в значение по умолчанию.
func NormalizeCriteria(raw RawSearchCriteria) SearchCriteria {
	city := blankToNil(raw.City)
	if city == nil {
		city = blankToNil(raw.Location)
	}

	categories := compactStrings(raw.Categories)
	if len(categories) == 0 {
		if category := blankToNil(raw.Category); category != nil {
			categories = []string{*category}
		}
	}

	subcategories := compactStrings(raw.Subcategories)
	if len(subcategories) == 0 {
		subcategories = compactStrings(raw.Skills)
	}

	page := raw.Page
	if page < 0 {
		page = 0
	}
	pageSize := raw.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return SearchCriteria{
		Query:            blankToNil(raw.Query),
		City:             city,
		State:            blankToNil(raw.State),
		Country:          blankToNil(raw.Country),
		Area:             blankToNil(raw.Area),
		Remote:           raw.Remote,
		Available:        raw.Available,
		SubcategoryNames: dedupFold(subcategories),
		CategoryNames:    categories,
		Page:             page,
		PageSize:         pageSize,
	}
}

// HasAnyFilter сообщает, задан ли хоть один фильтр (пагинация не считается).
func (c SearchCriteria) HasAnyFilter() bool {
	return c.Query != nil || c.City != nil || c.State != nil || c.Country != nil ||
		c.Remote != nil || c.Available != nil || c.Area != nil ||
		len(c.SubcategoryNames) > 0 || len(c.CategoryNames) > 0
}

// PrimaryCategory - категория, по которой реально фильтрует поиск (первая из списка).
func (c SearchCriteria) PrimaryCategory() *string {
	if len(c.CategoryNames) == 0 {
		return nil
	}
	category := c.CategoryNames[0]
	return &category
}

// LowerSubcategoryNames - набор подкатегорий в нижнем регистре для сравнения без учета регистра.
func (c SearchCriteria) LowerSubcategoryNames() []string {
	if len(c.SubcategoryNames) == 0 {
		return nil
	}
	names := make([]string, len(c.SubcategoryNames))
	for i, name := range c.SubcategoryNames {
		names[i] = strings.ToLower(name)
	}
	return names
}

func (c SearchCriteria) Offset() int {
	return c.Page * c.PageSize
}

// WithQuery возвращает копию критериев с другим текстом запроса.
func (c SearchCriteria) WithQuery(query *string) SearchCriteria {
	c.Query = query
	return c
}

// WithArea возвращает копию критериев с другим районом.
func (c SearchCriteria) WithArea(area *string) SearchCriteria {
	c.Area = area
	return c
}

func blankToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func compactStrings(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// dedupFold убирает дубликаты без учета регистра, сохраняя порядок первого вхождения.
func dedupFold(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}
	return result
}
