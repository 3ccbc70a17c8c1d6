package domain

// FacetDimension - измерение, по которому считаются фасеты.
type FacetDimension string

const (
	FacetByCategory FacetDimension = "category"
	FacetByCity     FacetDimension = "city"
	FacetByArea     FacetDimension = "area"
)

// Limit - сколько значений фасета максимум отдаем клиенту.
func (d FacetDimension) Limit() int {
	switch d {
	case FacetByArea:
		return 30
	default:
		return 20
	}
}

// FacetDimensions - все измерения в порядке их вывода.
var FacetDimensions = []FacetDimension{FacetByCategory, FacetByCity, FacetByArea}

// FacetCount - количество различных специалистов для одного значения фасета.
type FacetCount struct {
	Label string
	Count int64
}

// Facets - фасеты по всем измерениям.
type Facets struct {
	Categories []FacetCount
	Cities     []FacetCount
	Areas      []FacetCount
}

// SearchResult - страница результатов поиска вместе с пагинацией и фасетами.
type SearchResult struct {
	Professionals []Professional
	Page          int
	PageSize      int
	Total         int64
	TotalPages    int

	// Что искали: исходный запрос (до разбора "X in Y") и город
	Query    *string
	Location *string

	CategoryFacets []FacetCount
	CityFacets     []FacetCount
	AreaFacets     []FacetCount
}

// AssembleSearchResult собирает итоговый ответ. original - критерии до интерпретации запроса,
// из них берутся эхо-поля query и location.
func AssembleSearchResult(original SearchCriteria, professionals []Professional, total int64, facets Facets) *SearchResult {
	if professionals == nil {
		professionals = []Professional{}
	}
	return &SearchResult{
		Professionals:  professionals,
		Page:           original.Page,
		PageSize:       original.PageSize,
		Total:          total,
		TotalPages:     TotalPages(total, original.PageSize),
		Query:          original.Query,
		Location:       original.City,
		CategoryFacets: nonNilFacets(facets.Categories),
		CityFacets:     nonNilFacets(facets.Cities),
		AreaFacets:     nonNilFacets(facets.Areas),
	}
}

// TotalPages = ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

func nonNilFacets(facets []FacetCount) []FacetCount {
	if facets == nil {
		return []FacetCount{}
	}
	return facets
}
