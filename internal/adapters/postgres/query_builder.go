package postgres

import (
	"fmt"
	"strings"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type queryBuilder struct {
	policy     domain.RankingPolicy
	conditions []string
	args       []interface{}
	argId      int
	// Выражение релевантности; без текстового запроса все специалисты равны
	scoreExpr string
}

func newQueryBuilder(policy domain.RankingPolicy) *queryBuilder {
	return &queryBuilder{
		policy:     policy,
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
		scoreExpr:  "0::float8",
	}
}

// addCondition подставляет имя поля и номер следующего аргумента в шаблон условия.
func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addArg регистрирует аргумент и возвращает его плейсхолдер, когда один и тот же
// параметр нужен в нескольких местах запроса.
func (qb *queryBuilder) addArg(arg interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return placeholder
}

// AddTextQuery - полнотекстовое совпадение или похожесть по одному из полей.
func (qb *queryBuilder) AddTextQuery(query string) {
	q := qb.addArg(query)
	tsQuery := fmt.Sprintf("plainto_tsquery('%s', %s)", qb.policy.TextSearchConfig, q)

	qb.conditions = append(qb.conditions, fmt.Sprintf(`(
		p.search_vector @@ %[1]s
		OR similarity(coalesce(p.headline, ''), %[2]s) > %[3]v
		OR similarity(coalesce(p.category, ''), %[2]s) > %[4]v
		OR similarity(coalesce(p.bio, ''), %[2]s) > %[5]v
		OR EXISTS (
			SELECT 1 FROM professional_subcategories ps
			JOIN subcategories s ON s.id = ps.subcategory_id
			WHERE ps.professional_id = p.id AND similarity(s.name, %[2]s) > %[6]v
		))`,
		tsQuery, q,
		qb.policy.HeadlineThreshold, qb.policy.CategoryThreshold,
		qb.policy.BioThreshold, qb.policy.SubcategoryThreshold,
	))

	qb.scoreExpr = fmt.Sprintf("(ts_rank(p.search_vector, %s) + %v * similarity(coalesce(p.headline, ''), %s))::float8",
		tsQuery, qb.policy.HeadlineSimilarityWeight, q)
}

func (qb *queryBuilder) AddCaseInsensitiveFilter(fieldName string, value *string) {
	if value != nil {
		qb.addCondition("lower(%s) = lower($%d)", fieldName, *value)
	}
}

func (qb *queryBuilder) AddBoolFilter(fieldName string, value *bool) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// build создает финальные части запроса
func (qb *queryBuilder) build() (string, string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.scoreExpr, qb.args
}

// applyCriteria разбирает критерии поиска и строит WHERE и выражение релевантности.
// Один и тот же результат используется и для выборки страницы, и для подсчета.
func applyCriteria(criteria domain.SearchCriteria, policy domain.RankingPolicy) (string, string, []interface{}) {
	qb := newQueryBuilder(policy)

	if criteria.Query != nil {
		qb.AddTextQuery(*criteria.Query)
	}

	// Город - нечеткое совпадение, чтобы "Bangalor" находил "Bangalore"
	if criteria.City != nil {
		qb.addCondition(fmt.Sprintf("similarity(coalesce(%%s, ''), $%%d) > %v", policy.CityThreshold), "p.city", *criteria.City)
	}

	qb.AddCaseInsensitiveFilter("p.state", criteria.State)
	qb.AddCaseInsensitiveFilter("p.country", criteria.Country)
	qb.AddBoolFilter("p.remote", criteria.Remote)
	qb.AddBoolFilter("p.is_available", criteria.Available)
	qb.AddCaseInsensitiveFilter("p.category", criteria.PrimaryCategory())

	if criteria.Area != nil {
		qb.addCondition(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM professional_service_areas sa WHERE sa.professional_id = %%s AND similarity(sa.area_name, $%%d) > %v)",
			policy.AreaThreshold,
		), "p.id", *criteria.Area)
	}

	if names := criteria.LowerSubcategoryNames(); len(names) > 0 {
		qb.addCondition(
			"EXISTS (SELECT 1 FROM professional_subcategories ps JOIN subcategories s ON s.id = ps.subcategory_id WHERE ps.professional_id = %s AND lower(s.name) = ANY($%d))",
			"p.id", names,
		)
	}

	return qb.build()
}
