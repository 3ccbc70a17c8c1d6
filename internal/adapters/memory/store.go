package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

// Store - хранилище специалистов в памяти. Реализует те же порты, что и Postgres-адаптер,
// и ранжирует по той же domain.RankingPolicy.
type Store struct {
	mu            sync.RWMutex
	professionals []domain.Professional
	index         []professionalIndex
	subcategories []domain.Subcategory
	policy        domain.RankingPolicy
}

// professionalIndex - заранее посчитанные триграммы и лексемы одного специалиста.
// Store не меняется после создания, индекс строится один раз в NewStore.
type professionalIndex struct {
	document      textDocument
	headline      trigramSet
	category      trigramSet
	bio           trigramSet
	city          trigramSet
	subcategories []trigramSet
	areas         []trigramSet
}

func newProfessionalIndex(p domain.Professional) professionalIndex {
	return professionalIndex{
		document:      newTextDocument(p.Headline, p.Category, p.Bio),
		headline:      trigrams(p.Headline),
		category:      trigrams(p.Category),
		bio:           trigrams(p.Bio),
		city:          trigrams(p.City),
		subcategories: trigramSets(p.SubcategoryNames()),
		areas:         trigramSets(p.ServiceAreas),
	}
}

func trigramSets(values []string) []trigramSet {
	sets := make([]trigramSet, len(values))
	for i, v := range values {
		sets[i] = trigrams(v)
	}
	return sets
}

func NewStore(professionals []domain.Professional, subcategories []domain.Subcategory) *Store {
	s := &Store{
		professionals: append([]domain.Professional(nil), professionals...),
		subcategories: append([]domain.Subcategory(nil), subcategories...),
		policy:        domain.DefaultRankingPolicy,
	}
	s.index = make([]professionalIndex, len(s.professionals))
	for i, p := range s.professionals {
		s.index[i] = newProfessionalIndex(p)
	}
	return s
}

func (s *Store) SearchMatching(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Professional, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := s.matching(criteria)
	sort.SliceStable(scored, func(i, j int) bool {
		return s.policy.Less(scored[i], scored[j])
	})

	offset := criteria.Offset()
	if offset >= len(scored) {
		return []domain.Professional{}, nil
	}
	end := offset + criteria.PageSize
	if end > len(scored) {
		end = len(scored)
	}

	page := make([]domain.Professional, 0, end-offset)
	for _, sp := range scored[offset:end] {
		page = append(page, sp.Professional.SearchProjection())
	}

	contextkeys.LoggerFromContext(ctx).Debug("In-memory search finished", port.Fields{
		"component": "MemoryStore",
		"matched":   len(scored),
		"returned":  len(page),
	})
	return page, nil
}

func (s *Store) CountMatching(ctx context.Context, criteria domain.SearchCriteria) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(s.matching(criteria))), nil
}

func (s *Store) ResolveAreaName(ctx context.Context, hint string) (*string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best string
	bestScore := -1.0
	for _, area := range s.knownAreas() {
		score := Similarity(area, hint)
		if score < s.policy.AreaResolveThreshold {
			continue
		}
		if score > bestScore || (score == bestScore && area < best) {
			best, bestScore = area, score
		}
	}
	if bestScore < 0 {
		return nil, nil
	}
	return &best, nil
}

func (s *Store) FacetBy(ctx context.Context, dimension domain.FacetDimension, limit int) ([]domain.FacetCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// label -> множество id, чтобы не считать специалиста дважды
	groups := make(map[string]map[int64]struct{})
	add := func(label string, id int64) {
		if strings.TrimSpace(label) == "" {
			return
		}
		if groups[label] == nil {
			groups[label] = make(map[int64]struct{})
		}
		groups[label][id] = struct{}{}
	}

	for _, p := range s.professionals {
		switch dimension {
		case domain.FacetByCategory:
			add(p.Category, p.ID)
		case domain.FacetByCity:
			add(p.City, p.ID)
		case domain.FacetByArea:
			for _, area := range p.ServiceAreas {
				add(area, p.ID)
			}
		}
	}

	facets := make([]domain.FacetCount, 0, len(groups))
	for label, ids := range groups {
		facets = append(facets, domain.FacetCount{Label: label, Count: int64(len(ids))})
	}
	sort.Slice(facets, func(i, j int) bool {
		if facets[i].Count != facets[j].Count {
			return facets[i].Count > facets[j].Count
		}
		return facets[i].Label < facets[j].Label
	})
	if limit > 0 && len(facets) > limit {
		facets = facets[:limit]
	}
	return facets, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	return s.find(ctx, func(p domain.Professional) bool { return p.ID == id })
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (*domain.Professional, error) {
	return s.find(ctx, func(p domain.Professional) bool { return p.Slug == slug })
}

func (s *Store) DistinctCities(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	cities := []string{}
	for _, p := range s.professionals {
		if strings.TrimSpace(p.City) == "" {
			continue
		}
		if _, ok := seen[p.City]; ok {
			continue
		}
		seen[p.City] = struct{}{}
		cities = append(cities, p.City)
	}
	sort.Strings(cities)
	return cities, nil
}

func (s *Store) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]domain.Subcategory{}, s.subcategories...)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := []string{}
	for _, sub := range s.subcategories {
		if _, ok := seen[sub.Category]; ok {
			continue
		}
		seen[sub.Category] = struct{}{}
		categories = append(categories, sub.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) ListSubcategoriesByCategory(ctx context.Context, category string) ([]domain.Subcategory, error) {
	all, err := s.ListSubcategories(ctx)
	if err != nil {
		return nil, err
	}
	items := []domain.Subcategory{}
	for _, sub := range all {
		if sub.Category == category {
			items = append(items, sub)
		}
	}
	return items, nil
}

func (s *Store) find(ctx context.Context, match func(domain.Professional) bool) (*domain.Professional, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.professionals {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrProfessionalNotFound
}

// matching применяет все фильтры (через AND) и считает релевантность.
func (s *Store) matching(criteria domain.SearchCriteria) []domain.ScoredProfessional {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := newCompiledQuery(criteria)

	result := make([]domain.ScoredProfessional, 0)
	for i, p := range s.professionals {
		score, ok := s.match(p, s.index[i], criteria, q)
		if !ok {
			continue
		}
		result = append(result, domain.ScoredProfessional{Professional: p, Score: score})
	}
	return result
}

// compiledQuery - сторона запроса, посчитанная один раз на вызов.
type compiledQuery struct {
	lexemes []string
	text    trigramSet
	city    trigramSet
	area    trigramSet
}

func newCompiledQuery(c domain.SearchCriteria) compiledQuery {
	var q compiledQuery
	if c.Query != nil {
		q.lexemes = lexemes(*c.Query)
		q.text = trigrams(*c.Query)
	}
	if c.City != nil {
		q.city = trigrams(*c.City)
	}
	if c.Area != nil {
		q.area = trigrams(*c.Area)
	}
	return q
}

func (s *Store) match(p domain.Professional, idx professionalIndex, c domain.SearchCriteria, q compiledQuery) (float64, bool) {
	score := 0.0

	if c.Query != nil {
		headlineSimilarity := setSimilarity(q.text, idx.headline)
		textRank, textMatched := idx.document.rank(q.lexemes)

		matched := textMatched ||
			headlineSimilarity > s.policy.HeadlineThreshold ||
			setSimilarity(q.text, idx.category) > s.policy.CategoryThreshold ||
			setSimilarity(q.text, idx.bio) > s.policy.BioThreshold ||
			anySimilarSet(q.text, idx.subcategories, s.policy.SubcategoryThreshold)
		if !matched {
			return 0, false
		}
		score = s.policy.Score(textRank, headlineSimilarity)
	}

	if c.City != nil && setSimilarity(idx.city, q.city) <= s.policy.CityThreshold {
		return 0, false
	}
	if c.State != nil && !equalFold(p.State, *c.State) {
		return 0, false
	}
	if c.Country != nil && !equalFold(p.Country, *c.Country) {
		return 0, false
	}
	if c.Remote != nil && p.Remote != *c.Remote {
		return 0, false
	}
	if c.Available != nil && p.IsAvailable != *c.Available {
		return 0, false
	}
	if category := c.PrimaryCategory(); category != nil && !equalFold(p.Category, *category) {
		return 0, false
	}
	if c.Area != nil && !anySimilarSet(q.area, idx.areas, s.policy.AreaThreshold) {
		return 0, false
	}
	if len(c.SubcategoryNames) > 0 && !hasAnySubcategory(p, c.SubcategoryNames) {
		return 0, false
	}

	return score, true
}

// knownAreas - все различные названия районов обслуживания. Вызывать под RLock.
func (s *Store) knownAreas() []string {
	seen := make(map[string]struct{})
	var areas []string
	for _, p := range s.professionals {
		for _, area := range p.ServiceAreas {
			if _, ok := seen[area]; ok {
				continue
			}
			seen[area] = struct{}{}
			areas = append(areas, area)
		}
	}
	return areas
}

func anySimilarSet(value trigramSet, candidates []trigramSet, threshold float64) bool {
	for _, candidate := range candidates {
		if setSimilarity(value, candidate) > threshold {
			return true
		}
	}
	return false
}

func hasAnySubcategory(p domain.Professional, wanted []string) bool {
	for _, sub := range p.Subcategories {
		for _, name := range wanted {
			if equalFold(sub.Name, name) {
				return true
			}
		}
	}
	return false
}
