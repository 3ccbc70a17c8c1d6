package domain

import "github.com/shopspring/decimal"

// RankingPolicy - пороги похожести и веса, по которым любое хранилище отбирает и сортирует
// специалистов. Значения similarity - в шкале pg_trgm, [0, 1].
type RankingPolicy struct {
	HeadlineThreshold    float64 // запрос ~ headline
	CategoryThreshold    float64 // запрос ~ основная категория
	BioThreshold         float64 // запрос ~ bio
	SubcategoryThreshold float64 // запрос ~ имя любой подкатегории
	CityThreshold        float64 // фильтр city ~ город
	AreaThreshold        float64 // фильтр area ~ любой район обслуживания
	AreaResolveThreshold float64 // подсказка из "X in Y" ~ известный район

	// Вес похожести headline, добавляемый к полнотекстовому рангу
	HeadlineSimilarityWeight float64

	// Словарь полнотекстового поиска Postgres
	TextSearchConfig string
}

// DefaultRankingPolicy - параметры, с которыми работает сервис.
var DefaultRankingPolicy = RankingPolicy{
	HeadlineThreshold:        0.3,
	CategoryThreshold:        0.3,
	BioThreshold:             0.25,
	SubcategoryThreshold:     0.3,
	CityThreshold:            0.4,
	AreaThreshold:            0.3,
	AreaResolveThreshold:     0.25,
	HeadlineSimilarityWeight: 0.5,
	TextSearchConfig:         "english",
}

// Score - итоговая релевантность: полнотекстовый ранг + доля похожести headline.
func (p RankingPolicy) Score(textRank, headlineSimilarity float64) float64 {
	return textRank + p.HeadlineSimilarityWeight*headlineSimilarity
}

// ScoredProfessional - специалист вместе с посчитанной релевантностью.
type ScoredProfessional struct {
	Professional Professional
	Score        float64
}

// Less задает порядок выдачи: релевантность по убыванию, затем рейтинг по убыванию
// (без рейтинга - в конце), затем id по возрастанию, чтобы порядок был стабильным.
func (p RankingPolicy) Less(a, b ScoredProfessional) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if c := compareRatingDesc(a.Professional.Rating, b.Professional.Rating); c != 0 {
		return c < 0
	}
	return a.Professional.ID < b.Professional.ID
}

func compareRatingDesc(a, b decimal.NullDecimal) int {
	switch {
	case a.Valid && !b.Valid:
		return -1
	case !a.Valid && b.Valid:
		return 1
	case !a.Valid && !b.Valid:
		return 0
	}
	return -a.Decimal.Cmp(b.Decimal)
}
