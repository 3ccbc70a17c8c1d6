package memory

import "github.com/kljensen/snowball/english"

// Веса полей как у setweight() в search_vector: headline - A, category - B, bio - C.
const (
	weightA = 1.0
	weightB = 0.4
	weightC = 0.2
)

// textDocument - упрощенный аналог tsvector: лексема -> максимальный вес поля, где она встречается.
type textDocument map[string]float64

func newTextDocument(headline, category, bio string) textDocument {
	doc := make(textDocument)
	doc.add(bio, weightC)
	doc.add(category, weightB)
	doc.add(headline, weightA)
	return doc
}

func (d textDocument) add(text string, weight float64) {
	for _, lexeme := range lexemes(text) {
		if weight > d[lexeme] {
			d[lexeme] = weight
		}
	}
}

// rank ведет себя как plainto_tsquery: совпадение есть, только если в документе есть все
// лексемы запроса. Ранг - средний вес найденных лексем.
func (d textDocument) rank(query []string) (float64, bool) {
	if len(query) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, lexeme := range query {
		weight, ok := d[lexeme]
		if !ok {
			return 0, false
		}
		sum += weight
	}
	return sum / float64(len(query)), true
}

// lexemes повторяет to_tsvector('english', ...): слова без стоп-слов, приведенные
// стеммером Snowball (porter2), которым пользуется словарь english_stem.
func lexemes(text string) []string {
	var result []string
	for _, w := range words(text) {
		word := string(w)
		if english.IsStopWord(word) {
			continue
		}
		result = append(result, english.Stem(word, false))
	}
	return result
}
