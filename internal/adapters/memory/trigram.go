package memory

import (
	"unicode"

	"golang.org/x/text/cases"
)

// Similarity повторяет similarity() из pg_trgm: строка режется на слова из букв и цифр,
// каждое слово дополняется двумя пробелами слева и одним справа, результат - доля общих
// триграмм от объединения множеств.
func Similarity(a, b string) float64 {
	return setSimilarity(trigrams(a), trigrams(b))
}

type trigramSet map[string]struct{}

func setSimilarity(ta, tb trigramSet) float64 {
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}

func trigrams(s string) trigramSet {
	set := make(trigramSet)
	for _, word := range words(s) {
		padded := make([]rune, 0, len(word)+3)
		padded = append(padded, ' ', ' ')
		padded = append(padded, word...)
		padded = append(padded, ' ')
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// words выделяет слова из букв и цифр в нижнем регистре.
func words(s string) [][]rune {
	folded := cases.Fold().String(s)

	var result [][]rune
	var current []rune
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, r)
			continue
		}
		if len(current) > 0 {
			result = append(result, current)
			current = nil
		}
	}
	if len(current) > 0 {
		result = append(result, current)
	}
	return result
}

// equalFold сравнивает строки без учета регистра.
func equalFold(a, b string) bool {
	caser := cases.Fold()
	return caser.String(a) == caser.String(b)
}
