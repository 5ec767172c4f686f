// matcher.go - Fuzzy matching of user crop names to known commodities
package market

import (
	"math"
	"regexp"
	"strings"
)

// MatchResult represents the result of commodity matching
type MatchResult struct {
	Found      bool    `json:"found"`
	Commodity  string  `json:"commodity"`
	Similarity float64 `json:"similarity"`
	Method     string  `json:"method"` // exact, alias, fuzzy, not_found
}

// Common local names and spellings mapped to canonical commodity names.
var cropAliases = map[string]string{
	"corn":         "maize",
	"mealies":      "maize",
	"mahindi":      "maize",
	"irish potato": "potato",
	"tomatoe":      "tomato",
	"nyanya":       "tomato",
	"maharagwe":    "bean",
	"groundnut":    "peanut",
	"paddy":        "rice",
	"mpunga":       "rice",
}

// MatchCommodity finds the best matching commodity for a user-entered crop
// name. Alias lookup runs before fuzzy matching so local names resolve
// deterministically.
func MatchCommodity(query string, commodities []string) MatchResult {
	normalizedQuery := normalizeCropName(query)
	if normalizedQuery == "" {
		return MatchResult{Found: false, Method: "not_found"}
	}

	if canonical, ok := cropAliases[normalizedQuery]; ok {
		for _, c := range commodities {
			if normalizeCropName(c) == canonical {
				return MatchResult{
					Found:      true,
					Commodity:  c,
					Similarity: 100.0,
					Method:     "alias",
				}
			}
		}
	}

	bestMatch := MatchResult{Found: false, Similarity: 0.0, Method: "not_found"}

	for _, c := range commodities {
		normalizedMaster := normalizeCropName(c)
		if normalizedMaster == "" {
			continue
		}

		similarity := calculateNameSimilarity(normalizedQuery, normalizedMaster)

		if similarity > bestMatch.Similarity {
			bestMatch = MatchResult{
				Found:      true,
				Commodity:  c, // Use original name from the price list
				Similarity: similarity,
				Method:     "fuzzy",
			}
		}

		if similarity >= 99.0 {
			bestMatch.Method = "exact"
			break
		}
	}

	// Only return if similarity >= 70%
	if bestMatch.Similarity < 70.0 {
		return MatchResult{Found: false, Method: "not_found"}
	}

	return bestMatch
}

// normalizeCropName lowercases and strips qualifiers that vary between
// user input and the price list.
func normalizeCropName(name string) string {
	name = strings.ToLower(name)

	qualifiers := []string{
		"fresh", "dried", "dry", "green", "white", "yellow", "red",
		"grade a", "grade b", "local", "hybrid",
	}
	for _, q := range qualifiers {
		name = strings.Replace(name, q, "", -1)
	}

	// Remove extra spaces and special characters
	name = regexp.MustCompile(`[^\p{L}\p{N}]+`).ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Collapse trivial plurals so "avocados" matches "avocado"
	if strings.HasSuffix(name, "es") && len(name) > 4 {
		name = strings.TrimSuffix(name, "es")
	} else if strings.HasSuffix(name, "s") && len(name) > 3 {
		name = strings.TrimSuffix(name, "s")
	}

	return name
}

// calculateNameSimilarity calculates similarity between two normalized names
func calculateNameSimilarity(name1, name2 string) float64 {
	if name1 == name2 {
		return 100.0
	}

	distance := levenshteinDistance(name1, name2)
	maxLen := float64(maxInt(len(name1), len(name2)))

	if maxLen == 0 {
		return 0.0
	}

	similarity := (1.0 - (float64(distance) / maxLen)) * 100.0
	return math.Max(0, similarity)
}

// levenshteinDistance calculates edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	dist := make([][]int, rows)
	for i := range dist {
		dist[i] = make([]int, cols)
		dist[i][0] = i
	}
	for j := 0; j < cols; j++ {
		dist[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			dist[i][j] = minInt(
				dist[i-1][j]+1,      // deletion
				dist[i][j-1]+1,      // insertion
				dist[i-1][j-1]+cost, // substitution
			)
		}
	}

	return dist[rows-1][cols-1]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// maxInt returns the maximum of two integers
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
