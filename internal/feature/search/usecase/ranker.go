package usecase

import (
	"sort"
	"strings"

	"invest_backend/internal/feature/search/domain/entity"
)

// Match-quality tiers, best first. Lower score sorts earlier.
const (
	scoreExactCode = iota
	scoreExactName
	scoreNamePrefix
	scoreCodePrefix
	scoreNameContains
	scoreNoMatch
)

// Rank orders candidates by relevance to the query. It is a pure function:
// no I/O, and equal-relevance candidates keep their input order so repeated
// queries over unchanged input produce identical results.
func Rank(candidates []entity.SearchCandidate, query string) []entity.SearchCandidate {
	query = strings.TrimSpace(query)
	lower := strings.ToLower(query)

	ranked := make([]entity.SearchCandidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		ranked[i].Score = score(ranked[i].Security, query, lower)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		// Among equally scored matches the shorter name is the more
		// specific instrument.
		return len(ranked[i].Name) < len(ranked[j].Name)
	})
	return ranked
}

func score(s entity.Security, query, lower string) int {
	code := strings.ToLower(s.Code)
	name := strings.ToLower(s.Name)
	switch {
	case code == lower:
		return scoreExactCode
	case name == lower:
		return scoreExactName
	case strings.HasPrefix(name, lower):
		return scoreNamePrefix
	case strings.HasPrefix(code, lower):
		return scoreCodePrefix
	case strings.Contains(name, lower):
		return scoreNameContains
	default:
		return scoreNoMatch
	}
}
