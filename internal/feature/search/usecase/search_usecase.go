// Package usecase implements securities search: repository prefilter
// followed by in-process relevance ranking.
package usecase

import (
	"context"
	"errors"
	"strings"

	"invest_backend/internal/feature/search/domain/entity"
)

// ErrInvalidLimit is returned when the caller asks for a non-positive or
// excessive result count.
var ErrInvalidLimit = errors.New("limit must be between 1 and 100")

// DefaultLimit caps result size when the caller does not specify one.
const DefaultLimit = 20

const maxLimit = 100

// SecurityRepository narrows the securities master to rows matching the
// query text, without ordering guarantees.
type SecurityRepository interface {
	Search(ctx context.Context, query, market string, limit int) ([]entity.Security, error)
}

// SearchUsecase serves search-as-you-type lookups over the securities master.
type SearchUsecase struct {
	securities SecurityRepository
}

func NewSearchUsecase(securities SecurityRepository) *SearchUsecase {
	return &SearchUsecase{securities: securities}
}

// Search returns up to limit candidates ordered by relevance to the query.
// An empty query returns an empty result without touching the repository.
func (u *SearchUsecase) Search(ctx context.Context, query, market string, limit int) ([]entity.SearchCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.SearchCandidate{}, nil
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 || limit > maxLimit {
		return nil, ErrInvalidLimit
	}

	// Over-fetch so ranking can promote a better match the raw LIKE
	// ordering would have cut off.
	securities, err := u.securities.Search(ctx, query, market, limit*3)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.SearchCandidate, len(securities))
	for i, s := range securities {
		candidates[i] = entity.SearchCandidate{Security: s}
	}
	ranked := Rank(candidates, query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
