package catalog

import "sort"

// DefaultTopN is the size of the top ranking when none is configured.
const DefaultTopN = 100

// TopN ranks movies in two stable passes: by votes descending, keep the
// first n, then by rating descending. Ties keep the order of the previous
// pass, so equal votes stay in catalog order and equal ratings stay in
// vote order. The input slice is not modified.
func TopN(movies []*Movie, n int) ([]*Movie, error) {
	if n <= 0 || len(movies) == 0 {
		return []*Movie{}, nil
	}

	type byVotes struct {
		movie *Movie
		votes int
	}
	voted := make([]byVotes, len(movies))
	for i, m := range movies {
		v, err := m.ParsedVotes()
		if err != nil {
			return nil, err
		}
		voted[i] = byVotes{movie: m, votes: v}
	}
	sort.SliceStable(voted, func(i, j int) bool {
		return voted[i].votes > voted[j].votes
	})
	if n < len(voted) {
		voted = voted[:n]
	}

	type byRating struct {
		movie  *Movie
		rating float64
	}
	rated := make([]byRating, len(voted))
	for i, v := range voted {
		r, err := v.movie.ParsedRating()
		if err != nil {
			return nil, err
		}
		rated[i] = byRating{movie: v.movie, rating: r}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].rating > rated[j].rating
	})

	top := make([]*Movie, len(rated))
	for i, r := range rated {
		top[i] = r.movie
	}
	return top, nil
}
