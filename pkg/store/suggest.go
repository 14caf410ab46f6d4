package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/richard-senior/hoops/pkg/ingest"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// Suggest returns stored team names close to name, best match first. A name is
// close when its key is within two edits of the lookup key, or when the key is a
// prefix of it ("gonzaga" for "Gonzaga Bulldogs").
func (s *Store) Suggest(ctx context.Context, name string) ([]string, error) {
	key := ingest.NormalizeName(name)
	if key == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, "SELECT name_key, name FROM team_profiles")
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	defer rows.Close()

	type candidate struct {
		name     string
		distance int
	}
	var found []candidate
	for rows.Next() {
		var k, n string
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("suggest: %w", err)
		}
		d := levenshtein(key, k)
		if d > 2 && !hasWordPrefix(k, key) {
			continue
		}
		found = append(found, candidate{name: n, distance: d})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})
	out := make([]string, 0, maxSuggestions)
	for _, c := range found {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out, nil
}

func hasWordPrefix(s, prefix string) bool {
	return len(s) > len(prefix) && s[:len(prefix)] == prefix && s[len(prefix)] == ' '
}

// levenshtein is the edit distance between a and b, counted in runes
func levenshtein(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	cur := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		cur[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(s2)]
}
