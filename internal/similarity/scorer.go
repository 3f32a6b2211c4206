package similarity

import (
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/sen-dwh/aid-etl/internal/normalize"
)

// Scorer computes normalized edit-distance ratios between comparison
// keys. Scores are memoized; the cache is an optimization only and can
// be discarded at any time.
type Scorer struct {
	mu    sync.RWMutex
	cache map[string]float64
}

// NewScorer creates a scorer with an empty cache.
func NewScorer() *Scorer {
	return &Scorer{cache: make(map[string]float64)}
}

// Ratio returns a similarity in [0,1] between the comparison keys of a
// and b. 1.0 means the keys are identical; the measure is symmetric.
func (s *Scorer) Ratio(a, b string) float64 {
	ka := normalize.Key(a)
	kb := normalize.Key(b)
	if ka == kb {
		return 1.0
	}

	// Symmetric cache key: order the pair.
	ck := ka + "\x00" + kb
	if kb < ka {
		ck = kb + "\x00" + ka
	}

	s.mu.RLock()
	score, ok := s.cache[ck]
	s.mu.RUnlock()
	if ok {
		return score
	}

	dist := levenshtein.ComputeDistance(ka, kb)
	longest := len([]rune(ka))
	if n := len([]rune(kb)); n > longest {
		longest = n
	}
	if longest == 0 {
		score = 1.0
	} else {
		score = 1.0 - float64(dist)/float64(longest)
	}
	if score < 0 {
		score = 0
	}

	s.mu.Lock()
	s.cache[ck] = score
	s.mu.Unlock()

	return score
}

// BestMatch picks the candidate most similar to text. Exact key
// equality short-circuits without scoring. Otherwise every candidate
// is scored and the best is returned only when it reaches threshold;
// ties keep the first candidate in slice order, so callers must pass
// candidates in a deterministic order.
func (s *Scorer) BestMatch(text string, candidates []string, threshold float64) (string, bool) {
	key := normalize.Key(text)

	for _, c := range candidates {
		if normalize.Key(c) == key {
			return c, true
		}
	}

	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		if score := s.Ratio(text, c); score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore >= threshold && best != "" {
		return best, true
	}
	return "", false
}
