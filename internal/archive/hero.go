package archive

import (
	"math/rand"
	"sync"
	"time"

	"broadsheet/internal/manifest"
)

const (
	heroMin = 3
	heroMax = 6
)

var (
	randOnce sync.Once
	procRand *rand.Rand
	randMu   sync.Mutex
)

func defaultRand(n int) int {
	randOnce.Do(func() {
		procRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	randMu.Lock()
	defer randMu.Unlock()
	return procRand.Intn(n)
}

// Hero picks the showcase subset for a replace-mode render: 3 to 6
// pseudo-random issues drawn from the year/month-focused slice of the
// filtered list, or from the whole filtered list when that slice is empty.
// Never more picks than the pool holds; no pick repeats.
func (s *Store) Hero() []manifest.Issue {
	pool := s.heroPool()
	if len(pool) == 0 {
		return nil
	}

	want := heroMin
	if len(pool) > heroMin {
		span := heroMax - heroMin + 1
		want = heroMin + s.randFn(span)
	}
	if want > len(pool) {
		want = len(pool)
	}

	// Partial Fisher-Yates over an index slice keeps picks distinct without
	// rejection loops.
	indices := make([]int, len(pool))
	for i := range indices {
		indices[i] = i
	}
	picked := make([]manifest.Issue, 0, want)
	for i := 0; i < want; i++ {
		j := i + s.randFn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		picked = append(picked, pool[indices[i]])
	}
	return picked
}

// heroPool prefers the narrower year/month focus and falls back to the whole
// filtered set when the focus matches nothing.
func (s *Store) heroPool() []manifest.Issue {
	if s.sel.Year == "" {
		return s.filtered
	}
	focused := make([]manifest.Issue, 0, len(s.filtered))
	for _, issue := range s.filtered {
		if matchesYearMonth(issue, s.sel.Year, s.sel.Month) {
			focused = append(focused, issue)
		}
	}
	if len(focused) == 0 {
		return s.filtered
	}
	return focused
}
