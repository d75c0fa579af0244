package randx

import (
	"math/rand/v2"
	"sync"
)

// LockedRand: math/rand/v2.Rand 를 goroutine-safe 하게 감싼 래퍼입니다.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func New(r *rand.Rand) *LockedRand {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LockedRand{r: r}
}

// NewSeeded: 고정 시드로 생성합니다. 테스트에서 결정적 난수열이 필요할 때 사용합니다.
func NewSeeded(seed1, seed2 uint64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
