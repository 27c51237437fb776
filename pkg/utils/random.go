package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RandomGenerator 提供線程安全的隨機數生成
type RandomGenerator struct {
	rng  *rand.Rand
	lock sync.Mutex
}

var (
	defaultGenerator *RandomGenerator
	once             sync.Once
)

// GetRandomGenerator 返回預設的隨機數生成器實例
func GetRandomGenerator() *RandomGenerator {
	once.Do(func() {
		defaultGenerator = NewRandomGenerator(0)
	})
	return defaultGenerator
}

// NewRandomGenerator 創建獨立的隨機數生成器，seed 為 0 時以當前時間為種子
func NewRandomGenerator(seed int64) *RandomGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn 生成 [0,n) 範圍內的隨機整數
func (r *RandomGenerator) Intn(n int) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rng.Intn(n)
}
