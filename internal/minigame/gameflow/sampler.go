package gameflow

import (
	"fmt"

	"g38_lotto_minigame/pkg/utils"
)

// RandomSampler 從 [0,max) 中選出一個不在 excluded 內的索引
type RandomSampler interface {
	SampleExcluding(max int, excluded map[int]struct{}) int
}

// SamplerFunc 讓普通函數實現 RandomSampler
type SamplerFunc func(max int, excluded map[int]struct{}) int

// SampleExcluding 實現 RandomSampler
func (f SamplerFunc) SampleExcluding(max int, excluded map[int]struct{}) int {
	return f(max, excluded)
}

// intSource 隨機整數來源，utils.RandomGenerator 即滿足此接口
type intSource interface {
	Intn(n int) int
}

// RejectionSampler 均勻抽取後拒絕已排除的值並重抽
type RejectionSampler struct {
	source intSource
}

// NewRejectionSampler 創建拒絕取樣器，source 為 nil 時使用全局隨機數生成器
func NewRejectionSampler(source intSource) *RejectionSampler {
	if source == nil {
		source = utils.GetRandomGenerator()
	}
	return &RejectionSampler{source: source}
}

// SampleExcluding 返回 [0,max) 中不在 excluded 內的均勻隨機值
// 呼叫方必須保證 len(excluded) < max，否則視為程式錯誤直接 panic
func (s *RejectionSampler) SampleExcluding(max int, excluded map[int]struct{}) int {
	if max <= 0 {
		panic(fmt.Sprintf("gameflow: sample range must be positive, got %d", max))
	}
	if countWithin(max, excluded) >= max {
		panic(fmt.Sprintf("gameflow: every value in [0,%d) is excluded", max))
	}

	for {
		n := s.source.Intn(max)
		if _, skip := excluded[n]; !skip {
			return n
		}
	}
}

// countWithin 計算 excluded 中落在 [0,max) 的數量
func countWithin(max int, excluded map[int]struct{}) int {
	count := 0
	for n := range excluded {
		if n >= 0 && n < max {
			count++
		}
	}
	return count
}
