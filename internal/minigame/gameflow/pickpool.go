package gameflow

import (
	"fmt"
)

// PickPool 球號 1..N 的抽取範圍，記錄本範圍內已被取走的號碼
type PickPool struct {
	name    string
	size    int
	sampler RandomSampler
	taken   map[int]struct{} // 以索引 (號碼-1) 記錄
}

// NewPickPool 創建號碼池
func NewPickPool(name string, size int, sampler RandomSampler) *PickPool {
	return &PickPool{
		name:    name,
		size:    size,
		sampler: sampler,
		taken:   make(map[int]struct{}, size),
	}
}

// DrawUnique 抽出一個本範圍內未被取走的號碼並標記
// 號碼池耗盡屬於程式錯誤，直接 panic
func (p *PickPool) DrawUnique() int {
	number := p.Sample()
	p.taken[number-1] = struct{}{}
	return number
}

// Sample 抽出一個未被取走的號碼但不標記，用於閃動預覽
func (p *PickPool) Sample() int {
	if len(p.taken) >= p.size {
		panic(fmt.Sprintf("gameflow: pick pool %q exhausted (%d numbers)", p.name, p.size))
	}
	return p.sampler.SampleExcluding(p.size, p.taken) + 1
}

// Mark 標記外部選中的號碼（玩家手動點選）
func (p *PickPool) Mark(number int) error {
	if err := p.Validate(number); err != nil {
		return err
	}
	if p.IsTaken(number) {
		return NewGameFlowErrorWithFormat(ErrDuplicateBall.Code, "球號 %d 已被選取", number)
	}
	p.taken[number-1] = struct{}{}
	return nil
}

// Validate 檢查球號是否在 [1,N]
func (p *PickPool) Validate(number int) error {
	if number < 1 || number > p.size {
		return NewGameFlowErrorWithFormat(ErrInvalidBall.Code, "無效的球號: %d，球號必須在 1-%d 之間", number, p.size)
	}
	return nil
}

// IsTaken 號碼是否已被取走
func (p *PickPool) IsTaken(number int) bool {
	_, ok := p.taken[number-1]
	return ok
}
