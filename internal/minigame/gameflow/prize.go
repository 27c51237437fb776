package gameflow

import (
	"fmt"
)

// PrizeTier 命中數門檻與獎金
type PrizeTier struct {
	Matches int    `json:"matches" yaml:"matches"`
	Prize   string `json:"prize" yaml:"prize"`
}

// PrizeTable 以命中數精確查找獎金，建構後不可變
type PrizeTable struct {
	tiers []PrizeTier
}

// DefaultPrizeTiers 預設獎金表
func DefaultPrizeTiers() []PrizeTier {
	return []PrizeTier{
		{Matches: 3, Prize: "50"},
		{Matches: 4, Prize: "100"},
		{Matches: 5, Prize: "200"},
		{Matches: 6, Prize: "500"},
	}
}

// NewPrizeTable 創建獎金表，門檻必須嚴格遞增且大於 0
func NewPrizeTable(tiers []PrizeTier) (*PrizeTable, error) {
	if len(tiers) == 0 {
		return nil, NewGameFlowError(ErrInvalidPrizeTable.Code, "獎金表不能為空")
	}
	for i, tier := range tiers {
		if tier.Matches <= 0 {
			return nil, NewGameFlowErrorWithFormat(ErrInvalidPrizeTable.Code, "門檻必須大於0: %d", tier.Matches)
		}
		if i > 0 && tier.Matches <= tiers[i-1].Matches {
			return nil, NewGameFlowErrorWithFormat(ErrInvalidPrizeTable.Code,
				"門檻 %d 未大於前一個門檻 %d", tier.Matches, tiers[i-1].Matches)
		}
	}

	copied := make([]PrizeTier, len(tiers))
	copy(copied, tiers)
	return &PrizeTable{tiers: copied}, nil
}

// DefaultPrizeTable 返回預設獎金表
func DefaultPrizeTable() *PrizeTable {
	table, err := NewPrizeTable(DefaultPrizeTiers())
	if err != nil {
		panic(fmt.Sprintf("gameflow: default prize table invalid: %v", err))
	}
	return table
}

// PrizeFor 返回與命中數完全相等的門檻獎金，不是「至少」語意
func (p *PrizeTable) PrizeFor(matchCount int) (string, bool) {
	idx := p.indexOf(matchCount)
	if idx < 0 {
		return "", false
	}
	return p.tiers[idx].Prize, true
}

// MinimumQualifyingMatches 最小得獎命中數
func (p *PrizeTable) MinimumQualifyingMatches() int {
	return p.tiers[0].Matches
}

// Tiers 返回獎金表副本
func (p *PrizeTable) Tiers() []PrizeTier {
	out := make([]PrizeTier, len(p.tiers))
	copy(out, p.tiers)
	return out
}

func (p *PrizeTable) indexOf(matchCount int) int {
	for i, tier := range p.tiers {
		if tier.Matches == matchCount {
			return i
		}
	}
	return -1
}
