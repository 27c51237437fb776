package gameflow

// SelectionSet 有容量上限的有序選號集合
// 插入順序即選號順序，僅影響顯示，不影響命中計算
type SelectionSet struct {
	capacity    int
	finalized   []int
	preview     int
	hasPreview  bool
	onFinalized func(number int)
}

// NewSelectionSet 創建選號集合，onFinalized 在每次確定號碼後被呼叫，可為 nil
func NewSelectionSet(capacity int, onFinalized func(number int)) *SelectionSet {
	return &SelectionSet{
		capacity:    capacity,
		finalized:   make([]int, 0, capacity),
		onFinalized: onFinalized,
	}
}

// Add 加入號碼。final 為 false 時只作為閃動預覽，不影響完成狀態
// 集合已滿或號碼重複時拒絕並返回 false
func (s *SelectionSet) Add(number int, final bool) bool {
	if s.IsComplete() {
		return false
	}

	if !final {
		s.preview = number
		s.hasPreview = true
		return true
	}

	if s.Contains(number) {
		return false
	}

	s.finalized = append(s.finalized, number)
	s.hasPreview = false
	s.preview = 0

	if s.onFinalized != nil {
		s.onFinalized(number)
	}
	return true
}

// Contains 判斷號碼是否已確定在集合中
func (s *SelectionSet) Contains(number int) bool {
	for _, n := range s.finalized {
		if n == number {
			return true
		}
	}
	return false
}

// IsComplete 已確定號碼數等於容量
func (s *SelectionSet) IsComplete() bool {
	return len(s.finalized) == s.capacity
}

// Len 已確定號碼數，也是下一個槽位的索引
func (s *SelectionSet) Len() int {
	return len(s.finalized)
}

// Numbers 返回已確定號碼的副本
func (s *SelectionSet) Numbers() []int {
	out := make([]int, len(s.finalized))
	copy(out, s.finalized)
	return out
}

// Preview 當前閃動預覽號碼
func (s *SelectionSet) Preview() (int, bool) {
	return s.preview, s.hasPreview
}

// IndexOf 號碼所在槽位，不存在時為 -1
func (s *SelectionSet) IndexOf(number int) int {
	for i, n := range s.finalized {
		if n == number {
			return i
		}
	}
	return -1
}
