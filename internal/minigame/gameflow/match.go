package gameflow

// CountMatches 計算同時出現在 chosen 與 drawn 的號碼數，與兩者順序無關
func CountMatches(chosen, drawn []int) int {
	drawnSet := make(map[int]struct{}, len(drawn))
	for _, n := range drawn {
		drawnSet[n] = struct{}{}
	}

	hits := 0
	seen := make(map[int]struct{}, len(chosen))
	for _, n := range chosen {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := drawnSet[n]; ok {
			hits++
		}
	}
	return hits
}

// IsMatch 判斷新抽出的號碼是否在玩家選號中
func IsMatch(chosen *SelectionSet, number int) bool {
	return chosen.Contains(number)
}
