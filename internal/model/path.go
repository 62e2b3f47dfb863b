package model

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// PathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, column or diagonal; a zero
// displacement is never clear.
func PathClear(b *Board, from, to Square) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr == 0 && dc == 0 {
		return false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return false
	}
	stepR, stepC := sign(dr), sign(dc)
	s := Square{Row: from.Row + stepR, Col: from.Col + stepC}
	for s != to {
		if !b.Get(s).IsEmpty() {
			return false
		}
		s = Square{Row: s.Row + stepR, Col: s.Col + stepC}
	}
	return true
}
