package htn

// mtrLess reports whether a is lexicographically strictly less than b, with
// the rule that a shorter record which is a strict prefix of (or diverges
// below) a longer one wins: smaller indices always take priority, and running
// out of entries first (nothing left to compare) also counts as "smaller".
func mtrLess(a, b []int) bool {
	return compareMTR(a, b) < 0
}

// compareMTR returns -1, 0, or 1 as a is less than, equal to, or greater than
// b under lexicographic order over the shared prefix, with length breaking
// ties (the shorter record wins when the shared prefix is equal).
func compareMTR(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// canBeatLastMTR reports whether choosing childIndex for the choice point at
// the current depth (len(mtr)) could still yield a full MTR strictly less
// than lastMTR. It only looks at the single entry at this depth: a strictly
// smaller index always can; an equal index might (deeper entries could still
// decide it); a strictly larger index never can.
func canBeatLastMTR(mtr []int, childIndex int, lastMTR []int) bool {
	depth := len(mtr)
	if depth >= len(lastMTR) {
		return true
	}
	return childIndex <= lastMTR[depth]
}
