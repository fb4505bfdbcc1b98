package attack

// permuter generates permutations of 0..n-1 in lexicographic order, one at a
// time. It is restartable and never materializes more than the current
// permutation, which keeps peak memory flat even at the permutation cap.
type permuter struct {
	perm  []int
	first bool
	done  bool
}

func newPermuter(n int) *permuter {
	p := &permuter{perm: make([]int, n)}
	p.reset()
	return p
}

func (p *permuter) reset() {
	for i := range p.perm {
		p.perm[i] = i
	}
	p.first = true
	p.done = false
}

// next returns the next permutation. The returned slice is reused between
// calls; callers that retain it must copy.
func (p *permuter) next() ([]int, bool) {
	if p.done {
		return nil, false
	}
	if p.first {
		p.first = false
		return p.perm, true
	}

	// Standard lexicographic successor: find the rightmost ascent, swap its
	// head with the smallest larger element to its right, reverse the tail.
	i := len(p.perm) - 2
	for i >= 0 && p.perm[i] >= p.perm[i+1] {
		i--
	}
	if i < 0 {
		p.done = true
		return nil, false
	}
	j := len(p.perm) - 1
	for p.perm[j] <= p.perm[i] {
		j--
	}
	p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	for lo, hi := i+1, len(p.perm)-1; lo < hi; lo, hi = lo+1, hi-1 {
		p.perm[lo], p.perm[hi] = p.perm[hi], p.perm[lo]
	}
	return p.perm, true
}
