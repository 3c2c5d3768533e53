package CoTree

// The searches below work on slot positions. A search for a missing target
// returns a used slot next to where the target would be: either the greatest
// element before it or the smallest element after it.

// keyCmp compares the key at a slot with key.
func (u *Tree[V, S]) keyCmp(key S) func(S) int {
	return func(i S) int {
		if k := u.indexes[i]; k < key {
			return -1
		} else if k > key {
			return 1
		}
		return 0
	}
}

// funcCmp adapts a predicate on elements to slots.
func (u *Tree[V, S]) funcCmp(cmp func(S, *V) int) func(S) int {
	return func(i S) int {
		return cmp(u.indexes[i], &u.data[i])
	}
}

// bisectIn searches [first, last]. Both slots must be used and first<=last.
// Time: O(log(last-first)) comparisons, O(last-first) in the worst case for skipping unused slots.
func (u *Tree[V, S]) bisectIn(first, last S, cmp func(S) int) S {
	for first < last {
		half := first + (last-first)/2
		newHalf := half
		for u.indexes[newHalf] == Unused[S]() {
			newHalf++
		}
		c := cmp(newHalf)
		if c == 0 {
			return newHalf
		}
		if c > 0 {
			for u.indexes[half] == Unused[S]() {
				half--
			}
			last = half
		} else {
			for newHalf++; u.indexes[newHalf] == Unused[S](); newHalf++ {
			}
			first = newHalf
		}
	}
	//first may have gone past last, so last is the one that's still inside the range and used.
	return last
}

// bisectNear does an exponential search from hint, which must be used, followed by bisectIn.
// Time: O(log d) comparisons where d is the distance between hint and the result.
func (u *Tree[V, S]) bisectNear(hint S, cmp func(S) int) S {
	c := cmp(hint)
	if c == 0 {
		return hint
	}
	var lo, hi S
	offset := S(1)
	if c > 0 {
		//the target is before hint.
		for {
			if hint <= offset {
				hi = hint
				for lo = 1; u.indexes[lo] == Unused[S](); lo++ {
				}
				if cmp(lo) >= 0 {
					return lo
				}
				break
			}
			nh := hint - offset
			for u.indexes[nh] == Unused[S]() {
				nh++
			}
			if cc := cmp(nh); cc <= 0 {
				if cc == 0 {
					return nh
				}
				lo, hi = nh, hint
				break
			}
			hint = nh
			offset <<= 1
		}
	} else {
		//the target is after hint.
		for {
			if u.reserved-hint < offset {
				lo = hint
				for hi = u.reserved; u.indexes[hi] == Unused[S](); hi-- {
				}
				if cmp(hi) <= 0 {
					return hi
				}
				break
			}
			nh := hint + offset
			for u.indexes[nh] == Unused[S]() {
				nh--
			}
			if cc := cmp(nh); cc >= 0 {
				if cc == 0 {
					return nh
				}
				lo, hi = hint, nh
				break
			}
			hint = nh
			offset <<= 1
		}
	}
	return u.bisectIn(lo, hi, cmp)
}

// Bisect searches key in the whole tree. On a miss the result is next to
// where key would be; End() if the tree is empty.
// Time: O(log n).
func (u *Tree[V, S]) Bisect(key S) Iterator[V, S] {
	if u.size == 0 {
		return u.End()
	}
	return Iterator[V, S]{u, u.bisectIn(u.Begin().i, u.Last().i, u.keyCmp(key))}
}

// BisectIn searches key between first and last, both valid and first not after last.
func (u *Tree[V, S]) BisectIn(first, last Iterator[V, S], key S) Iterator[V, S] {
	return Iterator[V, S]{u, u.bisectIn(first.i, last.i, u.keyCmp(key))}
}

// BisectNear searches key starting from hint, which must be valid. It's
// faster than Bisect when the result is close to hint.
func (u *Tree[V, S]) BisectNear(hint Iterator[V, S], key S) Iterator[V, S] {
	return Iterator[V, S]{u, u.bisectNear(hint.i, u.keyCmp(key))}
}

// BisectInFunc is BisectIn with a three-way comparison: cmp returns a
// negative number if the element is before the target, 0 if it is the
// target and a positive number if it is after. cmp must be monotone over the
// in-order sequence.
func (u *Tree[V, S]) BisectInFunc(first, last Iterator[V, S], cmp func(S, *V) int) Iterator[V, S] {
	return Iterator[V, S]{u, u.bisectIn(first.i, last.i, u.funcCmp(cmp))}
}

// BisectNearFunc is BisectNear with a three-way comparison, see BisectInFunc.
func (u *Tree[V, S]) BisectNearFunc(hint Iterator[V, S], cmp func(S, *V) int) Iterator[V, S] {
	return Iterator[V, S]{u, u.bisectNear(hint.i, u.funcCmp(cmp))}
}
