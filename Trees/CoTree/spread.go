package CoTree

import (
	"golang.org/x/exp/constraints"
)

const (
	stepLeft  uint8 = iota // fill the left subtree
	stepHere               // fill this node
	stepRight              // fill the right subtree
	stepUp                 // done, back to the parent
)

// fillFrame is a subtree rooted at i, with the given offset, that receives n>0 elements.
type fillFrame[S constraints.Unsigned] struct {
	i, offset, n S
	step         uint8
}

// spread n elements over the subtree rooted at root, in order: the left
// subtree gets n/2 elements, the node one, the right subtree the rest.
// next is called exactly n times and gives the elements in increasing key
// order; the slots are written in increasing position order, and a slot is
// only written after the call to next that produced its element.
// The depth is bounded by the bit width of S, so a fixed array is enough as a stack.
// Time: O(n).
func spread[V any, S constraints.Unsigned](indexes []S, data []V, root, offset, n S, next func() (S, V)) {
	if n == 0 {
		return
	}
	var st [65]fillFrame[S]
	st[0] = fillFrame[S]{root, offset, n, stepLeft}
	for top := 1; top > 0; {
		f := &st[top-1]
		switch f.step {
		case stepLeft:
			f.step = stepHere
			if l := f.n >> 1; l > 0 {
				h := f.offset >> 1
				st[top] = fillFrame[S]{f.i - h, h, l, stepLeft}
				top++
			}
		case stepHere:
			f.step = stepRight
			k, v := next()
			indexes[f.i], data[f.i] = k, v
		case stepRight:
			f.step = stepUp
			if r := f.n - 1 - f.n>>1; r > 0 {
				h := f.offset >> 1
				st[top] = fillFrame[S]{f.i + h, h, r, stepLeft}
				top++
			}
		default:
			top--
		}
	}
}
