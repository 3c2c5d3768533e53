package CoTree

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// treeIterator is a structural cursor: slot i together with its offset, the
// lowest set bit of i. Children are at i-offset/2 and i+offset/2.
// The tree must not be empty.
type treeIterator[V any, S constraints.Unsigned] struct {
	t         *Tree[V, S]
	i, offset S
}

func (u *Tree[V, S]) rootNode() treeIterator[V, S] {
	r := u.reserved/2 + 1
	return treeIterator[V, S]{u, r, r}
}

// nodeAt slot i, 1<=i<=reserved.
func (u *Tree[V, S]) nodeAt(i S) treeIterator[V, S] {
	return treeIterator[V, S]{u, i, i & (^i + 1)}
}

func (n *treeIterator[V, S]) key() S {
	return n.t.indexes[n.i]
}

func (n *treeIterator[V, S]) value() *V {
	return &n.t.data[n.i]
}

func (n *treeIterator[V, S]) used() bool {
	return n.t.indexes[n.i] != Unused[S]()
}

func (n *treeIterator[V, S]) isRoot() bool {
	return n.offset == n.t.reserved/2+1
}

func (n *treeIterator[V, S]) isLeaf() bool {
	return n.offset == 1
}

// isRightChild mustn't be called on the root.
func (n *treeIterator[V, S]) isRightChild() bool {
	return n.i&(n.offset<<1) != 0
}

// depth of the node, 1 for the root.
func (n *treeIterator[V, S]) depth() uint8 {
	return n.t.maxDepth - uint8(bits.TrailingZeros64(uint64(n.offset)))
}

func (n *treeIterator[V, S]) leftChild() {
	n.offset >>= 1
	n.i -= n.offset
}

func (n *treeIterator[V, S]) rightChild() {
	n.offset >>= 1
	n.i += n.offset
}

func (n *treeIterator[V, S]) parent() {
	n.i &^= n.offset
	n.offset <<= 1
	n.i |= n.offset
}

// first and last slot of the subtree rooted at n.
func (n *treeIterator[V, S]) span() (S, S) {
	return n.i - n.offset + 1, n.i + n.offset - 1
}

// followLeftChildrenWithValue descends through left children as long as they are used.
func (n *treeIterator[V, S]) followLeftChildrenWithValue() {
	for !n.isLeaf() {
		n.leftChild()
		if !n.used() {
			n.parent()
			return
		}
	}
}

// followRightChildrenWithValue descends through right children as long as they are used.
func (n *treeIterator[V, S]) followRightChildrenWithValue() {
	for !n.isLeaf() {
		n.rightChild()
		if !n.used() {
			n.parent()
			return
		}
	}
}

// goDownSearchingKey moves from n, which must be used, towards key. It stops
// at the node holding key or, when key isn't there, at the node key should be
// attached to: either a leaf or a node whose child on key's side is unused.
// That node holds the predecessor or the successor of key.
func (n *treeIterator[V, S]) goDownSearchingKey(key S) {
	for !n.isLeaf() {
		k := n.key()
		if key == k {
			return
		}
		if key < k {
			n.leftChild()
		} else {
			n.rightChild()
		}
		if !n.used() {
			n.parent()
			return
		}
	}
}

// countUsedInSubtree rooted at n.
// Time: O(subtree size).
func (u *Tree[V, S]) countUsedInSubtree(n treeIterator[V, S]) S {
	var c S
	first, last := n.span()
	for _, k := range u.indexes[first : last+1] {
		if k != Unused[S]() {
			c++
		}
	}
	return c
}
