package CoTree

import (
	"github.com/sirupsen/logrus"
)

// Insert v at key, overwriting the value if key is already there. Returns the position of key.
// Time: amortized O(log^2 n).
func (u *Tree[V, S]) Insert(key S, v V) Iterator[V, S] {
	if u.size == 0 {
		u.insertInEmptyTree(key, v)
		return Iterator[V, S]{u, u.reserved/2 + 1}
	}
	n := u.rootNode()
	n.goDownSearchingKey(key)
	if n.key() == key {
		*n.value() = v
		return Iterator[V, S]{u, n.i}
	}
	n = u.insertPrecise(key, v, n)
	return Iterator[V, S]{u, n.i}
}

// InsertDefault makes sure key is present, storing the zero value when it isn't. Existing values are kept.
func (u *Tree[V, S]) InsertDefault(key S) Iterator[V, S] {
	if it := u.Find(key); it.Valid() {
		return it
	}
	var zero V
	return u.Insert(key, zero)
}

// InsertHint is Insert using hint, a position of u, to find key's place.
// It is faster than Insert when key is close to hint. An invalid hint, or one
// belonging to another tree, is ignored.
func (u *Tree[V, S]) InsertHint(hint Iterator[V, S], key S, v V) Iterator[V, S] {
	if hint.t != u || !hint.Valid() {
		return u.Insert(key, v)
	}
	c1 := u.bisectNear(hint.i, u.keyCmp(key))
	if u.indexes[c1] == key {
		u.data[c1] = v
		return Iterator[V, S]{u, c1}
	}
	//key goes between c1 and its neighbour c2, as a child of the deeper one.
	c2 := c1
	if key < u.indexes[c1] {
		for c2--; u.indexes[c2] == Unused[S](); c2-- {
		}
		if c2 == 0 {
			return Iterator[V, S]{u, u.insertPrecise(key, v, u.nodeAt(c1)).i}
		}
	} else {
		for c2++; u.indexes[c2] == Unused[S](); c2++ {
		}
		if c2 == u.reserved+1 {
			return Iterator[V, S]{u, u.insertPrecise(key, v, u.nodeAt(c1)).i}
		}
	}
	n1, n2 := u.nodeAt(c1), u.nodeAt(c2)
	if n1.offset < n2.offset {
		return Iterator[V, S]{u, u.insertPrecise(key, v, n1).i}
	}
	return Iterator[V, S]{u, u.insertPrecise(key, v, n2).i}
}

// InsertDefaultHint is InsertDefault with a hint, see InsertHint.
func (u *Tree[V, S]) InsertDefaultHint(hint Iterator[V, S], key S) Iterator[V, S] {
	if hint.t != u || !hint.Valid() {
		return u.InsertDefault(key)
	}
	if it := u.BisectNear(hint, key); it.Key() == key {
		return it
	}
	var zero V
	return u.InsertHint(hint, key, zero)
}

func (u *Tree[V, S]) insertInEmptyTree(key S, v V) {
	u.allocate(2)
	r := u.reserved/2 + 1
	u.indexes[r], u.data[r] = key, v
	u.size = 1
}

// insertPrecise adds key, which mustn't be in the tree, below n: the node goDownSearchingKey(key) stops at.
func (u *Tree[V, S]) insertPrecise(key S, v V, n treeIterator[V, S]) treeIterator[V, S] {
	if greaterThanRatio(uint64(u.size)+1, uint64(u.reserved), u.densities().MaxPercent) {
		u.rebuildBiggerTree()
		//the old positions are gone.
		n = u.rootNode()
		n.goDownSearchingKey(key)
	}
	if !n.isLeaf() {
		if key < n.key() {
			n.leftChild()
		} else {
			n.rightChild()
		}
		n.t.indexes[n.i], n.t.data[n.i] = key, v
		u.size++
		return n
	}
	n = u.rebalance(n, key, v)
	u.size++
	n.goDownSearchingKey(key)
	return n
}

// Erase key. Returns true if key was present.
// Time: amortized O(log^2 n).
func (u *Tree[V, S]) Erase(key S) bool {
	if u.size == 0 {
		return false
	}
	n := u.rootNode()
	n.goDownSearchingKey(key)
	if n.key() != key {
		return false
	}
	u.eraseNode(n)
	return true
}

// EraseAt erases the element at it, which must be valid. Returns the position of the following element, or End().
func (u *Tree[V, S]) EraseAt(it Iterator[V, S]) Iterator[V, S] {
	key := it.Key()
	u.eraseNode(u.nodeAt(it.i))
	return u.LowerBound(key)
}

// eraseNode removes the element at n, which must be used.
func (u *Tree[V, S]) eraseNode(n treeIterator[V, S]) {
	if u.size == 1 {
		if debugEnabled() {
			Log.WithFields(logrus.Fields{"op": "erase", "key": n.key()}).Debug("last element erased, tree released")
		}
		u.Clear()
		return
	}
	d := u.densities()
	if u.reserved > 3 && lessThanRatio(uint64(u.size)-1, uint64(u.reserved), d.MinPercent) &&
		!greaterThanRatio(uint64(u.size)-1, uint64(u.reserved/2), d.MaxPercent) {
		key := n.key()
		u.rebuildSmallerTree()
		n = u.rootNode()
		n.goDownSearchingKey(key)
	}
	//pull the in-order neighbours up until the hole reaches a node without used children.
	var zero V
	for !n.isLeaf() {
		hole := n
		n.leftChild()
		if n.used() {
			n.followRightChildrenWithValue()
		} else {
			n.parent()
			n.rightChild()
			if n.used() {
				n.followLeftChildrenWithValue()
			} else {
				n.parent()
				break
			}
		}
		u.indexes[hole.i], u.data[hole.i] = u.indexes[n.i], u.data[n.i]
	}
	u.indexes[n.i], u.data[n.i] = Unused[S](), zero
	u.size--
	u.rebalance(n, 0, zero)
}

// rebuildBiggerTree doubles the capacity, adding a level of leaves. Slot i moves to slot 2i.
// Time: O(reserved).
func (u *Tree[V, S]) rebuildBiggerTree() {
	if u.reserved == 0 {
		u.allocate(2)
		return
	}
	oldIndexes, oldData, oldReserved := u.indexes, u.data, u.reserved
	u.allocate(u.maxDepth + 1)
	for i := S(1); i <= oldReserved; i++ {
		if oldIndexes[i] != Unused[S]() {
			u.indexes[i<<1], u.data[i<<1] = oldIndexes[i], oldData[i]
		}
	}
	if debugEnabled() {
		Log.WithFields(logrus.Fields{"op": "grow", "size": u.size, "reserved": u.reserved}).Debug("tree grown")
	}
}

// rebuildSmallerTree halves the capacity, spreading the elements again.
// The elements must fit in the smaller tree.
// Time: O(reserved).
func (u *Tree[V, S]) rebuildSmallerTree() {
	old := *u
	u.allocate(u.maxDepth - 1)
	u.moveDataFrom(&old)
	if debugEnabled() {
		Log.WithFields(logrus.Fields{"op": "shrink", "size": u.size, "reserved": u.reserved}).Debug("tree shrunk")
	}
}

// rebalance the smallest subtree around n whose density is within the band
// of its depth. When n is used, key/v is added in the process; otherwise n is
// the slot an erasure just freed. Returns the root of the rebalanced subtree.
// Time: O(size of the rebalanced subtree).
func (u *Tree[V, S]) rebalance(n treeIterator[V, S], key S, v V) treeIterator[V, S] {
	deleting := !n.used()
	if u.reserved == 3 && deleting {
		//can't be shrunk, so its density is allowed out of the bounds.
		return u.rootNode()
	}
	d := u.densities()
	depthMinus1, levels := uint64(n.depth()-1), uint64(u.maxDepth-1)
	subtreeReserved := uint64(n.offset)<<1 - 1
	subtreeSize := uint64(u.countUsedInSubtree(n))
	if !deleting {
		subtreeSize++
	}
	for !n.isRoot() {
		lo, hi := d.band(depthMinus1, levels)
		if !greaterThanRatio(subtreeSize, subtreeReserved, hi) && !lessThanRatio(subtreeSize, subtreeReserved, lo) {
			break
		}
		right := n.isRightChild()
		n.parent()
		sibling := n
		if right {
			sibling.leftChild()
		} else {
			sibling.rightChild()
		}
		subtreeSize += uint64(u.countUsedInSubtree(sibling))
		if n.used() {
			subtreeSize++
		}
		subtreeReserved = subtreeReserved<<1 + 1
		depthMinus1--
	}
	if debugEnabled() {
		Log.WithFields(logrus.Fields{
			"op": "rebalance", "root": n.i, "depth": n.depth(), "subtreeSize": subtreeSize, "subtreeReserved": subtreeReserved, "deleting": deleting,
		}).Debug("rebalancing subtree")
	}
	_, last := n.span()
	firstUnused, added := u.compactElementsInTheRightmostEnd(last, S(subtreeSize), key, v, !deleting)
	u.redistributeElementsInSubtree(n, S(subtreeSize), firstUnused+1, key, v, !deleting && !added)
	return n
}

// compactElementsInTheRightmostEnd moves the n elements of the subtree
// ending at slot last into the slots (last-n, last], keeping them in order.
// If add, key/v is one of the n and gets merged in, unless there is no free
// slot left for it at the time it's reached: then added is false, only n-1
// elements are moved and the run starts at last-n+2.
// Returns the slot right before the run.
func (u *Tree[V, S]) compactElementsInTheRightmostEnd(last, n, key S, v V, add bool) (firstUnused S, added bool) {
	var zero V
	existing := n
	if add {
		existing--
	}
	read, write := last, last
	if existing > 0 {
		for u.indexes[read] == Unused[S]() {
			read--
		}
	}
	for existing > 0 || add {
		if add && (existing == 0 || u.indexes[read] < key) {
			add = false
			if existing == 0 || write != read {
				u.indexes[write], u.data[write] = key, v
				added = true
				write--
			}
			continue
		}
		if write != read {
			u.indexes[write], u.data[write] = u.indexes[read], u.data[read]
			u.indexes[read], u.data[read] = Unused[S](), zero
		}
		write--
		if existing--; existing > 0 {
			for read--; u.indexes[read] == Unused[S](); read-- {
			}
		}
	}
	return write, added
}

// redistributeElementsInSubtree spreads the n elements of the subtree rooted
// at root evenly, reading them from the compacted run starting at first. If
// add, key/v isn't in the run yet and is spliced in at its place.
func (u *Tree[V, S]) redistributeElementsInSubtree(root treeIterator[V, S], n, first, key S, v V, add bool) {
	var zero V
	left := n
	if add {
		left--
	}
	spread(u.indexes, u.data, root.i, root.offset, n, func() (S, V) {
		if add && (left == 0 || u.indexes[first] > key) {
			add = false
			return key, v
		}
		k, x := u.indexes[first], u.data[first]
		u.indexes[first], u.data[first] = Unused[S](), zero
		first++
		left--
		return k, x
	})
}
