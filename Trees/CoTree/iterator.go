package CoTree

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Iterator is a position in the in-order sequence of a Tree. Besides the
// elements there are two positions that hold none: BeforeBegin and End.
// Next and Prev skip the unused slots. Calling Next on End or Prev on
// BeforeBegin is undefined.
type Iterator[V any, S constraints.Unsigned] struct {
	t *Tree[V, S]
	i S
}

// ConstIterator is an Iterator that gives out copies of the values.
type ConstIterator[V any, S constraints.Unsigned] struct {
	it Iterator[V, S]
}

// BeforeBegin is the position before the first element.
func (u *Tree[V, S]) BeforeBegin() Iterator[V, S] {
	return Iterator[V, S]{u, 0}
}

// End is the position after the last element.
func (u *Tree[V, S]) End() Iterator[V, S] {
	return Iterator[V, S]{u, u.reserved + 1}
}

// Begin is the position of the smallest key, End() if the tree is empty.
func (u *Tree[V, S]) Begin() Iterator[V, S] {
	if u.size == 0 {
		return u.End()
	}
	it := Iterator[V, S]{u, 0}
	it.Next()
	return it
}

// Last is the position of the greatest key, BeforeBegin() if the tree is empty.
func (u *Tree[V, S]) Last() Iterator[V, S] {
	if u.size == 0 {
		return u.BeforeBegin()
	}
	it := u.End()
	it.Prev()
	return it
}

func (u *Tree[V, S]) CBegin() ConstIterator[V, S] {
	return u.Begin().Const()
}

func (u *Tree[V, S]) CEnd() ConstIterator[V, S] {
	return u.End().Const()
}

// Next moves to the following element, or to End.
func (it *Iterator[V, S]) Next() {
	for it.i++; it.t.indexes[it.i] == Unused[S](); it.i++ {
	}
}

// Prev moves to the preceding element, or to BeforeBegin.
func (it *Iterator[V, S]) Prev() {
	for it.i--; it.t.indexes[it.i] == Unused[S](); it.i-- {
	}
}

// Valid is false on BeforeBegin and End.
func (it Iterator[V, S]) Valid() bool {
	return it.t != nil && it.i != 0 && it.i <= it.t.reserved
}

// Key at the position. Only meaningful if Valid.
func (it Iterator[V, S]) Key() S {
	return it.t.indexes[it.i]
}

// Value at the position. Only meaningful if Valid.
func (it Iterator[V, S]) Value() *V {
	return &it.t.data[it.i]
}

// Equal positions of the same tree.
func (it Iterator[V, S]) Equal(o Iterator[V, S]) bool {
	return it.t == o.t && it.i == o.i
}

func (it Iterator[V, S]) Const() ConstIterator[V, S] {
	return ConstIterator[V, S]{it}
}

func (it *ConstIterator[V, S]) Next() {
	it.it.Next()
}

func (it *ConstIterator[V, S]) Prev() {
	it.it.Prev()
}

func (it ConstIterator[V, S]) Valid() bool {
	return it.it.Valid()
}

func (it ConstIterator[V, S]) Key() S {
	return it.it.Key()
}

func (it ConstIterator[V, S]) Value() V {
	return *it.it.Value()
}

func (it ConstIterator[V, S]) Equal(o ConstIterator[V, S]) bool {
	return it.it.Equal(o.it)
}

// All yields the elements in increasing key order.
func (u *Tree[V, S]) All() iter.Seq2[S, *V] {
	return func(yield func(S, *V) bool) {
		for it := u.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Backward yields the elements in decreasing key order.
func (u *Tree[V, S]) Backward() iter.Seq2[S, *V] {
	return func(yield func(S, *V) bool) {
		for it := u.Last(); it.Valid(); it.Prev() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}
