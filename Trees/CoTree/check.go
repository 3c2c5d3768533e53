package CoTree

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrShape    = errors.New("CoTree: bad array shape")
	ErrSentinel = errors.New("CoTree: sentinel overwritten")
	ErrSize     = errors.New("CoTree: size mismatch")
	ErrOrder    = errors.New("CoTree: keys out of order")
	ErrDetached = errors.New("CoTree: used node below an unused one")
	ErrDensity  = errors.New("CoTree: density out of bounds")
)

// Check verifies every invariant of the tree and reports all the violations found.
// Time: O(reserved).
func (u *Tree[V, S]) Check() error {
	err := u.structureErrors()
	if err == nil {
		err = u.densityErrors()
	}
	return err.ErrorOrNil()
}

// OK is Check()==nil.
func (u *Tree[V, S]) OK() bool {
	return u.Check() == nil
}

// StructureOK is OK without the density bounds.
func (u *Tree[V, S]) StructureOK() bool {
	return u.structureErrors().ErrorOrNil() == nil
}

func (u *Tree[V, S]) structureErrors() (err *multierror.Error) {
	if u.reserved == 0 {
		if u.size != 0 || u.maxDepth != 0 || len(u.indexes) != 0 || len(u.data) != 0 {
			err = multierror.Append(err, fmt.Errorf("%w: empty tree with size %d, depth %d, %d indexes", ErrShape, u.size, u.maxDepth, len(u.indexes)))
		}
		return
	}
	if u.maxDepth < 2 || u.reserved != S(1)<<u.maxDepth-1 {
		err = multierror.Append(err, fmt.Errorf("%w: reserved %d with depth %d", ErrShape, u.reserved, u.maxDepth))
		return
	}
	if len(u.indexes) != int(u.reserved)+2 || len(u.data) != int(u.reserved)+1 {
		err = multierror.Append(err, fmt.Errorf("%w: %d indexes and %d values for %d slots", ErrShape, len(u.indexes), len(u.data), u.reserved))
		return
	}
	if u.indexes[0] != 0 || u.indexes[u.reserved+1] != 0 {
		err = multierror.Append(err, fmt.Errorf("%w: %d, %d", ErrSentinel, u.indexes[0], u.indexes[u.reserved+1]))
	}
	var used S
	var prev S
	for i := S(1); i <= u.reserved; i++ {
		k := u.indexes[i]
		if k == Unused[S]() {
			continue
		}
		if used > 0 && k <= prev {
			err = multierror.Append(err, fmt.Errorf("%w: key %d at slot %d after key %d", ErrOrder, k, i, prev))
		}
		if n := u.nodeAt(i); !n.isRoot() {
			n.parent()
			if !n.used() {
				err = multierror.Append(err, fmt.Errorf("%w: slot %d (key %d) has unused parent %d", ErrDetached, i, k, n.i))
			}
		}
		prev = k
		used++
	}
	if used != u.size {
		err = multierror.Append(err, fmt.Errorf("%w: %d used slots, size %d", ErrSize, used, u.size))
	}
	return
}

func (u *Tree[V, S]) densityErrors() (err *multierror.Error) {
	if u.reserved <= 3 {
		return
	}
	d := u.densities()
	if greaterThanRatio(uint64(u.size), uint64(u.reserved), d.MaxPercent) {
		err = multierror.Append(err, fmt.Errorf("%w: %d elements in %d slots, max %d%%", ErrDensity, u.size, u.reserved, d.MaxPercent))
	}
	if lessThanRatio(uint64(u.size), uint64(u.reserved), d.MinPercent) && !greaterThanRatio(uint64(u.size), uint64(u.reserved/2), d.MaxPercent) {
		err = multierror.Append(err, fmt.Errorf("%w: %d elements in %d slots, min %d%%", ErrDensity, u.size, u.reserved, d.MinPercent))
	}
	return
}
