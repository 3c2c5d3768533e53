package CoTree

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Densities are the occupation thresholds, in percent, that drive the
// rebalancing of a Tree.
// A Tree grows when storing one more element would push its density above
// MaxPercent, and shrinks when erasing would push it below MinPercent.
// Local rebalances use a band that widens with depth: at the root it is
// [MinPercent, MaxPercent], at the leaves [MinLeafPercent, 100].
type Densities struct {
	MaxPercent     uint8 `toml:"max_percent"`
	MinPercent     uint8 `toml:"min_percent"`
	MinLeafPercent uint8 `toml:"min_leaf_percent"`
}

// DefaultDensities are used by New and by the zero value of Tree.
var DefaultDensities = Densities{MaxPercent: 91, MinPercent: 38, MinLeafPercent: 1}

var ErrDensities = errors.New("CoTree: invalid densities")

// Validate the thresholds. All violated rules are reported.
func (d Densities) Validate() error {
	var err *multierror.Error
	if d.MaxPercent >= 100 {
		err = multierror.Append(err, fmt.Errorf("%w: max_percent %d must be below 100", ErrDensities, d.MaxPercent))
	}
	if d.MinLeafPercent == 0 {
		err = multierror.Append(err, fmt.Errorf("%w: min_leaf_percent must be positive", ErrDensities))
	}
	if d.MinLeafPercent > d.MinPercent {
		err = multierror.Append(err, fmt.Errorf("%w: min_leaf_percent %d exceeds min_percent %d", ErrDensities, d.MinLeafPercent, d.MinPercent))
	}
	//a freshly shrunk tree must not be over the max density, and a freshly grown one not under the min.
	if 2*uint(d.MinPercent) >= uint(d.MaxPercent) {
		err = multierror.Append(err, fmt.Errorf("%w: twice min_percent %d must be below max_percent %d", ErrDensities, d.MinPercent, d.MaxPercent))
	}
	return err.ErrorOrNil()
}

// greaterThanRatio is a/b > p%.
func greaterThanRatio(a, b uint64, p uint8) bool {
	return 100*a > uint64(p)*b
}

// lessThanRatio is a/b < p%.
func lessThanRatio(a, b uint64, p uint8) bool {
	return 100*a < uint64(p)*b
}

// band returns the [lo, hi] density percentages allowed for a subtree whose
// root is depthMinus1 levels below the root of a tree with levels+1 levels.
func (d Densities) band(depthMinus1, levels uint64) (lo, hi uint8) {
	if levels == 0 {
		return d.MinPercent, d.MaxPercent
	}
	hi = d.MaxPercent + uint8(depthMinus1*uint64(100-d.MaxPercent)/levels)
	lo = d.MinPercent - uint8(depthMinus1*uint64(d.MinPercent-d.MinLeafPercent)/levels)
	return
}
