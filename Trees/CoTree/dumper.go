package CoTree

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
)

// Dump writes the tree level by level, one line per depth, followed by the
// in-order elements. Unused slots are printed as "_".
func (u *Tree[V, S]) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "size %d, reserved %d, depth %d\n", u.size, u.reserved, u.maxDepth); err != nil {
		return err
	}
	if u.reserved == 0 {
		return nil
	}
	var sb strings.Builder
	for offset := u.reserved/2 + 1; offset > 0; offset >>= 1 {
		sb.Reset()
		fmt.Fprintf(&sb, "%*s", 2*(int(u.maxDepth)-1-bits.TrailingZeros64(uint64(offset))), "")
		for i := offset; i <= u.reserved; i += offset << 1 {
			if k := u.indexes[i]; k == Unused[S]() {
				sb.WriteString(" _")
			} else {
				fmt.Fprintf(&sb, " %d", k)
			}
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	for k, v := range u.All() {
		if _, err := fmt.Fprintf(w, "%d: %v\n", k, *v); err != nil {
			return err
		}
	}
	return nil
}
