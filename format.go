package dualmap

import (
	"fmt"
	"strings"
)

// String renders the map for diagnostics, keyed by the (k1, k2) pair:
//
//	dualmap[(1, One): Ein (2, Two): Zwei]
//
// Entry order follows the backing table and is unspecified.
func (m *DualKeyMap[K1, K2, V]) String() string {
	var sb strings.Builder
	sb.WriteString("dualmap[")
	first := true
	for k1, e := range m.primary {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "(%v, %v): %v", k1, e.alt, e.val)
	}
	sb.WriteByte(']')
	return sb.String()
}
