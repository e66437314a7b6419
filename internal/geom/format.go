package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense copies m into a gonum matrix.
func (m Mat3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, m[:])
}

// Format returns a pretty printer for m, for diagnostics.
func Format(m Mat3) fmt.Formatter {
	return mat.Formatted(m.Dense(), mat.Prefix("    "), mat.Squeeze())
}
