// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Contiguity is the neighbourhood shape of a moving window.
type Contiguity int

const (
	Queen Contiguity = iota
	Rook
	Bishop
	Circle
	Annulus
)

var contiguityNames = []string{"queen", "rook", "bishop", "circle", "annulus"}

func (c Contiguity) String() string {
	if c < 0 || int(c) >= len(contiguityNames) {
		return fmt.Sprintf("Contiguity(%d)", int(c))
	}
	return contiguityNames[c]
}

// ParseContiguity accepts the lower-case names returned by String.
func ParseContiguity(s string) (Contiguity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range contiguityNames {
		if s == name {
			return Contiguity(i), nil
		}
	}
	return Queen, fmt.Errorf("%q (want one of %s): %w", s, strings.Join(contiguityNames, ", "), ErrUnknownContiguity)
}

// Kernel is an immutable binary moving-window mask of odd size.
type Kernel struct {
	rows, columns int
	method        Contiguity
	weights       []float64
}

// NewKernel builds a kx (columns) by ky (rows) kernel with the given
// contiguity.
func NewKernel(kx, ky int, method Contiguity) (*Kernel, error) {
	switch method {
	case Queen:
		return NewQueenKernel(kx, ky)
	case Rook:
		return NewRookKernel(kx, ky)
	case Bishop:
		return NewBishopKernel(kx, ky)
	case Circle:
		return NewCircleKernel(kx, ky)
	case Annulus:
		return NewAnnulusKernel(kx, ky)
	}
	return nil, fmt.Errorf("%v: %w", method, ErrUnknownContiguity)
}

// NewQueenKernel includes every cell of the window.
func NewQueenKernel(kx, ky int) (*Kernel, error) {
	return newKernel(kx, ky, Queen, func(dx, dy int) bool { return true })
}

// NewRookKernel includes the centre row and the centre column.
func NewRookKernel(kx, ky int) (*Kernel, error) {
	return newKernel(kx, ky, Rook, func(dx, dy int) bool { return dx == 0 || dy == 0 })
}

// NewBishopKernel includes both diagonals.
func NewBishopKernel(kx, ky int) (*Kernel, error) {
	return newKernel(kx, ky, Bishop, func(dx, dy int) bool { return dx == dy || dx == -dy })
}

// NewCircleKernel includes the cells within kx/2 cells of the centre.
func NewCircleKernel(kx, ky int) (*Kernel, error) {
	radius := kx / 2
	return newKernel(kx, ky, Circle, func(dx, dy int) bool {
		return dx*dx+dy*dy <= radius*radius
	})
}

// NewAnnulusKernel includes the one-cell ring between kx/2-1 and kx/2 cells
// from the centre.
func NewAnnulusKernel(kx, ky int) (*Kernel, error) {
	outer := kx / 2
	inner := outer - 1
	return newKernel(kx, ky, Annulus, func(dx, dy int) bool {
		d2 := dx*dx + dy*dy
		return d2 > inner*inner && d2 <= outer*outer
	})
}

func newKernel(kx, ky int, method Contiguity, include func(dx, dy int) bool) (*Kernel, error) {
	if kx < 3 || ky < 3 || kx%2 == 0 || ky%2 == 0 {
		return nil, fmt.Errorf("%dx%d %v window: %w", kx, ky, method, ErrInvalidWindowSize)
	}
	k := &Kernel{rows: ky, columns: kx, method: method, weights: make([]float64, kx*ky)}
	halfX, halfY := kx/2, ky/2
	for r := 0; r < ky; r++ {
		for c := 0; c < kx; c++ {
			if include(c-halfX, r-halfY) {
				k.weights[r*kx+c] = 1
			}
		}
	}
	return k, nil
}

func (k *Kernel) Rows() int { return k.rows }

func (k *Kernel) Columns() int { return k.columns }

func (k *Kernel) Method() Contiguity { return k.method }

// Weight returns the binary weight at (row, col), or 0 outside the window.
func (k *Kernel) Weight(row, col int) float64 {
	if row < 0 || row >= k.rows || col < 0 || col >= k.columns {
		return 0
	}
	return k.weights[row*k.columns+col]
}

// Weights returns a row-major copy of the binary weights.
func (k *Kernel) Weights() []float64 {
	return append([]float64(nil), k.weights...)
}

// Sum is the number of cells in the window.
func (k *Kernel) Sum() float64 {
	return floats.Sum(k.weights)
}

// Normalized returns a row-major copy of the weights scaled to sum to one.
func (k *Kernel) Normalized() []float64 {
	w := k.Weights()
	floats.Scale(1/floats.Sum(w), w)
	return w
}

func (k *Kernel) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d %v kernel (%v cells)\n", k.columns, k.rows, k.method, k.Sum())
	for r := 0; r < k.rows; r++ {
		for c := 0; c < k.columns; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", k.Weight(r, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// tap is one non-zero cell of a normalised kernel, relative to its centre.
type tap struct {
	dx, dy int
	w      float64
}

func (k *Kernel) taps() []tap {
	w := k.Normalized()
	halfX, halfY := k.columns/2, k.rows/2
	taps := make([]tap, 0, len(w))
	for r := 0; r < k.rows; r++ {
		for c := 0; c < k.columns; c++ {
			if w[r*k.columns+c] != 0 {
				taps = append(taps, tap{c - halfX, r - halfY, w[r*k.columns+c]})
			}
		}
	}
	return taps
}
