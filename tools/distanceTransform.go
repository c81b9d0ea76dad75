// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import "math"

// stands in for infinity so that parabola intersections stay finite
const edtFar = 1e20

// euclideanDistance returns, for every cell, the exact Euclidean distance
// to the nearest target cell. Cells are spacingX apart along a row and
// spacingY apart along a column. It uses the separable lower-envelope
// method of Felzenszwalb and Huttenlocher: a 1-D squared distance transform
// down each column and then along each row.
func euclideanDistance(target []bool, rows, columns int, spacingX, spacingY float64) []float64 {
	d := make([]float64, rows*columns)
	for i, t := range target {
		if !t {
			d[i] = edtFar
		}
	}

	n := rows
	if columns > n {
		n = columns
	}
	f := make([]float64, n)
	out := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for col := 0; col < columns; col++ {
		for row := 0; row < rows; row++ {
			f[row] = d[row*columns+col]
		}
		squaredDistance1D(f[:rows], out[:rows], v, z, spacingY)
		for row := 0; row < rows; row++ {
			d[row*columns+col] = out[row]
		}
	}
	for row := 0; row < rows; row++ {
		copy(f, d[row*columns:(row+1)*columns])
		squaredDistance1D(f[:columns], out[:columns], v, z, spacingX)
		for col := 0; col < columns; col++ {
			d[row*columns+col] = math.Sqrt(out[col])
		}
	}
	return d
}

// squaredDistance1D computes out[q] = min over p of (q-p)^2*h^2 + f[p].
// v holds the parabolas of the lower envelope and z their boundaries.
func squaredDistance1D(f, out []float64, v []int, z []float64, h float64) {
	n := len(f)
	if n == 0 {
		return
	}
	h2 := h * h
	intersect := func(q, p int) float64 {
		return ((f[q] + float64(q*q)*h2) - (f[p] + float64(p*p)*h2)) / (2 * h2 * float64(q-p))
	}
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := intersect(q, v[k])
		for s <= z[k] {
			k--
			s = intersect(q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		p := v[k]
		out[q] = float64((q-p)*(q-p))*h2 + f[p]
	}
}
