// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was originally created by John Lindsay<jlindsay@uoguelph.ca>,
// Feb. 2015.

package tools

import "math"

// differenceFromMean returns z minus its kernel-weighted local mean.
func differenceFromMean(z *field, k *Kernel, mode EdgeMode) *field {
	mean := convolve(z, k, mode)
	out := newField(z.rows, z.columns)
	for i := range out.v {
		if z.ok[i] && mean.ok[i] {
			out.v[i] = z.v[i] - mean.v[i]
			out.ok[i] = true
		}
	}
	return out
}

// deviationFromMean returns (z - mean) / stdev over the kernel window, a
// standardised topographic position. Cells in a window with no variance
// (down to round-off) are 0.
func deviationFromMean(z *field, k *Kernel, mode EdgeMode) *field {
	// shift by the mid-range to limit round-off in the variance
	minValue, maxValue := math.Inf(1), math.Inf(-1)
	for i, ok := range z.ok {
		if ok {
			minValue = math.Min(minValue, z.v[i])
			maxValue = math.Max(maxValue, z.v[i])
		}
	}
	mid := minValue + (maxValue-minValue)/2

	shifted := newField(z.rows, z.columns)
	squared := newField(z.rows, z.columns)
	for i, ok := range z.ok {
		if ok {
			shifted.v[i] = z.v[i] - mid
			squared.v[i] = shifted.v[i] * shifted.v[i]
		}
	}
	copy(shifted.ok, z.ok)
	copy(squared.ok, z.ok)
	mean := convolve(shifted, k, mode)
	meanSqr := convolve(squared, k, mode)

	out := newField(z.rows, z.columns)
	for i := range out.v {
		if !mean.ok[i] || !meanSqr.ok[i] {
			continue
		}
		out.ok[i] = true
		v := meanSqr.v[i] - mean.v[i]*mean.v[i]
		if v > 1e-12*math.Max(1, meanSqr.v[i]) {
			out.v[i] = (shifted.v[i] - mean.v[i]) / math.Sqrt(v)
		}
	}
	return out
}
