// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"strings"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// EdgeMode selects how a moving window treats cells beyond the grid edge
// or covered by nodata.
type EdgeMode int

const (
	// EdgeNoData makes the output nodata wherever the window reaches past
	// the grid edge or onto a nodata cell.
	EdgeNoData EdgeMode = iota
	// EdgeRenormalize averages whatever valid cells the window covers,
	// rescaling the weights of those cells to sum to one.
	EdgeRenormalize
)

func (m EdgeMode) String() string {
	if m == EdgeRenormalize {
		return "renormalize"
	}
	return "nodata"
}

func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nodata", "":
		return EdgeNoData, nil
	case "renormalize", "renormalise":
		return EdgeRenormalize, nil
	}
	return EdgeNoData, fmt.Errorf("edge mode %q: %w", s, ErrInvalidParameter)
}

// convolve returns the kernel-weighted mean of in around every valid cell.
func convolve(in *field, k *Kernel, mode EdgeMode) *field {
	taps := k.taps()
	out := newField(in.rows, in.columns)
	parallelRows(in.rows, func(rowSt, rowEnd int) {
		for row := rowSt; row <= rowEnd; row++ {
			for col := 0; col < in.columns; col++ {
				i := row*in.columns + col
				if !in.ok[i] {
					continue
				}
				total, weight := 0.0, 0.0
				complete := true
				for _, t := range taps {
					zN, ok := in.at(row+t.dy, col+t.dx)
					if !ok {
						complete = false
						if mode == EdgeNoData {
							break
						}
						continue
					}
					total += t.w * zN
					weight += t.w
				}
				switch {
				case complete:
					out.v[i] = total
					out.ok[i] = true
				case mode == EdgeRenormalize && weight > 0:
					out.v[i] = total / weight
					out.ok[i] = true
				}
			}
		}
	})
	return out
}

// MeanFilter smooths r with the normalised kernel.
func MeanFilter(r *raster.Raster, k *Kernel, mode EdgeMode) (*raster.Raster, error) {
	if err := checkFinite(r); err != nil {
		return nil, err
	}
	out := convolve(fieldFromRaster(r), k, mode).toRaster(r, r.Name+"_mean")
	out.AddMetadataEntry(fmt.Sprintf("Created by MeanFilter (%dx%d %v, edges %v)", k.Columns(), k.Rows(), k.Method(), mode))
	return out, nil
}
