// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"math"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// twiEpsilon keeps the TWI finite on flat cells.
const twiEpsilon = 0.01

// TopographicWetnessIndex computes ln(accumulation / (tan(slope) + 0.01))
// with slope in radians. Values are rounded to single precision. A cell is
// nodata when either input is nodata there.
func TopographicWetnessIndex(accum, slopeRad *raster.Raster) (*raster.Raster, error) {
	if err := checkSameGrid(accum, slopeRad); err != nil {
		return nil, err
	}
	if err := checkFinite(accum); err != nil {
		return nil, err
	}
	if err := checkFinite(slopeRad); err != nil {
		return nil, err
	}
	rout := raster.NewRasterLike(accum, "TWI")
	out := rout.Data()
	acc := accum.Data()
	slope := slopeRad.Data()
	for i := range out {
		if accum.IsNoData(acc[i]) || slopeRad.IsNoData(slope[i]) {
			continue
		}
		if acc[i] <= 0 || slope[i] < 0 {
			return nil, fmt.Errorf("cell (%d, %d): accumulation %v, slope %v: %w",
				i/rout.Columns, i%rout.Columns, acc[i], slope[i], ErrInvalidParameter)
		}
		out[i] = float64(float32(math.Log(acc[i] / (math.Tan(slope[i]) + twiEpsilon))))
	}
	return rout, nil
}
