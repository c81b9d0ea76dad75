// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"math"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// DTWOptions controls DepthToWater.
type DTWOptions struct {
	// FIA is the flow initiation area in hectares: the upstream area a
	// cell needs before it is treated as a channel.
	FIA float64
	// MapUnits measures the distance to the nearest channel in map units
	// rather than in cells.
	MapUnits bool
}

// DepthToWater estimates the depth to the water table. Cells whose flow
// accumulation reaches FIA*10000/cellArea form the channel network; every
// other cell gets its straight-line distance to the nearest channel cell
// multiplied by its slope fraction (slopePercent/100). Channel cells are 0.
//
// filled sets the valid area of the output. accum must hold cell counts,
// not a log-transformed accumulation.
func DepthToWater(filled, accum, slopePercent *raster.Raster, opts DTWOptions) (*raster.Raster, error) {
	if err := checkSameGrid(filled, accum, slopePercent); err != nil {
		return nil, err
	}
	if opts.FIA <= 0 || math.IsNaN(opts.FIA) || math.IsInf(opts.FIA, 0) {
		return nil, fmt.Errorf("flow initiation area %v ha must be positive: %w", opts.FIA, ErrInvalidParameter)
	}
	for _, r := range []*raster.Raster{filled, accum, slopePercent} {
		if err := checkFinite(r); err != nil {
			return nil, err
		}
	}
	rows := filled.Rows
	columns := filled.Columns
	cellSizeX := math.Abs(filled.GetCellSizeX())
	cellSizeY := math.Abs(filled.GetCellSizeY())
	threshold := HectaresToCells(opts.FIA, cellSizeX, cellSizeY)

	acc := accum.Data()
	channel := make([]bool, rows*columns)
	numChannelCells := 0
	for i, a := range acc {
		if filled.IsValid(i/columns, i%columns) && !accum.IsNoData(a) && a >= threshold {
			channel[i] = true
			numChannelCells++
		}
	}
	if numChannelCells == 0 {
		return nil, fmt.Errorf("%w: fia %v ha needs an accumulation of %.6g cells, maximum is %.6g",
			ErrEmptyChannelMask, opts.FIA, threshold, accum.GetMaximumValue())
	}

	spacingX, spacingY := 1.0, 1.0
	if opts.MapUnits {
		spacingX, spacingY = cellSizeX, cellSizeY
	}
	dist := euclideanDistance(channel, rows, columns, spacingX, spacingY)

	rout := raster.NewRasterLike(filled, "DTW")
	out := rout.Data()
	slope := slopePercent.Data()
	for i := range out {
		if !filled.IsValid(i/columns, i%columns) {
			continue
		}
		if channel[i] {
			out[i] = 0
		} else if !slopePercent.IsNoData(slope[i]) {
			out[i] = dist[i] * slope[i] / 100
		}
	}
	rout.AddMetadataEntry(fmt.Sprintf("Created by DepthToWater (fia %v ha, threshold %.6g cells, %d channel cells)",
		opts.FIA, threshold, numChannelCells))
	return rout, nil
}
