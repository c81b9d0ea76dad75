// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"math"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// hornGradient returns dz/dx (east positive) and dz/dy (north positive) at
// a valid cell from the Horn 3x3 stencil. Neighbours that are nodata or off
// the grid take the centre value.
func hornGradient(dem *raster.Raster, row, col int, eightResX, eightResY float64) (fx, fy float64) {
	var N [8]float64
	z := dem.Value(row, col)
	for n := 0; n < 8; n++ {
		if dem.IsValid(row+dY[n], col+dX[n]) {
			N[n] = dem.Value(row+dY[n], col+dX[n])
		} else {
			N[n] = z
		}
	}
	fy = (N[6] - N[4] + 2*(N[7]-N[3]) + N[0] - N[2]) / eightResY
	fx = (N[2] - N[4] + 2*(N[1]-N[5]) + N[0] - N[6]) / eightResX
	return fx, fy
}

// gradientRaster applies fn to the Horn gradient magnitude of every valid
// cell.
func gradientRaster(dem *raster.Raster, name string, fn func(gradient float64) float64) (*raster.Raster, error) {
	if err := checkFinite(dem); err != nil {
		return nil, err
	}
	eightResX := 8 * math.Abs(dem.GetCellSizeX())
	eightResY := 8 * math.Abs(dem.GetCellSizeY())
	rout := raster.NewRasterLike(dem, name)
	parallelRows(dem.Rows, func(rowSt, rowEnd int) {
		for row := rowSt; row <= rowEnd; row++ {
			floatData := rout.Grid().GetRowData(row)
			for col := 0; col < dem.Columns; col++ {
				if dem.IsValid(row, col) {
					fx, fy := hornGradient(dem, row, col, eightResX, eightResY)
					floatData[col] = fn(math.Sqrt(fx*fx + fy*fy))
				}
			}
			rout.Grid().SetRowData(row, floatData)
		}
	})
	return rout, nil
}

// Slope returns the local slope angle of dem in the requested unit.
func Slope(dem *raster.Raster, unit AngleUnit) (*raster.Raster, error) {
	return gradientRaster(dem, "Slope", func(g float64) float64 {
		return unit.convert(math.Atan(g))
	})
}

// SlopePercent returns the local slope as a percentage rise (100 * tan).
func SlopePercent(dem *raster.Raster) (*raster.Raster, error) {
	return gradientRaster(dem, "SlopePercent", func(g float64) float64 {
		return 100 * g
	})
}
