// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was originally created by John Lindsay<jlindsay@uoguelph.ca>,
// Feb. 2015.

package tools

import (
	"fmt"
	"math"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// Quantiles classifies the valid cells of rin into numBins equal-count
// classes numbered 1..numBins. Class breaks come from a 10000-bin
// cumulative histogram, so the classes are approximate for heavily tied
// data.
func Quantiles(rin *raster.Raster, numBins int) (*raster.Raster, error) {
	if numBins < 2 {
		return nil, fmt.Errorf("quantiles: %d bins: %w", numBins, ErrInvalidParameter)
	}
	if err := checkFinite(rin); err != nil {
		return nil, err
	}
	numValidCells := rin.NumValidCells()
	if numValidCells == 0 {
		return nil, fmt.Errorf("quantiles: %s has no valid cells: %w", rin.Name, ErrInvalidParameter)
	}
	minValue := rin.GetMinimumValue()
	valueRange := rin.GetMaximumValue() - minValue

	highResNumBins := 10000
	highResBinSize := valueRange / float64(highResNumBins)
	binOf := func(z float64) int {
		if highResBinSize == 0 {
			return 0
		}
		bin := int(math.Floor((z - minValue) / highResBinSize))
		if bin >= highResNumBins {
			bin = highResNumBins - 1
		}
		return bin
	}

	primaryHisto := make([]int, highResNumBins)
	data := rin.Data()
	for _, z := range data {
		if !rin.IsNoData(z) {
			primaryHisto[binOf(z)]++
		}
	}
	for i := 1; i < highResNumBins; i++ {
		primaryHisto[i] += primaryHisto[i-1]
	}

	// map each high-resolution bin to its quantile class
	quantileProportion := 100.0 / float64(numBins)
	for i := 0; i < highResNumBins; i++ {
		cdf := 100.0 * float64(primaryHisto[i]) / float64(numValidCells)
		primaryHisto[i] = int(math.Floor(cdf / quantileProportion))
		if primaryHisto[i] >= numBins {
			primaryHisto[i] = numBins - 1
		}
	}

	rout := raster.NewRasterLike(rin, rin.Name+"_quantiles")
	out := rout.Data()
	for i, z := range data {
		if !rin.IsNoData(z) {
			out[i] = float64(primaryHisto[binOf(z)] + 1)
		}
	}
	rout.AddMetadataEntry(fmt.Sprintf("Created by Quantiles with %v bins", numBins))
	return rout, nil
}
