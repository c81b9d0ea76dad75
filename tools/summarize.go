// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/montanaflynn/stats"
)

// Summary describes the distribution of the valid cells of a raster.
type Summary struct {
	Name   string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64
	P5     float64
	P95    float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: n=%d min=%.4g max=%.4g mean=%.4g sd=%.4g median=%.4g p5=%.4g p95=%.4g",
		s.Name, s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.Median, s.P5, s.P95)
}

// Summarize computes summary statistics over the valid cells of r. The
// percentiles use the nearest-rank definition.
func Summarize(r *raster.Raster) (Summary, error) {
	s := Summary{Name: r.Name}
	data := make(stats.Float64Data, 0, r.NumValidCells())
	for _, z := range r.Data() {
		if !r.IsNoData(z) {
			data = append(data, z)
		}
	}
	s.Count = len(data)
	if s.Count == 0 {
		return s, fmt.Errorf("%s has no valid cells: %w", r.Name, ErrInvalidParameter)
	}

	var err error
	for _, stat := range []struct {
		dst *float64
		fn  func(stats.Float64Data) (float64, error)
	}{
		{&s.Min, stats.Min},
		{&s.Max, stats.Max},
		{&s.Mean, stats.Mean},
		{&s.StdDev, stats.StandardDeviation},
		{&s.Median, stats.Median},
		{&s.P5, func(d stats.Float64Data) (float64, error) { return stats.PercentileNearestRank(d, 5) }},
		{&s.P95, func(d stats.Float64Data) (float64, error) { return stats.PercentileNearestRank(d, 95) }},
	} {
		if *stat.dst, err = stat.fn(data); err != nil {
			return s, fmt.Errorf("summarize %s: %w", r.Name, err)
		}
	}
	return s, nil
}
