// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"math"
	"strconv"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// TerrainOptions controls TerrainIndices.
type TerrainOptions struct {
	AngleUnit AngleUnit
	EdgeMode  EdgeMode
	// Deviation adds the standardised deviation from the local mean
	// elevation (DEV) to the set.
	Deviation bool
}

// TerrainIndexSet holds the terrain indices computed at one window size.
type TerrainIndexSet struct {
	WindowSize        int
	Method            Contiguity
	Smoothed          *raster.Raster
	Slope             *raster.Raster
	Aspect            *raster.Raster
	Curvature         *raster.Raster
	ProfileCurvature  *raster.Raster
	PlanformCurvature *raster.Raster
	TPI               *raster.Raster
	DEV               *raster.Raster // nil unless requested
}

// Rasters returns the members of the set in a fixed order.
func (s *TerrainIndexSet) Rasters() []*raster.Raster {
	ret := []*raster.Raster{s.Smoothed, s.Slope, s.Aspect, s.Curvature,
		s.ProfileCurvature, s.PlanformCurvature, s.TPI}
	if s.DEV != nil {
		ret = append(ret, s.DEV)
	}
	return ret
}

// ScaleSuffix names a window by its ground size, e.g. "90m" for a 3x3
// window on a 30 m grid.
func ScaleSuffix(window int, cellSize float64) string {
	return strconv.FormatFloat(float64(window)*math.Abs(cellSize), 'g', 6, 64) + "m"
}

// TerrainIndices derives the terrain indices of a filled DEM at the scale of
// kernel, whose size must equal window. With K the normalised kernel:
//
//	Z         = K * dem
//	p, q      = dZ/dx, dZ/dy (central differences, y pointing north)
//	slope     = atan(sqrt(p^2 + q^2))
//	aspect    = -pi/2 - atan2(q, p), wrapped to [0, 2pi), clockwise from north
//	r, t      = (K*p - p)/hx, (K*q - q)/hy
//	s         = ((K*p - p)/hy + (K*q - q)/hx) / 2
//	curvature = r + t
//	profile   = r cos^2(a) + 2s sin(a)cos(a) + t sin^2(a), a = atan2(q, p)
//	planform  = r sin^2(a) - 2s sin(a)cos(a) + t cos^2(a)
//	TPI       = Z - K*Z
func TerrainIndices(filled *raster.Raster, window int, kernel *Kernel, opts TerrainOptions) (*TerrainIndexSet, error) {
	if window < 3 || window%2 == 0 {
		return nil, fmt.Errorf("window %d: %w", window, ErrInvalidWindowSize)
	}
	if kernel == nil || kernel.Columns() != window || kernel.Rows() != window {
		return nil, fmt.Errorf("kernel does not match the %dx%d window: %w", window, window, ErrInvalidParameter)
	}
	if err := checkFinite(filled); err != nil {
		return nil, err
	}
	hx := math.Abs(filled.GetCellSizeX())
	hy := math.Abs(filled.GetCellSizeY())
	suffix := "_" + ScaleSuffix(window, hx)

	z := convolve(fieldFromRaster(filled), kernel, opts.EdgeMode)
	p, q := gradient(z, hx, hy)
	kp := convolve(p, kernel, opts.EdgeMode)
	kq := convolve(q, kernel, opts.EdgeMode)
	tpi := differenceFromMean(z, kernel, opts.EdgeMode)

	n := filled.Rows * filled.Columns
	slope := newField(filled.Rows, filled.Columns)
	aspect := newField(filled.Rows, filled.Columns)
	curv := newField(filled.Rows, filled.Columns)
	prof := newField(filled.Rows, filled.Columns)
	plan := newField(filled.Rows, filled.Columns)
	for i := 0; i < n; i++ {
		if !p.ok[i] || !q.ok[i] {
			continue
		}
		slope.v[i] = opts.AngleUnit.convert(math.Atan(math.Hypot(p.v[i], q.v[i])))
		slope.ok[i] = true
		a := -math.Pi/2 - math.Atan2(q.v[i], p.v[i])
		for a < 0 {
			a += 2 * math.Pi
		}
		aspect.v[i] = opts.AngleUnit.convert(a)
		aspect.ok[i] = true

		if !kp.ok[i] || !kq.ok[i] {
			continue
		}
		dp := kp.v[i] - p.v[i]
		dq := kq.v[i] - q.v[i]
		r := dp / hx
		t := dq / hy
		s := (dp/hy + dq/hx) / 2
		theta := math.Atan2(q.v[i], p.v[i])
		sin, cos := math.Sincos(theta)
		curv.v[i] = r + t
		prof.v[i] = r*cos*cos + 2*s*sin*cos + t*sin*sin
		plan.v[i] = r*sin*sin - 2*s*sin*cos + t*cos*cos
		curv.ok[i], prof.ok[i], plan.ok[i] = true, true, true
	}

	set := &TerrainIndexSet{
		WindowSize:        window,
		Method:            kernel.Method(),
		Smoothed:          z.toRaster(filled, "Elevation"+suffix),
		Slope:             slope.toRaster(filled, "Slope"+suffix),
		Aspect:            aspect.toRaster(filled, "Aspect"+suffix),
		Curvature:         curv.toRaster(filled, "Curvature"+suffix),
		ProfileCurvature:  prof.toRaster(filled, "Profile_curvature"+suffix),
		PlanformCurvature: plan.toRaster(filled, "Planform_curvature"+suffix),
		TPI:               tpi.toRaster(filled, "TPI"+suffix),
	}
	if opts.Deviation {
		set.DEV = deviationFromMean(fieldFromRaster(filled), kernel, opts.EdgeMode).toRaster(filled, "DEV"+suffix)
	}
	for _, r := range set.Rasters() {
		r.AddMetadataEntry(fmt.Sprintf("Created by TerrainIndices (%dx%d %v, edges %v, angles in %v)",
			window, window, kernel.Method(), opts.EdgeMode, opts.AngleUnit))
	}
	return set, nil
}

// MultiScaleTerrainIndices runs TerrainIndices once per window size with a
// fresh kernel of the given contiguity. Scales share no state.
func MultiScaleTerrainIndices(filled *raster.Raster, windows []int, method Contiguity, opts TerrainOptions) ([]*TerrainIndexSet, error) {
	sets := make([]*TerrainIndexSet, 0, len(windows))
	for _, w := range windows {
		kernel, err := NewKernel(w, w, method)
		if err != nil {
			return nil, err
		}
		set, err := TerrainIndices(filled, w, kernel, opts)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", w, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// gradient returns dz/dx and dz/dy by central differences, falling back to
// a one-sided difference where a neighbour is missing. A cell with no
// valid neighbour along an axis has no gradient.
func gradient(z *field, hx, hy float64) (p, q *field) {
	p = newField(z.rows, z.columns)
	q = newField(z.rows, z.columns)
	diff := func(zPlus, zMinus, zc float64, okPlus, okMinus bool, h float64) (float64, bool) {
		switch {
		case okPlus && okMinus:
			return (zPlus - zMinus) / (2 * h), true
		case okPlus:
			return (zPlus - zc) / h, true
		case okMinus:
			return (zc - zMinus) / h, true
		}
		return 0, false
	}
	for row := 0; row < z.rows; row++ {
		for col := 0; col < z.columns; col++ {
			i := row*z.columns + col
			if !z.ok[i] {
				continue
			}
			east, okEast := z.at(row, col+1)
			west, okWest := z.at(row, col-1)
			north, okNorth := z.at(row-1, col)
			south, okSouth := z.at(row+1, col)
			dx, okX := diff(east, west, z.v[i], okEast, okWest, hx)
			dy, okY := diff(north, south, z.v[i], okNorth, okSouth, hy)
			if okX && okY {
				p.v[i], p.ok[i] = dx, true
				q.v[i], q.ok[i] = dy, true
			}
		}
	}
	return p, q
}
