// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// PipelineOptions collects the parameters of a TerrainPipeline run.
type PipelineOptions struct {
	Windows           []int
	Contiguity        Contiguity
	FIA               float64 // hectares
	AngleUnit         AngleUnit
	EdgeMode          EdgeMode
	DTWMapUnits       bool
	MaxFillIterations int
	Deviation         bool
}

// DefaultPipelineOptions returns 3, 9 and 15 cell queen windows, a 1 ha
// flow initiation area and slopes in degrees.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Windows:    []int{3, 9, 15},
		Contiguity: Queen,
		FIA:        1,
		AngleUnit:  Degrees,
		EdgeMode:   EdgeNoData,
	}
}

// Validate checks the options before any raster work is done.
func (o PipelineOptions) Validate() error {
	if len(o.Windows) == 0 {
		return fmt.Errorf("no window sizes: %w", ErrInvalidWindowSize)
	}
	for _, w := range o.Windows {
		if w < 3 || w%2 == 0 {
			return fmt.Errorf("window %d: %w", w, ErrInvalidWindowSize)
		}
	}
	if o.Contiguity < Queen || o.Contiguity > Annulus {
		return fmt.Errorf("%v: %w", o.Contiguity, ErrUnknownContiguity)
	}
	if !(o.FIA > 0) {
		return fmt.Errorf("fia %v ha must be positive: %w", o.FIA, ErrInvalidParameter)
	}
	if o.MaxFillIterations < 0 {
		return fmt.Errorf("max fill iterations %d: %w", o.MaxFillIterations, ErrInvalidParameter)
	}
	return nil
}

// ProgressFunc is told when a pipeline stage starts. done stages of total
// are complete.
type ProgressFunc func(stage string, done, total int)

// TerrainPipeline runs every terrain attribute from a raw DEM: fill, flow
// accumulation, slope, TWI, DTW and the multi-scale indices.
type TerrainPipeline struct {
	Options  PipelineOptions
	Progress ProgressFunc
}

// PipelineResult holds the named outputs of a pipeline run in the order
// they were produced.
type PipelineResult struct {
	Outputs []*raster.Raster
	Fill    FillReport
	Scales  []*TerrainIndexSet
}

// Get returns the output with the given name, or nil.
func (r *PipelineResult) Get(name string) *raster.Raster {
	for _, out := range r.Outputs {
		if out.Name == name {
			return out
		}
	}
	return nil
}

// Names lists the output names in order.
func (r *PipelineResult) Names() []string {
	names := make([]string, len(r.Outputs))
	for i, out := range r.Outputs {
		names[i] = out.Name
	}
	return names
}

// Run derives all outputs from dem. slopePercent may be nil, in which case
// the percent slope for DTW is computed from the filled DEM.
func (p *TerrainPipeline) Run(dem, slopePercent *raster.Raster) (*PipelineResult, error) {
	opts := p.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if slopePercent != nil {
		if err := checkSameGrid(dem, slopePercent); err != nil {
			return nil, err
		}
	}
	total := 5 + len(opts.Windows)
	done := 0
	stage := func(name string) {
		if p.Progress != nil {
			p.Progress(name, done, total)
		}
		done++
	}
	res := &PipelineResult{}
	res.Outputs = append(res.Outputs, dem.Clone("Elevation"))

	stage("fill depressions")
	filled, report, err := FillDepressions(dem, FillOptions{MaxIterations: opts.MaxFillIterations})
	if err != nil {
		return nil, fmt.Errorf("fill depressions: %w", err)
	}
	res.Fill = report
	res.Outputs = append(res.Outputs, filled)

	stage("flow accumulation")
	accum, err := D8FlowAccumulation(filled, FlowAccumOptions{})
	if err != nil {
		return nil, fmt.Errorf("flow accumulation: %w", err)
	}
	res.Outputs = append(res.Outputs, accum)

	stage("slope")
	slopeRad, err := Slope(filled, Radians)
	if err != nil {
		return nil, fmt.Errorf("slope: %w", err)
	}
	slope := slopeRad
	if opts.AngleUnit != Radians {
		if slope, err = Slope(filled, opts.AngleUnit); err != nil {
			return nil, fmt.Errorf("slope: %w", err)
		}
	}
	res.Outputs = append(res.Outputs, slope)

	stage("topographic wetness index")
	twi, err := TopographicWetnessIndex(accum, slopeRad)
	if err != nil {
		return nil, fmt.Errorf("twi: %w", err)
	}
	res.Outputs = append(res.Outputs, twi)

	stage("depth to water")
	if slopePercent == nil {
		if slopePercent, err = SlopePercent(filled); err != nil {
			return nil, fmt.Errorf("percent slope: %w", err)
		}
	}
	dtw, err := DepthToWater(filled, accum, slopePercent, DTWOptions{FIA: opts.FIA, MapUnits: opts.DTWMapUnits})
	if err != nil {
		return nil, fmt.Errorf("dtw: %w", err)
	}
	res.Outputs = append(res.Outputs, dtw)

	terrainOpts := TerrainOptions{AngleUnit: opts.AngleUnit, EdgeMode: opts.EdgeMode, Deviation: opts.Deviation}
	for _, w := range opts.Windows {
		stage(fmt.Sprintf("terrain indices %dx%d", w, w))
		kernel, err := NewKernel(w, w, opts.Contiguity)
		if err != nil {
			return nil, err
		}
		set, err := TerrainIndices(filled, w, kernel, terrainOpts)
		if err != nil {
			return nil, fmt.Errorf("terrain indices %dx%d: %w", w, w, err)
		}
		res.Scales = append(res.Scales, set)
		res.Outputs = append(res.Outputs, set.Rasters()...)
	}
	if p.Progress != nil {
		p.Progress("done", done, total)
	}
	return res, nil
}
