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
	"github.com/digitalearthafrica/wetland/structures"
)

// FlowAccumOptions controls D8FlowAccumulation.
type FlowAccumOptions struct {
	// AreaUnits accumulates cell area (squared map units) instead of a
	// cell count.
	AreaUnits bool
	// LnTransform replaces each accumulation value by its natural log.
	LnTransform bool
}

// D8FlowDirections assigns every valid cell of a filled DEM the code
// (1..8, see dX and dY) of its steepest-descent neighbour, with the drop
// divided by the distance between cell centres. Ties go to the neighbour
// that comes first in compass order.
//
// Cells without a lower neighbour are routed across flats: a breadth-first
// search over equal-elevation cells grows outward from the flat cells that
// already drain downhill, and then from flat cells on the grid edge or next
// to nodata. Each newly reached cell points at the cell that reached it.
// Cells left with code 0 are outflow points (or pits, if the DEM was not
// filled).
func D8FlowDirections(filled *raster.Raster) (*structures.RectangularArrayByte, error) {
	if err := checkFinite(filled); err != nil {
		return nil, err
	}
	var z, zN, slope, maxSlope float64
	var dir byte
	rows := filled.Rows
	columns := filled.Columns
	cellSizeX := math.Abs(filled.GetCellSizeX())
	cellSizeY := math.Abs(filled.GetCellSizeY())
	diagDist := math.Sqrt(cellSizeX*cellSizeX + cellSizeY*cellSizeY)
	dist := [8]float64{diagDist, cellSizeX, diagDist, cellSizeY, diagDist, cellSizeX, diagDist, cellSizeY}

	flowdir := structures.NewRectangularArrayByte(rows, columns)
	edge := make([]bool, rows*columns)
	steep := structures.NewCellQueue()
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			z = filled.Value(row, col)
			if filled.IsNoData(z) {
				continue
			}
			maxSlope = math.Inf(-1)
			for n := 0; n < 8; n++ {
				if !filled.IsValid(row+dY[n], col+dX[n]) {
					edge[row*columns+col] = true
					continue
				}
				zN = filled.Value(row+dY[n], col+dX[n])
				slope = (z - zN) / dist[n]
				if slope > maxSlope {
					maxSlope = slope
					dir = byte(n) + 1
				}
			}
			if maxSlope > 0 {
				flowdir.SetValue(row, col, dir)
				steep.Push(row, col)
			}
		}
	}

	// flats draining to a lower cell
	resolveFlats(filled, flowdir, steep)

	// flats draining off the edge of the data; the outlets themselves stay
	// terminal
	outlets := structures.NewCellQueue()
	for i, isEdge := range edge {
		if isEdge && flowdir.Value(i/columns, i%columns) == 0 {
			flowdir.SetValue(i/columns, i%columns, outletMarker)
			outlets.Push(i/columns, i%columns)
		}
	}
	resolveFlats(filled, flowdir, outlets)
	for i, isEdge := range edge {
		if isEdge && flowdir.Value(i/columns, i%columns) == outletMarker {
			flowdir.SetValue(i/columns, i%columns, 0)
		}
	}
	return flowdir, nil
}

// placeholder code marking terminal cells during flat resolution
const outletMarker byte = 255

// resolveFlats grows flow directions from the queued cells into
// undirected cells of the same elevation, breadth first.
func resolveFlats(filled *raster.Raster, flowdir *structures.RectangularArrayByte, queue *structures.CellQueue) {
	for queue.Len() > 0 {
		row, col := queue.Pop()
		z := filled.Value(row, col)
		for n := 0; n < 8; n++ {
			rowN := row + dY[n]
			colN := col + dX[n]
			if !filled.IsValid(rowN, colN) || flowdir.Value(rowN, colN) != 0 {
				continue
			}
			if filled.Value(rowN, colN) == z {
				// point back at (row, col)
				flowdir.SetValue(rowN, colN, byte((n+4)%8)+1)
				queue.Push(rowN, colN)
			}
		}
	}
}

// D8FlowAccumulation returns, for each valid cell of a filled DEM, the
// number of cells (itself included) whose D8 flow path passes through it.
// Cells are processed in topological order with an in-degree work list, so
// every upstream cell is finished before its receiver.
func D8FlowAccumulation(filled *raster.Raster, opts FlowAccumOptions) (*raster.Raster, error) {
	flowdir, err := D8FlowDirections(filled)
	if err != nil {
		return nil, err
	}
	return accumulate(filled, flowdir, opts), nil
}

func accumulate(filled *raster.Raster, flowdir *structures.RectangularArrayByte, opts FlowAccumOptions) *raster.Raster {
	var r, c int
	var dir byte
	rows := filled.Rows
	columns := filled.Columns

	initialValue := 1.0
	if opts.AreaUnits {
		initialValue = filled.CellArea()
	}
	rout := raster.NewRasterLike(filled, "FlowAccumulation")
	acc := rout.Grid()

	// count the inflowing neighbours of every cell
	numInflowing := structures.NewRectangularArrayByte(rows, columns)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			if dir = flowdir.Value(row, col); dir > 0 {
				numInflowing.Increment(row+dY[dir-1], col+dX[dir-1])
			}
		}
	}

	// initialize the flow queue with cells with no inflowing neighbours
	fq := structures.NewCellQueue()
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			if filled.IsValid(row, col) {
				acc.SetValue(row, col, initialValue)
				if numInflowing.Value(row, col) == 0 {
					fq.Push(row, col)
				}
			}
		}
	}

	for fq.Len() > 0 {
		row, col := fq.Pop()
		dir = flowdir.Value(row, col)
		if dir > 0 {
			r = row + dY[dir-1]
			c = col + dX[dir-1]
			acc.Increment(r, c, acc.Value(row, col))
			numInflowing.Decrement(r, c)
			// see if you can progress further downslope
			if numInflowing.Value(r, c) == 0 {
				fq.Push(r, c)
			}
		}
	}

	if opts.LnTransform {
		data := rout.Data()
		for i, z := range data {
			if !rout.IsNoData(z) {
				data[i] = math.Log(z)
			}
		}
	}
	rout.AddMetadataEntry(fmt.Sprintf("Created by D8FlowAccumulation (area units: %v, ln-transform: %v)",
		opts.AreaUnits, opts.LnTransform))
	return rout
}

// HectaresToCells converts an area in hectares into a number of cells of
// size cellSizeX by cellSizeY map units (metres).
func HectaresToCells(hectares, cellSizeX, cellSizeY float64) float64 {
	return hectares * 10000 / (math.Abs(cellSizeX) * math.Abs(cellSizeY))
}
