// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"math"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/structures"
)

// FillOptions controls FillDepressions.
type FillOptions struct {
	// MaxIterations caps the raise-and-relabel loop. Zero means
	// rows*columns+1, which no well-formed DEM can reach.
	MaxIterations int
}

// FillReport describes the work done by FillDepressions.
type FillReport struct {
	Iterations  int
	// Depressions is the number found by the first labelling pass.
	Depressions int
	RaisedCells int
	// Volume is the filled volume in z units times squared map units.
	Volume float64
}

// FillDepressions removes every closed depression from dem so that each
// valid cell has a non-increasing path to the grid edge or to a nodata cell.
//
// Each iteration labels the 8-connected components of equal elevation. A
// component with no strictly lower neighbour that touches neither the grid
// edge nor a nodata cell is a depression. When depressions are found they
// are raised to their spill levels in one priority flood grown inward from
// the edge and nodata outlets, which also raises depressions nested inside
// others. The loop stops when an iteration finds no depression, normally on
// the second pass. Nodata cells are never labelled or modified.
func FillDepressions(dem *raster.Raster, opts FillOptions) (*raster.Raster, FillReport, error) {
	var report FillReport
	if err := checkFinite(dem); err != nil {
		return nil, report, err
	}
	rows := dem.Rows
	columns := dem.Columns
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = rows*columns + 1
	}

	filled := dem.Clone("Filled")
	grid := filled.Grid()
	label := structures.NewRectangularArrayInt(rows, columns)
	queue := structures.NewCellQueue()
	closed := make([]bool, rows*columns)
	pq := structures.NewCellPQueue()

	for {
		if report.Iterations >= maxIterations {
			return nil, report, fmt.Errorf("%w after %d iterations", ErrFillDidNotConverge, report.Iterations)
		}
		report.Iterations++

		label.InitializeWithConstant(-1)
		depressions := 0
		componentID := 0
		for row := 0; row < rows; row++ {
			for col := 0; col < columns; col++ {
				z := grid.Value(row, col)
				if grid.IsNodata(z) || label.Value(row, col) >= 0 {
					continue
				}

				// flood the equal-elevation component containing (row, col)
				isOutlet := false
				spill := math.Inf(1)
				label.SetValue(row, col, componentID)
				queue.Push(row, col)
				for queue.Len() > 0 {
					r, c := queue.Pop()
					for n := 0; n < 8; n++ {
						rN := r + dY[n]
						cN := c + dX[n]
						zN := grid.Value(rN, cN)
						if rN < 0 || rN >= rows || cN < 0 || cN >= columns || grid.IsNodata(zN) {
							isOutlet = true
							continue
						}
						if zN == z {
							if label.Value(rN, cN) < 0 {
								label.SetValue(rN, cN, componentID)
								queue.Push(rN, cN)
							}
						} else if zN < z {
							isOutlet = true
						} else if zN < spill {
							spill = zN
						}
					}
				}
				componentID++

				if !isOutlet && !math.IsInf(spill, 1) {
					depressions++
				}
			}
		}

		if report.Iterations == 1 {
			report.Depressions = depressions
		}
		if depressions == 0 {
			break
		}
		priorityFlood(grid, rows, columns, closed, pq)
	}

	cellArea := dem.CellArea()
	original := dem.Data()
	for i, z := range filled.Data() {
		if z > original[i] && !dem.IsNoData(original[i]) {
			report.RaisedCells++
			report.Volume += (z - original[i]) * cellArea
		}
	}
	return filled, report, nil
}

// priorityFlood raises every valid cell of grid to the lowest elevation at
// which it can drain to an outlet. Outlets are the valid cells on the grid
// edge or next to a nodata cell; the flood always grows from the lowest
// cell reached so far.
func priorityFlood(grid *structures.RectangularArrayFloat64, rows, columns int, closed []bool, pq *structures.CellPQueue) {
	for i := range closed {
		closed[i] = false
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			z := grid.Value(row, col)
			if grid.IsNodata(z) {
				continue
			}
			for n := 0; n < 8; n++ {
				if grid.IsNodata(grid.Value(row+dY[n], col+dX[n])) {
					closed[row*columns+col] = true
					pq.Push(row, col, z)
					break
				}
			}
		}
	}
	for pq.Len() > 0 {
		row, col, z := pq.Pop()
		for n := 0; n < 8; n++ {
			rN := row + dY[n]
			cN := col + dX[n]
			if rN < 0 || rN >= rows || cN < 0 || cN >= columns || closed[rN*columns+cN] {
				continue
			}
			zN := grid.Value(rN, cN)
			if grid.IsNodata(zN) {
				continue
			}
			closed[rN*columns+cN] = true
			if zN < z {
				zN = z
				grid.SetValue(rN, cN, zN)
			}
			pq.Push(rN, cN, zN)
		}
	}
}
