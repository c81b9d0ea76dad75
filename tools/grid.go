// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

// Neighbour offsets in compass order starting at north-east and turning
// clockwise: NE, E, SE, S, SW, W, NW, N. A D8 flow direction code is the
// neighbour index plus one; zero means no outflow.
var dX = [8]int{1, 1, 1, 0, -1, -1, -1, 0}
var dY = [8]int{-1, 0, 1, 1, 1, 0, -1, -1}

// checkFinite rejects NaN and infinite values stored in cells that are not
// flagged as nodata.
func checkFinite(r *raster.Raster) error {
	data := r.Data()
	for i, z := range data {
		if r.IsNoData(z) {
			continue
		}
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return fmt.Errorf("%s: cell (%d, %d) = %v: %w", r.Name, i/r.Columns, i%r.Columns, z, ErrNonFiniteInput)
		}
	}
	return nil
}

func checkSameGrid(rasters ...*raster.Raster) error {
	for _, r := range rasters[1:] {
		if !raster.SameGrid(rasters[0], r) {
			return fmt.Errorf("%s is %dx%d but %s is %dx%d: %w", rasters[0].Name, rasters[0].Rows,
				rasters[0].Columns, r.Name, r.Rows, r.Columns, ErrShapeMismatch)
		}
	}
	return nil
}

// parallelRows splits the rows into one block per CPU and calls fn on each
// block concurrently. Blocks write disjoint rows so results do not depend on
// scheduling.
func parallelRows(rows int, fn func(rowSt, rowEnd int)) {
	numCPUs := runtime.NumCPU()
	rowBlockSize := rows / numCPUs
	if rowBlockSize < 1 {
		rowBlockSize = 1
	}
	var wg sync.WaitGroup
	for startingRow := 0; startingRow < rows; startingRow += rowBlockSize {
		endingRow := startingRow + rowBlockSize - 1
		if endingRow >= rows {
			endingRow = rows - 1
		}
		wg.Add(1)
		go func(rowSt, rowEnd int) {
			defer wg.Done()
			fn(rowSt, rowEnd)
		}(startingRow, endingRow)
	}
	wg.Wait()
}

// field is an intermediate full-grid surface with a validity mask. It is
// used for quantities that never leave the package, such as gradients.
type field struct {
	rows, columns int
	v             []float64
	ok            []bool
}

func newField(rows, columns int) *field {
	return &field{
		rows:    rows,
		columns: columns,
		v:       make([]float64, rows*columns),
		ok:      make([]bool, rows*columns),
	}
}

func fieldFromRaster(r *raster.Raster) *field {
	f := newField(r.Rows, r.Columns)
	for i, z := range r.Data() {
		if !r.IsNoData(z) {
			f.v[i] = z
			f.ok[i] = true
		}
	}
	return f
}

// toRaster writes the field into a new raster on the grid of like.
func (f *field) toRaster(like *raster.Raster, name string) *raster.Raster {
	out := raster.NewRasterLike(like, name)
	data := out.Data()
	for i, ok := range f.ok {
		if ok {
			data[i] = f.v[i]
		}
	}
	return out
}

// at returns the value at (row, col) and whether it is inside the grid and
// valid.
func (f *field) at(row, col int) (float64, bool) {
	if row < 0 || row >= f.rows || col < 0 || col >= f.columns {
		return 0, false
	}
	i := row*f.columns + col
	return f.v[i], f.ok[i]
}
