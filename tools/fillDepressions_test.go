package tools

import (
	"errors"
	"math"
	"testing"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/structures"
)

// nestedBowl has a one-cell pit inside a 5x5 basin whose rim is broken by
// a single lower edge cell at (0, 3).
func nestedBowl(t *testing.T) *raster.Raster {
	return newTestRaster(t, 7, 7, 1, func(row, col int) float64 {
		switch {
		case row == 0 && col == 3:
			return 6
		case row == 0 || col == 0 || row == 6 || col == 6:
			return 10
		case row == 3 && col == 3:
			return 1
		}
		return 3
	})
}

// drainsEverywhere reports whether every valid cell has a non-increasing
// path to an edge or nodata cell, by climbing from those outlets.
func drainsEverywhere(r *raster.Raster) bool {
	rows, columns := r.Rows, r.Columns
	reached := make([]bool, rows*columns)
	q := structures.NewCellQueue()
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			if !r.IsValid(row, col) {
				continue
			}
			for n := 0; n < 8; n++ {
				if !r.IsValid(row+dY[n], col+dX[n]) {
					reached[row*columns+col] = true
					q.Push(row, col)
					break
				}
			}
		}
	}
	for q.Len() > 0 {
		row, col := q.Pop()
		for n := 0; n < 8; n++ {
			rN, cN := row+dY[n], col+dX[n]
			if r.IsValid(rN, cN) && !reached[rN*columns+cN] && r.Value(rN, cN) >= r.Value(row, col) {
				reached[rN*columns+cN] = true
				q.Push(rN, cN)
			}
		}
	}
	for i, z := range r.Data() {
		if !r.IsNoData(z) && !reached[i] {
			return false
		}
	}
	return true
}

func TestFillSinglePit(t *testing.T) {
	dem := newTestRaster(t, 5, 5, 2, func(row, col int) float64 {
		if row == 2 && col == 2 {
			return 5
		}
		return 10
	})
	filled, report, err := FillDepressions(dem, FillOptions{})
	if err != nil {
		t.Fatalf("FillDepressions: %v", err)
	}
	if filled.Value(2, 2) != 10 {
		t.Errorf("pit filled to %v, want 10", filled.Value(2, 2))
	}
	if report.RaisedCells != 1 || report.Volume != 5*4 {
		t.Errorf("report %+v", report)
	}
	if dem.Value(2, 2) != 5 {
		t.Error("input DEM was modified")
	}
	if filled.Name != "Filled" || filled.GetRasterConfig().CoordinateRefSystemWKT != dem.GetRasterConfig().CoordinateRefSystemWKT {
		t.Error("output does not carry the input grid metadata")
	}
}

func TestFillNestedDepressions(t *testing.T) {
	dem := nestedBowl(t)
	filled, report, err := FillDepressions(dem, FillOptions{})
	if err != nil {
		t.Fatalf("FillDepressions: %v", err)
	}
	for row := 1; row < 6; row++ {
		for col := 1; col < 6; col++ {
			if filled.Value(row, col) != 6 {
				t.Errorf("(%d, %d) = %v, want spill level 6", row, col, filled.Value(row, col))
			}
		}
	}
	if filled.Value(0, 3) != 6 || filled.Value(0, 0) != 10 {
		t.Error("rim changed")
	}
	// the pit is the only closed component of the first pass; the basin
	// around it goes up in the same flood
	if report.Iterations != 2 || report.Depressions != 1 || report.RaisedCells != 25 {
		t.Errorf("report %+v", report)
	}
	if !drainsEverywhere(filled) {
		t.Error("filled DEM still has closed depressions")
	}
}

func TestFillIterationCap(t *testing.T) {
	_, _, err := FillDepressions(nestedBowl(t), FillOptions{MaxIterations: 1})
	if !errors.Is(err, ErrFillDidNotConverge) {
		t.Errorf("err = %v, want ErrFillDidNotConverge", err)
	}
}

func TestFillLargeBasin(t *testing.T) {
	// a 301x301 cone with a 1000 m rim: every interior cell sits at its
	// own level, so raising one level per pass would take tens of
	// thousands of passes
	const size = 301
	dem := newTestRaster(t, size, size, 30, func(row, col int) float64 {
		if row == 0 || col == 0 || row == size-1 || col == size-1 {
			return 1000
		}
		dx, dy := float64(col-size/2), float64(row-size/2)
		return math.Sqrt(dx*dx+dy*dy) + 0.001*float64((row*7+col*13)%5)
	})
	filled, report, err := FillDepressions(dem, FillOptions{MaxIterations: 3})
	if err != nil {
		t.Fatalf("FillDepressions: %v", err)
	}
	if report.Iterations != 2 || report.RaisedCells != (size-2)*(size-2) {
		t.Errorf("report %+v", report)
	}
	for row := 1; row < size-1; row++ {
		for col := 1; col < size-1; col++ {
			if filled.Value(row, col) != 1000 {
				t.Fatalf("(%d, %d) = %v, want 1000", row, col, filled.Value(row, col))
			}
		}
	}
}

func TestFillRandomSurfaces(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		dem := randomDEM(t, 25, 30, seed)
		dem.SetValue(12, 12, testNoData)
		filled, _, err := FillDepressions(dem, FillOptions{})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i, z := range filled.Data() {
			orig := dem.Data()[i]
			if dem.IsNoData(orig) {
				if z != orig {
					t.Fatalf("seed %d: nodata cell %d changed to %v", seed, i, z)
				}
				continue
			}
			if z < orig {
				t.Fatalf("seed %d: cell %d lowered from %v to %v", seed, i, orig, z)
			}
		}
		if !drainsEverywhere(filled) {
			t.Errorf("seed %d: closed depression remains", seed)
		}
		// filling twice changes nothing
		again, report, err := FillDepressions(filled, FillOptions{})
		if err != nil || report.RaisedCells != 0 || report.Iterations != 1 {
			t.Errorf("seed %d: refill report %+v, err %v", seed, report, err)
		}
		for i, z := range again.Data() {
			if z != filled.Data()[i] {
				t.Fatalf("seed %d: refill changed cell %d", seed, i)
			}
		}
	}
}

func TestFillEdgesAndNoData(t *testing.T) {
	// a low edge cell and a pit next to nodata are both outlets
	dem := newTestRaster(t, 5, 5, 1, func(row, col int) float64 {
		switch {
		case row == 0 && col == 2:
			return 1
		case row == 2 && col == 2:
			return testNoData
		case row == 2 && col == 3:
			return 5
		}
		return 10
	})
	filled, report, err := FillDepressions(dem, FillOptions{})
	if err != nil {
		t.Fatalf("FillDepressions: %v", err)
	}
	if report.RaisedCells != 0 || filled.Value(0, 2) != 1 || filled.Value(2, 3) != 5 {
		t.Errorf("outlets were filled: report %+v", report)
	}
	if filled.Value(2, 2) != testNoData {
		t.Error("nodata cell modified")
	}
}

func TestFillNonFinite(t *testing.T) {
	dem := newTestRaster(t, 3, 3, 1, constant(1))
	dem.SetValue(1, 1, math.NaN())
	if _, _, err := FillDepressions(dem, FillOptions{}); !errors.Is(err, ErrNonFiniteInput) {
		t.Errorf("err = %v, want ErrNonFiniteInput", err)
	}

	// a NaN sentinel marks nodata rather than bad input
	config := raster.NewDefaultRasterConfig()
	config.NoDataValue = math.NaN()
	r, err := raster.NewRasterFromData(2, 2, 2, 0, 2, 0, []float64{1, math.NaN(), 2, 3}, config)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := FillDepressions(r, FillOptions{}); err != nil {
		t.Errorf("NaN nodata: %v", err)
	}
}
