package tools

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestEuclideanDistanceMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, spacing := range [][2]float64{{1, 1}, {2, 3}, {30, 30}} {
		rows, columns := 13, 17
		target := make([]bool, rows*columns)
		for i := range target {
			target[i] = rnd.Float64() < 0.05
		}
		target[0] = true
		d := euclideanDistance(target, rows, columns, spacing[0], spacing[1])
		for i := range target {
			best := math.Inf(1)
			for j, isTarget := range target {
				if isTarget {
					dx := float64(i%columns-j%columns) * spacing[0]
					dy := float64(i/columns-j/columns) * spacing[1]
					best = math.Min(best, math.Hypot(dx, dy))
				}
			}
			if math.Abs(d[i]-best) > 1e-9*math.Max(1, best) {
				t.Fatalf("spacing %v cell %d: distance %v, want %v", spacing, i, d[i], best)
			}
		}
	}
}

func TestDepthToWater(t *testing.T) {
	// 100 m cells are one hectare each; column 0 carries the channel
	filled := newTestRaster(t, 5, 7, 100, constant(0))
	accum := newTestRaster(t, 5, 7, 100, func(row, col int) float64 {
		if col == 0 {
			return 5
		}
		return 1
	})
	slope := newTestRaster(t, 5, 7, 100, constant(10))

	dtw, err := DepthToWater(filled, accum, slope, DTWOptions{FIA: 2})
	if err != nil {
		t.Fatalf("DepthToWater: %v", err)
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 7; col++ {
			want := float64(col) * 0.1
			if math.Abs(dtw.Value(row, col)-want) > 1e-12 {
				t.Errorf("(%d, %d) dtw %v, want %v", row, col, dtw.Value(row, col), want)
			}
		}
	}
	if dtw.Name != "DTW" {
		t.Errorf("name %q", dtw.Name)
	}

	dtw, err = DepthToWater(filled, accum, slope, DTWOptions{FIA: 2, MapUnits: true})
	if err != nil {
		t.Fatal(err)
	}
	if dtw.Value(2, 3) != 30 {
		t.Errorf("map-unit dtw %v, want 30", dtw.Value(2, 3))
	}
}

func TestDepthToWaterMonotone(t *testing.T) {
	// a single channel cell in the middle of a constant slope
	filled := newTestRaster(t, 9, 9, 10, constant(0))
	accum := newTestRaster(t, 9, 9, 10, func(row, col int) float64 {
		if row == 4 && col == 4 {
			return 1000
		}
		return 1
	})
	slope := newTestRaster(t, 9, 9, 10, constant(25))
	slope.SetValue(0, 0, testNoData)
	dtw, err := DepthToWater(filled, accum, slope, DTWOptions{FIA: 1})
	if err != nil {
		t.Fatal(err)
	}
	if dtw.Value(4, 4) != 0 {
		t.Errorf("channel cell dtw %v", dtw.Value(4, 4))
	}
	if dtw.Value(0, 0) != testNoData {
		t.Errorf("nodata slope gave dtw %v", dtw.Value(0, 0))
	}
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			for row2 := 0; row2 < 9; row2++ {
				for col2 := 0; col2 < 9; col2++ {
					if (row == 0 && col == 0) || (row2 == 0 && col2 == 0) {
						continue
					}
					d1 := math.Hypot(float64(row-4), float64(col-4))
					d2 := math.Hypot(float64(row2-4), float64(col2-4))
					if d1 < d2 && dtw.Value(row, col) > dtw.Value(row2, col2) {
						t.Fatalf("dtw decreases with distance: (%d,%d) vs (%d,%d)", row, col, row2, col2)
					}
				}
			}
		}
	}
}

func TestDepthToWaterErrors(t *testing.T) {
	filled := newTestRaster(t, 3, 3, 100, constant(0))
	accum := newTestRaster(t, 3, 3, 100, constant(1))
	slope := newTestRaster(t, 3, 3, 100, constant(5))

	if _, err := DepthToWater(filled, accum, slope, DTWOptions{FIA: 50}); !errors.Is(err, ErrEmptyChannelMask) {
		t.Errorf("err = %v, want ErrEmptyChannelMask", err)
	}
	if _, err := DepthToWater(filled, accum, slope, DTWOptions{FIA: 0}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
	other := newTestRaster(t, 3, 4, 100, constant(5))
	if _, err := DepthToWater(filled, accum, other, DTWOptions{FIA: 1}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}
