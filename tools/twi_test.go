package tools

import (
	"errors"
	"math"
	"testing"
)

func TestSlopeOnPlane(t *testing.T) {
	// rises 0.5 per metre towards the east, 10 m cells
	dem := newTestRaster(t, 6, 7, 10, func(row, col int) float64 { return 5 * float64(col) })
	rad, err := Slope(dem, Radians)
	if err != nil {
		t.Fatal(err)
	}
	deg, err := Slope(dem, Degrees)
	if err != nil {
		t.Fatal(err)
	}
	pct, err := SlopePercent(dem)
	if err != nil {
		t.Fatal(err)
	}
	for row := 1; row < 5; row++ {
		for col := 1; col < 6; col++ {
			if math.Abs(rad.Value(row, col)-math.Atan(0.5)) > 1e-12 {
				t.Errorf("(%d, %d) slope %v rad", row, col, rad.Value(row, col))
			}
			if math.Abs(deg.Value(row, col)-math.Atan(0.5)*RadToDeg) > 1e-9 {
				t.Errorf("(%d, %d) slope %v deg", row, col, deg.Value(row, col))
			}
			if math.Abs(pct.Value(row, col)-50) > 1e-9 {
				t.Errorf("(%d, %d) slope %v %%", row, col, pct.Value(row, col))
			}
		}
	}
}

func TestSlopeNorthward(t *testing.T) {
	// elevation increases towards the north (decreasing row)
	dem := newTestRaster(t, 5, 5, 2, func(row, col int) float64 { return -2 * float64(row) })
	pct, err := SlopePercent(dem)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pct.Value(2, 2)-100) > 1e-9 {
		t.Errorf("slope %v %%, want 100", pct.Value(2, 2))
	}
}

func TestSlopeKeepsNoData(t *testing.T) {
	dem := newTestRaster(t, 3, 3, 1, constant(4))
	dem.SetValue(0, 0, testNoData)
	s, err := Slope(dem, Radians)
	if err != nil {
		t.Fatal(err)
	}
	if s.Value(0, 0) != testNoData || s.Value(1, 1) != 0 {
		t.Errorf("slope %v, %v", s.Value(0, 0), s.Value(1, 1))
	}
}

func TestTWI(t *testing.T) {
	accum := newTestRaster(t, 1, 5, 1, func(row, col int) float64 { return math.Pow(2, float64(col)) })
	slope := newTestRaster(t, 1, 5, 1, constant(0.1))
	twi, err := TopographicWetnessIndex(accum, slope)
	if err != nil {
		t.Fatal(err)
	}
	for col := 0; col < 5; col++ {
		want := math.Log(accum.Value(0, col) / (math.Tan(0.1) + 0.01))
		if got := twi.Value(0, col); got != float64(float32(want)) {
			t.Errorf("col %d: twi %v, want %v", col, got, want)
		}
		if col > 0 && twi.Value(0, col) <= twi.Value(0, col-1) {
			t.Errorf("twi does not increase with accumulation at col %d", col)
		}
	}

	flat := newTestRaster(t, 1, 5, 1, constant(0))
	twi, err = TopographicWetnessIndex(accum, flat)
	if err != nil {
		t.Fatal(err)
	}
	if v := twi.Value(0, 0); math.IsInf(v, 0) || math.Abs(v-math.Log(100)) > 1e-5 {
		t.Errorf("flat twi %v, want ln(100)", v)
	}
}

func TestTWIErrors(t *testing.T) {
	accum := newTestRaster(t, 2, 2, 1, constant(1))
	if _, err := TopographicWetnessIndex(accum, newTestRaster(t, 2, 3, 1, constant(0))); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
	bad := newTestRaster(t, 2, 2, 1, constant(0))
	if _, err := TopographicWetnessIndex(bad, accum); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero accumulation: err = %v", err)
	}
	accum.SetValue(0, 1, math.Inf(1))
	if _, err := TopographicWetnessIndex(accum, bad); !errors.Is(err, ErrNonFiniteInput) {
		t.Errorf("err = %v, want ErrNonFiniteInput", err)
	}
}
