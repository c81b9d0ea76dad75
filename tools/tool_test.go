package tools

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

const testNoData = -9999.0

// newTestRaster builds a rows x columns raster with square cells whose
// lower-left corner is at the origin.
func newTestRaster(t *testing.T, rows, columns int, cellSize float64, fn func(row, col int) float64) *raster.Raster {
	t.Helper()
	config := raster.NewDefaultRasterConfig()
	config.NoDataValue = testNoData
	config.CoordinateRefSystemWKT = "LOCAL_CS[\"test\"]"
	data := make([]float64, rows*columns)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			data[row*columns+col] = fn(row, col)
		}
	}
	r, err := raster.NewRasterFromData(rows, columns, float64(rows)*cellSize, 0, float64(columns)*cellSize, 0, data, config)
	if err != nil {
		t.Fatalf("NewRasterFromData: %v", err)
	}
	r.Name = "dem"
	return r
}

func constant(v float64) func(row, col int) float64 {
	return func(row, col int) float64 { return v }
}

// randomDEM is a rough surface with plenty of pits and flats.
func randomDEM(t *testing.T, rows, columns int, seed int64) *raster.Raster {
	rnd := rand.New(rand.NewSource(seed))
	return newTestRaster(t, rows, columns, 10, func(row, col int) float64 {
		return math.Round(rnd.Float64()*20) + 0.2*float64(row)
	})
}

func TestSummarize(t *testing.T) {
	r := newTestRaster(t, 10, 11, 1, func(row, col int) float64 {
		if col == 10 {
			return testNoData
		}
		return float64(row*10 + col + 1)
	})
	s, err := Summarize(r)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 100 || s.Min != 1 || s.Max != 100 {
		t.Errorf("count %d min %v max %v", s.Count, s.Min, s.Max)
	}
	if s.Mean != 50.5 || s.Median != 50.5 {
		t.Errorf("mean %v median %v", s.Mean, s.Median)
	}
	if s.P5 != 5 || s.P95 != 95 {
		t.Errorf("p5 %v p95 %v", s.P5, s.P95)
	}
	if math.Abs(s.StdDev-math.Sqrt(9999.0/12)) > 1e-9 {
		t.Errorf("stddev %v", s.StdDev)
	}
	if s.String() == "" {
		t.Error("empty summary string")
	}

	empty := newTestRaster(t, 2, 2, 1, constant(testNoData))
	if _, err := Summarize(empty); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty raster: err = %v", err)
	}
}

func TestQuantiles(t *testing.T) {
	r := newTestRaster(t, 10, 10, 1, func(row, col int) float64 { return float64(row*10 + col + 1) })
	q, err := Quantiles(r, 4)
	if err != nil {
		t.Fatalf("Quantiles: %v", err)
	}
	counts := map[float64]int{}
	prev := 0.0
	for i, class := range q.Data() {
		if class < prev {
			t.Fatalf("class decreases at value %d", i+1)
		}
		prev = class
		counts[class]++
	}
	if len(counts) != 4 || q.Value(0, 0) != 1 || q.Value(9, 9) != 4 {
		t.Errorf("classes %v", counts)
	}
	for class, n := range counts {
		if n < 24 || n > 26 {
			t.Errorf("class %v has %d cells", class, n)
		}
	}
	if _, err := Quantiles(r, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("1 bin: err = %v", err)
	}
}

func TestToolList(t *testing.T) {
	list := ListTools()
	if len(list) == 0 {
		t.Fatal("no tools")
	}
	if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Name < list[j].Name }) {
		t.Error("tools not sorted")
	}
	tool, err := GetTool("  d8flowaccumulation ")
	if err != nil || tool.Name != "D8FlowAccumulation" {
		t.Errorf("GetTool = %v, %v", tool.Name, err)
	}
	args := tool.ArgDescriptions()
	if len(args) != 3 {
		t.Fatalf("args %q", args)
	}
	for i, line := range args {
		if strings.Index(line, tool.Args[i][2]) != strings.Index(args[0], tool.Args[0][2]) {
			t.Errorf("description column not aligned: %q", args)
		}
	}
	if _, err := GetTool("Hillshade"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("unknown tool: err = %v", err)
	}
	if got := GetHeaderText("Fill"); got != "********\n* Fill *\n********" {
		t.Errorf("header %q", got)
	}
}

func TestParseOptions(t *testing.T) {
	if u, err := ParseAngleUnit("Degrees"); err != nil || u != Degrees {
		t.Errorf("ParseAngleUnit = %v, %v", u, err)
	}
	if _, err := ParseAngleUnit("grads"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("grads: err = %v", err)
	}
	if m, err := ParseEdgeMode("renormalise"); err != nil || m != EdgeRenormalize {
		t.Errorf("ParseEdgeMode = %v, %v", m, err)
	}
	if _, err := ParseEdgeMode("wrap"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("wrap: err = %v", err)
	}
}
