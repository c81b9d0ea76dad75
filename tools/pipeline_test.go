package tools

import (
	"errors"
	"testing"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
)

func valleyDEM(t *testing.T) *raster.Raster {
	// a V-shaped valley draining south, with a pit on one flank
	return newTestRaster(t, 20, 21, 10, func(row, col int) float64 {
		z := 2*float64(absInt(col-10)) + 0.5*float64(20-row)
		if row == 6 && col == 4 {
			z -= 5
		}
		return z
	})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestPipelineOutputs(t *testing.T) {
	dem := valleyDEM(t)
	var stages []string
	p := &TerrainPipeline{
		Options: PipelineOptions{
			Windows:    []int{3, 5},
			Contiguity: Rook,
			FIA:        0.05, // five 100 m2 cells
			AngleUnit:  Degrees,
		},
		Progress: func(stage string, done, total int) {
			if total != 7 {
				t.Errorf("total %d, want 7", total)
			}
			stages = append(stages, stage)
		},
	}
	res, err := p.Run(dem, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"Elevation", "Filled", "FlowAccumulation", "Slope", "TWI", "DTW",
		"Elevation_30m", "Slope_30m", "Aspect_30m", "Curvature_30m", "Profile_curvature_30m",
		"Planform_curvature_30m", "TPI_30m",
		"Elevation_50m", "Slope_50m", "Aspect_50m", "Curvature_50m", "Profile_curvature_50m",
		"Planform_curvature_50m", "TPI_50m"}
	names := res.Names()
	if len(names) != len(want) {
		t.Fatalf("outputs %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("output %d is %q, want %q", i, names[i], want[i])
		}
	}
	for _, r := range res.Outputs {
		if !raster.SameGrid(r, dem) || r.NoDataValue != dem.NoDataValue ||
			r.GetRasterConfig().CoordinateRefSystemWKT != dem.GetRasterConfig().CoordinateRefSystemWKT {
			t.Errorf("%s does not carry the DEM grid", r.Name)
		}
	}
	if len(stages) != 8 || stages[len(stages)-1] != "done" {
		t.Errorf("stages %v", stages)
	}
	if res.Fill.RaisedCells == 0 {
		t.Error("the pit was not filled")
	}
	if res.Get("Elevation").Value(6, 4) != dem.Value(6, 4) {
		t.Error("Elevation output differs from the input")
	}
	// the valley floor is the channel
	if res.Get("DTW").Value(19, 10) != 0 {
		t.Errorf("valley outlet DTW %v", res.Get("DTW").Value(19, 10))
	}
	if res.Get("DTW").Value(10, 0) <= 0 {
		t.Errorf("ridge DTW %v", res.Get("DTW").Value(10, 0))
	}
	if len(res.Scales) != 2 || res.Get("nope") != nil {
		t.Error("unexpected scales or lookup")
	}
}

func TestPipelineUsesSuppliedSlope(t *testing.T) {
	dem := valleyDEM(t)
	slope := newTestRaster(t, 20, 21, 10, constant(0))
	p := &TerrainPipeline{Options: PipelineOptions{Windows: []int{3}, FIA: 0.05}}
	res, err := p.Run(dem, slope)
	if err != nil {
		t.Fatal(err)
	}
	if res.Get("DTW").GetMaximumValue() != 0 {
		t.Error("DTW ignored the supplied percent slope")
	}

	other := newTestRaster(t, 20, 20, 10, constant(0))
	if _, err := p.Run(dem, other); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestPipelineOptionsValidate(t *testing.T) {
	if err := DefaultPipelineOptions().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	cases := []struct {
		mutate func(*PipelineOptions)
		want   error
	}{
		{func(o *PipelineOptions) { o.Windows = nil }, ErrInvalidWindowSize},
		{func(o *PipelineOptions) { o.Windows = []int{3, 8} }, ErrInvalidWindowSize},
		{func(o *PipelineOptions) { o.FIA = 0 }, ErrInvalidParameter},
		{func(o *PipelineOptions) { o.Contiguity = Contiguity(9) }, ErrUnknownContiguity},
		{func(o *PipelineOptions) { o.MaxFillIterations = -1 }, ErrInvalidParameter},
	}
	for i, c := range cases {
		o := DefaultPipelineOptions()
		c.mutate(&o)
		if err := o.Validate(); !errors.Is(err, c.want) {
			t.Errorf("case %d: err = %v, want %v", i, err, c.want)
		}
	}
}
