package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/digitalearthafrica/wetland/tools"
)

func TestDefaults(t *testing.T) {
	c, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(c.Windows, []int{3, 9, 15}) {
		t.Errorf("windows %v", c.Windows)
	}
	if c.Contiguity != tools.Queen || c.AngleUnit != tools.Degrees || c.EdgeMode != tools.EdgeNoData {
		t.Errorf("contiguity %v unit %v edge mode %v", c.Contiguity, c.AngleUnit, c.EdgeMode)
	}
	if c.FIA != 1 || c.OutputFormat != "flt" || c.OutputDir != "." {
		t.Errorf("fia %v format %q dir %q", c.FIA, c.OutputFormat, c.OutputDir)
	}
	if !reflect.DeepEqual(c.PipelineOptions(), tools.DefaultPipelineOptions()) {
		t.Errorf("pipeline options %+v", c.PipelineOptions())
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("WETLAND_WINDOWS", "5, 11")
	t.Setenv("WETLAND_CONTIGUITY", "Circle")
	t.Setenv("WETLAND_FIA", "2.5")
	t.Setenv("WETLAND_OUTPUT_DIR", "/tmp/out")
	t.Setenv("WETLAND_DTW_MAP_UNITS", "true")
	c, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(c.Windows, []int{5, 11}) {
		t.Errorf("windows %v", c.Windows)
	}
	if c.Contiguity != tools.Circle || c.FIA != 2.5 || !c.DTWMapUnits {
		t.Errorf("contiguity %v fia %v map units %v", c.Contiguity, c.FIA, c.DTWMapUnits)
	}
	if got := c.OutputFile("TWI"); got != filepath.Join("/tmp/out", "TWI.flt") {
		t.Errorf("output file %q", got)
	}
}

func TestConfigFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "wetland.yaml")
	content := "windows: [7, 21]\nangle-unit: radians\nedge-mode: renormalize\noutput-format: asc\n"
	if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	v := New()
	if err := ReadFile(v, fileName); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(c.Windows, []int{7, 21}) {
		t.Errorf("windows %v", c.Windows)
	}
	if c.AngleUnit != tools.Radians || c.EdgeMode != tools.EdgeRenormalize || c.OutputFormat != "asc" {
		t.Errorf("unit %v edge mode %v format %q", c.AngleUnit, c.EdgeMode, c.OutputFormat)
	}
	if err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		key, value string
		want       error
	}{
		{KeyWindows, "3,4", tools.ErrInvalidWindowSize},
		{KeyWindows, "1", tools.ErrInvalidWindowSize},
		{KeyWindows, "3,x", ErrInvalidConfig},
		{KeyFIA, "0", tools.ErrInvalidParameter},
		{KeyContiguity, "hexagon", tools.ErrUnknownContiguity},
		{KeyAngleUnit, "gradians", tools.ErrInvalidParameter},
		{KeyEdgeMode, "wrap", tools.ErrInvalidParameter},
		{KeyOutputFormat, "tif", ErrInvalidConfig},
		{KeyMaxFillIterations, "-1", tools.ErrInvalidParameter},
	}
	for _, tc := range cases {
		v := New()
		v.Set(tc.key, tc.value)
		if _, err := Load(v); !errors.Is(err, tc.want) {
			t.Errorf("%s=%q: err = %v, want %v", tc.key, tc.value, err, tc.want)
		}
	}
}
