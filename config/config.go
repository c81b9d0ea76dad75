// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package config layers defaults, a config file, WETLAND_ environment
// variables and command line flags into the parameters of a terrain run.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/digitalearthafrica/wetland/tools"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const EnvPrefix = "WETLAND"

// Keys shared by the config file, the environment and the flags.
const (
	KeyDEM               = "dem"
	KeySlopePercent      = "slope-percent"
	KeyOutputDir         = "output-dir"
	KeyOutputFormat      = "output-format"
	KeyWindows           = "windows"
	KeyContiguity        = "contiguity"
	KeyFIA               = "fia"
	KeyAngleUnit         = "angle-unit"
	KeyEdgeMode          = "edge-mode"
	KeyDTWMapUnits       = "dtw-map-units"
	KeyMaxFillIterations = "max-fill-iterations"
	KeyLnTransform       = "ln-transform"
	KeyDeviation         = "deviation"
	KeyVerbose           = "verbose"
	KeyDebug             = "debug"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the validated form of the layered settings.
type Config struct {
	DEM               string
	SlopePercent      string
	OutputDir         string
	OutputFormat      string // "flt" or "asc"
	Windows           []int
	Contiguity        tools.Contiguity
	FIA               float64 // hectares
	AngleUnit         tools.AngleUnit
	EdgeMode          tools.EdgeMode
	DTWMapUnits       bool
	MaxFillIterations int
	LnTransform       bool
	Deviation         bool
	Verbose           bool
	Debug             bool
}

// New returns a viper instance with the defaults set and the environment
// bound. WETLAND_OUTPUT_DIR sets output-dir, and so on.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	def := tools.DefaultPipelineOptions()
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyOutputFormat, "flt")
	v.SetDefault(KeyWindows, def.Windows)
	v.SetDefault(KeyContiguity, def.Contiguity.String())
	v.SetDefault(KeyFIA, def.FIA)
	v.SetDefault(KeyAngleUnit, def.AngleUnit.String())
	v.SetDefault(KeyEdgeMode, def.EdgeMode.String())
	v.SetDefault(KeyDTWMapUnits, false)
	v.SetDefault(KeyMaxFillIterations, 0)
	v.SetDefault(KeyLnTransform, false)
	v.SetDefault(KeyDeviation, false)
}

// ReadFile merges a yaml, toml or json file into v. With no file name,
// $HOME/.wetland.yaml (or .toml, .json) is read when it exists.
func ReadFile(v *viper.Viper, fileName string) error {
	if fileName == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".wetland")
		if err = v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil
			}
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	path, err := homedir.Expand(fileName)
	if err != nil {
		return fmt.Errorf("config %s: %w", fileName, err)
	}
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", fileName, err)
	}
	return nil
}

// Load reads every key out of v and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		DEM:               v.GetString(KeyDEM),
		SlopePercent:      v.GetString(KeySlopePercent),
		OutputDir:         v.GetString(KeyOutputDir),
		OutputFormat:      strings.ToLower(strings.TrimPrefix(v.GetString(KeyOutputFormat), ".")),
		FIA:               v.GetFloat64(KeyFIA),
		DTWMapUnits:       v.GetBool(KeyDTWMapUnits),
		MaxFillIterations: v.GetInt(KeyMaxFillIterations),
		LnTransform:       v.GetBool(KeyLnTransform),
		Deviation:         v.GetBool(KeyDeviation),
		Verbose:           v.GetBool(KeyVerbose),
		Debug:             v.GetBool(KeyDebug),
	}
	var err error
	if c.Windows, err = windows(v.Get(KeyWindows)); err != nil {
		return nil, err
	}
	if c.Contiguity, err = tools.ParseContiguity(v.GetString(KeyContiguity)); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyContiguity, err)
	}
	if c.AngleUnit, err = tools.ParseAngleUnit(v.GetString(KeyAngleUnit)); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyAngleUnit, err)
	}
	if c.EdgeMode, err = tools.ParseEdgeMode(v.GetString(KeyEdgeMode)); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyEdgeMode, err)
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// windows accepts a list from a config file or flag, or a comma or space
// separated string from the environment.
func windows(val interface{}) ([]int, error) {
	var out []int
	switch t := val.(type) {
	case nil:
		return nil, nil
	case []int:
		out = append(out, t...)
	case string:
		for _, s := range strings.FieldsFunc(t, func(r rune) bool {
			return r == ',' || r == ' ' || r == '[' || r == ']'
		}) {
			w, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not an integer: %w", KeyWindows, s, ErrInvalidConfig)
			}
			out = append(out, w)
		}
	case []interface{}:
		for _, e := range t {
			w, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(e)))
			if err != nil {
				return nil, fmt.Errorf("%s: %v is not an integer: %w", KeyWindows, e, ErrInvalidConfig)
			}
			out = append(out, w)
		}
	case []string:
		return windows(strings.Join(t, ","))
	default:
		return nil, fmt.Errorf("%s: unsupported value %v: %w", KeyWindows, val, ErrInvalidConfig)
	}
	return out, nil
}

// Validate checks the settings that do not depend on the input rasters.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "flt", "asc":
	default:
		return fmt.Errorf("%s %q (want flt or asc): %w", KeyOutputFormat, c.OutputFormat, ErrInvalidConfig)
	}
	if err := c.PipelineOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// PipelineOptions converts c into the options of tools.TerrainPipeline.
func (c *Config) PipelineOptions() tools.PipelineOptions {
	return tools.PipelineOptions{
		Windows:           append([]int(nil), c.Windows...),
		Contiguity:        c.Contiguity,
		FIA:               c.FIA,
		AngleUnit:         c.AngleUnit,
		EdgeMode:          c.EdgeMode,
		DTWMapUnits:       c.DTWMapUnits,
		MaxFillIterations: c.MaxFillIterations,
		Deviation:         c.Deviation,
	}
}

// OutputFile is the path an output raster called name is written to.
func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.OutputDir, name+"."+c.OutputFormat)
}
