// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"os"
	"runtime"
	"time"

	"github.com/digitalearthafrica/wetland/config"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var conf = config.New()

var optConfigFile string
var optMemProf bool

var startTime time.Time

var rootCmd = &cobra.Command{
	Use:   "wetland",
	Short: "Terrain attributes for wetland mapping",
	Long: `wetland derives terrain attributes from a raster DEM: depression filling,
D8 flow accumulation, slope, topographic wetness index, depth to water and
multi-scale terrain indices (slope, aspect, curvature and TPI).

Settings come from flags, WETLAND_* environment variables or a yaml, toml
or json file given with --config, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadFile(conf, optConfigFile); err != nil {
			return err
		}
		setLogLevel(conf)
		startTime = time.Now()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logrus.Infof("Elapsed time (total): %v", time.Since(startTime).Round(time.Millisecond))
		if optMemProf {
			logMemory()
		}
	},
}

// Execute runs the command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func setLogLevel(v *viper.Viper) {
	if v.GetBool(config.KeyDebug) {
		logrus.SetLevel(logrus.DebugLevel)
	} else if v.GetBool(config.KeyVerbose) {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func logMemory() {
	m := new(runtime.MemStats)
	runtime.ReadMemStats(m)
	logrus.WithFields(logrus.Fields{
		"alloc":       humanize.Bytes(m.Alloc),
		"total_alloc": humanize.Bytes(m.TotalAlloc),
		"heap":        humanize.Bytes(m.HeapAlloc),
		"stack":       humanize.Bytes(m.StackInuse),
	}).Warn("Memory profile")
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&optConfigFile, "config", "", "Config file (yaml, toml or json)")
	pf.BoolVar(&optMemProf, "memprof", false, "Log a memory usage profile when the command ends")
	pf.BoolP(config.KeyVerbose, "v", false, "Log progress and output summaries")
	pf.Bool(config.KeyDebug, false, "Log debugging detail")
	pf.String(config.KeyDEM, "", "Input DEM (.asc or .flt)")
	pf.String(config.KeySlopePercent, "", "Optional percent slope raster used for depth to water")
	pf.StringP(config.KeyOutputDir, "o", ".", "Directory the outputs are written to")
	pf.String(config.KeyOutputFormat, "flt", "Output format, flt or asc")
	pf.IntSlice(config.KeyWindows, []int{3, 9, 15}, "Odd moving window sizes, in cells")
	pf.String(config.KeyContiguity, "queen", "Window shape: queen, rook, bishop, circle or annulus")
	pf.Float64(config.KeyFIA, 1, "Flow initiation area, in hectares")
	pf.String(config.KeyAngleUnit, "degrees", "Unit of slope and aspect: degrees or radians")
	pf.String(config.KeyEdgeMode, "nodata", "Moving window edge handling: nodata or renormalize")
	pf.Bool(config.KeyDTWMapUnits, false, "Measure depth to water distances in map units instead of cells")
	pf.Int(config.KeyMaxFillIterations, 0, "Cap on depression filling iterations (0 = no practical cap)")
	pf.Bool(config.KeyLnTransform, false, "Natural log transform the flow accumulation output")
	pf.Bool(config.KeyDeviation, false, "Also write the deviation from mean elevation (DEV) at each scale")

	err := bindFlags(conf, pf,
		config.KeyVerbose, config.KeyDebug, config.KeyDEM, config.KeySlopePercent,
		config.KeyOutputDir, config.KeyOutputFormat, config.KeyWindows, config.KeyContiguity,
		config.KeyFIA, config.KeyAngleUnit, config.KeyEdgeMode, config.KeyDTWMapUnits,
		config.KeyMaxFillIterations, config.KeyLnTransform, config.KeyDeviation)
	if err != nil {
		logrus.Fatal(err)
	}
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}
