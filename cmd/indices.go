// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "Multi-scale terrain indices",
	Long: `For each window in --windows, smooths the filled DEM with a --contiguity
kernel and writes the smoothed elevation, slope, aspect, curvature, profile
and planform curvature and TPI, each named after the window's ground size
(e.g. Slope_90m for a 3x3 window on a 30 m grid).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		dem, err := readDEM(c)
		if err != nil {
			return err
		}
		filled, err := fillDEM(c, dem, optSkipFill)
		if err != nil {
			return err
		}
		sets, err := tools.MultiScaleTerrainIndices(filled, c.Windows, c.Contiguity, tools.TerrainOptions{
			AngleUnit: c.AngleUnit,
			EdgeMode:  c.EdgeMode,
			Deviation: c.Deviation,
		})
		if err != nil {
			return err
		}
		for _, set := range sets {
			logrus.Debugf("Writing %dx%d %v indices", set.WindowSize, set.WindowSize, set.Method)
			if err = writeRasters(c, set.Rasters()...); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indicesCmd)
	indicesCmd.Flags().BoolVar(&optSkipFill, "skip-fill", false, "The input DEM is already filled")
}
