// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/spf13/cobra"
)

var dtwCmd = &cobra.Command{
	Use:   "dtw",
	Short: "Depth to water",
	Long: `Marks the cells whose flow accumulation reaches the flow initiation area
(--fia, hectares) as channels and writes, for every other cell, its distance
to the nearest channel times its slope fraction. The percent slope comes from
--slope-percent when given and from the filled DEM otherwise. Writes DTW.`,
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
		accum, err := tools.D8FlowAccumulation(filled, tools.FlowAccumOptions{})
		if err != nil {
			return err
		}
		var slopePercent *raster.Raster
		if c.SlopePercent != "" {
			slopePercent, err = readRaster(c.SlopePercent)
		} else {
			slopePercent, err = tools.SlopePercent(filled)
		}
		if err != nil {
			return err
		}
		dtw, err := tools.DepthToWater(filled, accum, slopePercent, tools.DTWOptions{
			FIA:      c.FIA,
			MapUnits: c.DTWMapUnits,
		})
		if err != nil {
			return err
		}
		return writeRasters(c, dtw)
	},
}

func init() {
	rootCmd.AddCommand(dtwCmd)
	dtwCmd.Flags().BoolVar(&optSkipFill, "skip-fill", false, "The input DEM is already filled")
}
