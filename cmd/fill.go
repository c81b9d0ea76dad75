// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"fmt"

	"github.com/digitalearthafrica/wetland/config"
	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// optSkipFill is shared by the commands that fill the DEM before routing.
var optSkipFill bool

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill closed depressions in a DEM",
	Long: `Raises every closed depression of the DEM to its spill elevation, so that
each valid cell drains to the grid edge or to a nodata cell. Writes Filled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		dem, err := readDEM(c)
		if err != nil {
			return err
		}
		filled, err := fillDEM(c, dem, false)
		if err != nil {
			return err
		}
		return writeRasters(c, filled)
	},
}

// fillDEM returns dem with its depressions filled, or dem itself when skip
// is set because the input is already hydrologically conditioned.
func fillDEM(c *config.Config, dem *raster.Raster, skip bool) (*raster.Raster, error) {
	if skip {
		logrus.Debug("Input DEM treated as filled")
		return dem, nil
	}
	filled, report, err := tools.FillDepressions(dem, tools.FillOptions{MaxIterations: c.MaxFillIterations})
	if err != nil {
		return nil, fmt.Errorf("fill depressions: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"iterations": report.Iterations,
		"raised":     humanize.Comma(int64(report.RaisedCells)),
		"volume":     humanize.FormatFloat("#,###.##", report.Volume),
	}).Info("Filled depressions")
	return filled, nil
}

func init() {
	rootCmd.AddCommand(fillCmd)
}
