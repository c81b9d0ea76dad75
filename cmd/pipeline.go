// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var optNoProgress bool

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Derive every terrain attribute from a DEM",
	Long: `Runs depression filling, D8 flow accumulation, slope, TWI, depth to water
and the multi-scale terrain indices in one pass and writes each output to
--output-dir under its own name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		dem, err := readDEM(c)
		if err != nil {
			return err
		}
		var slopePercent *raster.Raster
		if c.SlopePercent != "" {
			if slopePercent, err = readRaster(c.SlopePercent); err != nil {
				return err
			}
		}

		p := tools.TerrainPipeline{Options: c.PipelineOptions()}
		if !optNoProgress {
			bar := progressbar.NewOptions(5+len(c.Windows),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("starting"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			defer bar.Finish()
			p.Progress = func(stage string, done, total int) {
				bar.Describe(stage)
				_ = bar.Set(done)
				logrus.Debugf("Stage %d of %d: %s", done+1, total, stage)
			}
		}
		res, err := p.Run(dem, slopePercent)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"outputs":     len(res.Outputs),
			"fill_raised": humanize.Comma(int64(res.Fill.RaisedCells)),
			"fill_iter":   res.Fill.Iterations,
			"cells":       humanize.Comma(int64(dem.Rows * dem.Columns)),
		}).Info("Pipeline complete")
		return writeRasters(c, res.Outputs...)
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
	pipelineCmd.Flags().BoolVar(&optNoProgress, "no-progress", false, "Do not draw a progress bar")
}
