// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/spf13/cobra"
)

var twiCmd = &cobra.Command{
	Use:   "twi",
	Short: "Topographic wetness index",
	Long: `Computes ln(a / (tan(slope) + 0.01)) from the D8 flow accumulation a and
the slope of the filled DEM. Writes TWI.`,
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
		slope, err := tools.Slope(filled, tools.Radians)
		if err != nil {
			return err
		}
		twi, err := tools.TopographicWetnessIndex(accum, slope)
		if err != nil {
			return err
		}
		return writeRasters(c, twi)
	},
}

func init() {
	rootCmd.AddCommand(twiCmd)
	twiCmd.Flags().BoolVar(&optSkipFill, "skip-fill", false, "The input DEM is already filled")
}
