// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/spf13/cobra"
)

var optAreaUnits bool

var flowAccumCmd = &cobra.Command{
	Use:     "flowaccum",
	Aliases: []string{"d8"},
	Short:   "D8 flow accumulation",
	Long: `Fills the DEM (unless --skip-fill is given), routes every cell to its
steepest-descent neighbour and counts the cells draining through each cell.
Writes FlowAccumulation.`,
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
		accum, err := tools.D8FlowAccumulation(filled, tools.FlowAccumOptions{
			AreaUnits:   optAreaUnits,
			LnTransform: c.LnTransform,
		})
		if err != nil {
			return err
		}
		return writeRasters(c, accum)
	},
}

func init() {
	rootCmd.AddCommand(flowAccumCmd)
	flowAccumCmd.Flags().BoolVar(&optSkipFill, "skip-fill", false, "The input DEM is already filled")
	flowAccumCmd.Flags().BoolVar(&optAreaUnits, "area", false, "Accumulate upslope area in squared map units instead of cells")
}
