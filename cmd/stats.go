// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"fmt"

	"github.com/digitalearthafrica/wetland/tools"
	"github.com/spf13/cobra"
)

var optQuantiles int

var statsCmd = &cobra.Command{
	Use:   "stats RASTER...",
	Short: "Summary statistics of rasters",
	Long: `Prints the valid cell count, minimum, maximum, mean, standard deviation,
median and 5th/95th percentiles of each raster. With --quantiles N, also
writes <name>_quantiles to --output-dir, classing each cell into one of N
equal-frequency bins.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		for _, fileName := range args {
			r, err := readRaster(fileName)
			if err != nil {
				return err
			}
			s, err := tools.Summarize(r)
			if err != nil {
				return fmt.Errorf("%s: %w", fileName, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
			if optQuantiles > 0 {
				q, err := tools.Quantiles(r, optQuantiles)
				if err != nil {
					return fmt.Errorf("%s: %w", fileName, err)
				}
				if err = writeRasters(c, q); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&optQuantiles, "quantiles", 0, "Write an N-class quantile raster for each input")
}
