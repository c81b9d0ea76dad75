// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/digitalearthafrica/wetland/config"
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/spf13/cobra"
)

var kernelCmd = &cobra.Command{
	Use:   "kernel KX [KY]",
	Short: "Print a moving window kernel",
	Long: `Prints the binary weights of a KX by KY kernel of the --contiguity shape,
followed by its sum. KY defaults to KX.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("kernel width %q: %w", args[0], err)
		}
		ky := kx
		if len(args) > 1 {
			if ky, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("kernel height %q: %w", args[1], err)
			}
		}
		method, err := tools.ParseContiguity(conf.GetString(config.KeyContiguity))
		if err != nil {
			return err
		}
		k, err := tools.NewKernel(kx, ky, method)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, k.String())
		fmt.Fprintf(out, "sum: %v\n", k.Sum())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kernelCmd)
}
