// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:     "tools [TOOL]",
	Aliases: []string{"listtools", "toolhelp"},
	Short:   "List the terrain tools or describe one",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			list := tools.ListTools()
			fmt.Fprintf(out, "The following %v tools are available:\n", len(list))
			for _, t := range list {
				fmt.Fprintf(out, "%-25s%s\n", t.Name, t.Description)
			}
			return nil
		}
		t, err := tools.GetTool(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, tools.GetHeaderText(t.Name))
		fmt.Fprintln(out, t.Description)
		fmt.Fprintln(out, t.Help)
		if len(t.Args) > 0 {
			fmt.Fprintf(out, "\nThe following arguments are listed for '%s':\n", t.Name)
			for _, line := range t.ArgDescriptions() {
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

var rasterFormatsCmd = &cobra.Command{
	Use:   "rasterformats",
	Short: "List the raster formats that can be read and written",
	Run: func(cmd *cobra.Command, args []string) {
		m := raster.GetMapOfFormatsAndExtensions()
		keys := make([]string, 0, len(m))
		for key := range m {
			if !strings.Contains(strings.ToLower(key), "unknown") {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "The following raster formats are supported for reading/writing:")
		for _, key := range keys {
			fmt.Fprintf(out, "%-25s%s\n", key, strings.Join(m[key], ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(rasterFormatsCmd)
}
