// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was originally created by John Lindsay<jlindsay@uoguelph.ca>,
// Feb. 2015.

package tools

import (
	"errors"
	"sort"
	"strings"
)

// ToolInfo documents one terrain tool for command-line help.
type ToolInfo struct {
	Name        string
	Description string
	Help        string
	// Args lists name, type and description of each parameter.
	Args [][]string
}

var ErrUnknownTool = errors.New("unrecognized tool name, type 'wetland tools' for a list of available tools")

var toolList = []ToolInfo{
	{
		Name:        "FillDepressions",
		Description: "Removes closed depressions from a DEM",
		Help: "Raises every closed depression in the DEM to its spill level so that each " +
			"valid cell drains to the grid edge or to a nodata cell.",
		Args: [][]string{
			{"InputDEM", "string", "The input DEM name, with directory and file extension"},
			{"OutputFile", "string", "The output filename, with directory and file extension"},
			{"MaxIterations", "int", "Safety cap on raise iterations (0 = rows*columns+1)"},
		},
	},
	{
		Name:        "D8FlowAccumulation",
		Description: "Performs D8 flow accumulation on a DEM",
		Help: "Fills the DEM and then counts, for every cell, the cells whose steepest-descent " +
			"path passes through it. Flats are routed to their nearest outlet.",
		Args: [][]string{
			{"InputDEM", "string", "The input DEM name, with directory and file extension"},
			{"OutputFile", "string", "The output filename, with directory and file extension"},
			{"LogTransform", "bool", "Log transform the output?"},
		},
	},
	{
		Name:        "TopographicWetnessIndex",
		Description: "Calculates the topographic wetness index",
		Help:        "ln(flow accumulation / (tan(slope) + 0.01)) from a filled DEM.",
		Args: [][]string{
			{"InputDEM", "string", "The input DEM name, with directory and file extension"},
			{"OutputFile", "string", "The output filename, with directory and file extension"},
		},
	},
	{
		Name:        "DepthToWater",
		Description: "Estimates depth to water from a DEM and a percent slope",
		Help: "Cells draining at least the flow initiation area form channels; every other cell " +
			"is its distance to the nearest channel times its slope fraction.",
		Args: [][]string{
			{"InputDEM", "string", "The input DEM name, with directory and file extension"},
			{"SlopePercent", "string", "Percent slope raster on the DEM grid (optional)"},
			{"OutputFile", "string", "The output filename, with directory and file extension"},
			{"FIA", "float", "Flow initiation area in hectares"},
		},
	},
	{
		Name:        "TerrainIndices",
		Description: "Calculates multi-scale slope, aspect, curvature and TPI",
		Help: "Smooths the filled DEM with a contiguity kernel at each window size and derives " +
			"slope, aspect, curvature, profile and planform curvature and TPI.",
		Args: [][]string{
			{"InputDEM", "string", "The input DEM name, with directory and file extension"},
			{"OutputDir", "string", "Directory for the output rasters"},
			{"Windows", "[]int", "Odd window sizes in cells"},
			{"Contiguity", "string", "queen, rook, bishop, circle or annulus"},
		},
	},
	{
		Name:        "Quantiles",
		Description: "Classifies a raster into equal-count quantiles",
		Help:        "Transforms raster values into quantile classes numbered from 1.",
		Args: [][]string{
			{"InputFile", "string", "The input raster name, with directory and file extension"},
			{"OutputFile", "string", "The output filename, with directory and file extension"},
			{"NumBins", "int", "Number of quantile classes"},
		},
	},
	{
		Name:        "TerrainPipeline",
		Description: "Runs every terrain attribute from a raw DEM",
		Help:        "Fill, flow accumulation, slope, TWI, DTW and multi-scale terrain indices in one run.",
		Args: [][]string{
			{"InputDEM", "string", "The input DEM name, with directory and file extension"},
			{"OutputDir", "string", "Directory for the output rasters"},
		},
	},
}

// ListTools returns the tools sorted by name.
func ListTools() []ToolInfo {
	ret := make([]ToolInfo, len(toolList))
	copy(ret, toolList)
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// GetTool looks a tool up by case-insensitive name.
func GetTool(toolName string) (ToolInfo, error) {
	toolName = strings.ToLower(strings.TrimSpace(toolName))
	for _, t := range toolList {
		if strings.ToLower(t.Name) == toolName {
			return t, nil
		}
	}
	return ToolInfo{}, ErrUnknownTool
}

// ArgDescriptions formats the tool's arguments as aligned columns.
func (t ToolInfo) ArgDescriptions() []string {
	trailingSpaces := func(s string, maxLen int) string {
		return s + strings.Repeat(" ", maxLen-len(s)+1)
	}
	lenName, lenType := 0, 0
	for _, val := range t.Args {
		if len(val[0]) > lenName {
			lenName = len(val[0])
		}
		if len(val[1]) > lenType {
			lenType = len(val[1])
		}
	}
	ret := make([]string, len(t.Args))
	for i, val := range t.Args {
		ret[i] = trailingSpaces(val[0], lenName+2) + trailingSpaces(val[1], lenType+2) + val[2]
	}
	return ret
}

// GetHeaderText boxes str in asterisks.
func GetHeaderText(str string) string {
	border := strings.Repeat("*", len(str)+4)
	return border + "\n* " + str + " *\n" + border
}
