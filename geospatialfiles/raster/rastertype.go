// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"path/filepath"
	"strings"
)

// RasterType is used to specify a data format of a raster file
type RasterType int

// Integer constants used to specify each of the supported raster formats
const (
	RT_UnknownRaster RasterType = iota
	RT_ArcGisBinaryRaster
	RT_ArcGisAsciiRaster
)

var rasterTypeList = []string{
	"UnknownRaster",
	"ArcGisBinaryRaster",
	"ArcGisAsciiRaster",
}

var rasterExtensionList = [][]string{
	{},
	{".flt", ".hdr"},
	{".asc", ".txt"},
}

// String returns the English name of the RasterType ("ArcGisBinaryRaster", "ArcGisAsciiRaster", ...).
func (rt RasterType) String() string {
	if int(rt) < 0 || int(rt) >= len(rasterTypeList) {
		return rasterTypeList[0]
	}
	return rasterTypeList[rt]
}

// Returns a list of the file extensions associated with a particular raster format.
func (rt RasterType) GetExtensions() []string {
	if int(rt) < 0 || int(rt) >= len(rasterExtensionList) {
		return nil
	}
	return rasterExtensionList[rt]
}

func IsSupportedRasterFileExtension(fileName string) bool {
	_, err := DetermineRasterFormat(fileName)
	return err == nil
}

// Attempts to determine the raster format from the filename.
func DetermineRasterFormat(fileName string) (RasterType, error) {
	fileExtension := strings.ToLower(filepath.Ext(fileName))
	for i, extensions := range rasterExtensionList {
		for _, ext := range extensions {
			if fileExtension == ext {
				return RasterType(i), nil
			}
		}
	}
	return RT_UnknownRaster, UnsupportedRasterFormatError
}

func GetMapOfFormatsAndExtensions() map[string][]string {
	m := make(map[string][]string)
	for i, val := range rasterTypeList[1:] {
		m[val] = rasterExtensionList[i+1]
	}
	return m
}
