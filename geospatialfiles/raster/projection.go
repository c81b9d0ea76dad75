// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"os"
	"path/filepath"
	"strings"
)

// The ArcGIS grid formats keep their coordinate reference in a .prj
// sidecar. The WKT is carried as an opaque string.
func projectionFileName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".prj"
}

func readProjection(fileName string, config *RasterConfig) error {
	content, err := os.ReadFile(projectionFileName(fileName))
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return FileReadingError
	}
	config.CoordinateRefSystemWKT = strings.TrimSpace(string(content))
	return nil
}

func writeProjection(fileName string, config *RasterConfig) error {
	if config.CoordinateRefSystemWKT == "" {
		return nil
	}
	if err := os.WriteFile(projectionFileName(fileName), []byte(config.CoordinateRefSystemWKT+"\n"), 0o644); err != nil {
		return FileWritingError
	}
	return nil
}
