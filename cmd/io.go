// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/digitalearthafrica/wetland/config"
	"github.com/digitalearthafrica/wetland/geospatialfiles/raster"
	"github.com/digitalearthafrica/wetland/tools"
	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
)

var errNoDEM = errors.New("no input DEM, set --dem, WETLAND_DEM or dem in the config file")

// loadConfig validates the layered settings and makes sure the output
// directory exists.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(conf)
	if err != nil {
		return nil, err
	}
	if c.OutputDir, err = homedir.Expand(c.OutputDir); err != nil {
		return nil, err
	}
	if err = os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return c, nil
}

func readRaster(fileName string) (*raster.Raster, error) {
	fileName = strings.TrimSpace(strings.ReplaceAll(fileName, "\"", ""))
	fileName, err := homedir.Expand(fileName)
	if err != nil {
		return nil, err
	}
	r, err := raster.CreateRasterFromFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	logrus.WithFields(logrus.Fields{
		"file":  fileName,
		"rows":  humanize.Comma(int64(r.Rows)),
		"cols":  humanize.Comma(int64(r.Columns)),
		"valid": humanize.Comma(int64(r.NumValidCells())),
	}).Info("Read raster")
	return r, nil
}

func readDEM(c *config.Config) (*raster.Raster, error) {
	if c.DEM == "" {
		return nil, errNoDEM
	}
	return readRaster(c.DEM)
}

// writeRasters saves each raster to the output directory under its own
// name and logs a summary of its values.
func writeRasters(c *config.Config, rasters ...*raster.Raster) error {
	for _, r := range rasters {
		fileName := c.OutputFile(r.Name)
		r.AddMetadataEntry(fmt.Sprintf("Created by wetland %s", version))
		if err := r.Save(fileName); err != nil {
			return fmt.Errorf("writing %s: %w", fileName, err)
		}
		fields := logrus.Fields{"file": fileName}
		if fi, err := os.Stat(fileName); err == nil {
			fields["size"] = humanize.Bytes(uint64(fi.Size()))
		}
		if s, err := tools.Summarize(r); err == nil {
			fields["summary"] = s.String()
		}
		logrus.WithFields(fields).Info("Wrote raster")
	}
	return nil
}
