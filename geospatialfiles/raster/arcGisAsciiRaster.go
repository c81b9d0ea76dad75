// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Used to read and write an ArcGIS ASCII raster file.
type arcGisAsciiRaster struct{}

// Retrieve the RasterType of this Raster.
func (r *arcGisAsciiRaster) RasterType() RasterType {
	return RT_ArcGisAsciiRaster
}

// Reads the file
func (r *arcGisAsciiRaster) ReadFile(fileName string) (*Raster, error) {
	if fileName == "" {
		return nil, FileReadingError
	}
	f, err := os.Open(fileName)
	if os.IsNotExist(err) {
		return nil, FileDoesNotExistError
	} else if err != nil {
		return nil, FileOpeningError
	}
	defer f.Close()

	var header arcGisHeader
	var data []float64
	cellNum := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	for scanner.Scan() {
		str := scanner.Text()
		if data == nil && isHeaderLine(str) {
			if err = header.parseLine(str); err != nil {
				return nil, err
			}
			continue
		}
		if data == nil { // first data line
			if err = header.finish(); err != nil {
				return nil, err
			}
			data = make([]float64, header.rows*header.columns)
		}
		for _, v := range strings.Fields(str) {
			if cellNum >= len(data) {
				return nil, FileIsNotProperlyFormated
			}
			if data[cellNum], err = strconv.ParseFloat(v, 64); err != nil {
				return nil, FileIsNotProperlyFormated
			}
			cellNum++
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, FileReadingError
	}
	if data == nil || cellNum != len(data) {
		return nil, FileIsNotProperlyFormated
	}

	return NewRasterFromData(header.rows, header.columns, header.north, header.south,
		header.east, header.west, data, header.config(RT_ArcGisAsciiRaster))
}

// Save the file
func (r *arcGisAsciiRaster) Save(rin *Raster, fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return FileWritingError
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	header := newArcGisHeader(rin)
	if err = header.write(w, false); err != nil {
		return err
	}

	data := rin.Data()
	cellNum := 0
	line := make([]byte, 0, 32*rin.Columns)
	for row := 0; row < rin.Rows; row++ {
		line = line[:0]
		for col := 0; col < rin.Columns; col++ {
			if col > 0 {
				line = append(line, ' ')
			}
			// shortest representation that parses back to the same float64
			line = strconv.AppendFloat(line, data[cellNum], 'g', -1, 64)
			cellNum++
		}
		line = append(line, '\n')
		if _, err = w.Write(line); err != nil {
			return FileWritingError
		}
	}

	if err = w.Flush(); err != nil {
		return FileWritingError
	}
	return nil
}
