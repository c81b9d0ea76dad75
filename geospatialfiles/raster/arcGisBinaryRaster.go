// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
)

// Used to read and write an ArcGIS binary raster (.flt) file. Values are
// stored as float32 with a separate .hdr keyword header.
type arcGisBinaryRaster struct{}

// Retrieve the RasterType of this Raster.
func (r *arcGisBinaryRaster) RasterType() RasterType {
	return RT_ArcGisBinaryRaster
}

// sort out the names of the header and data files
func (r *arcGisBinaryRaster) fileNames(fileName string) (dataFile, headerFile string, err error) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	switch strings.ToLower(ext) {
	case ".flt", ".hdr":
		return base + ".flt", base + ".hdr", nil
	}
	return "", "", UnsupportedRasterFormatError
}

// Reads the file
func (r *arcGisBinaryRaster) ReadFile(fileName string) (*Raster, error) {
	dataFile, headerFile, err := r.fileNames(fileName)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(headerFile)
	if os.IsNotExist(err) {
		return nil, FileDoesNotExistError
	} else if err != nil {
		return nil, FileReadingError
	}
	var header arcGisHeader
	for _, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
		if err = header.parseLine(line); err != nil {
			return nil, err
		}
	}
	if err = header.finish(); err != nil {
		return nil, err
	}
	// cells are float32, so the sentinel has to be compared at that precision
	header.nodata = float64(float32(header.nodata))

	bytedata, err := os.ReadFile(dataFile)
	if err != nil {
		return nil, FileReadingError
	}
	numCells := header.rows * header.columns
	if len(bytedata) != 4*numCells {
		return nil, FileIsNotProperlyFormated
	}
	values := make([]float32, numCells)
	if err = binary.Read(bytes.NewReader(bytedata), header.byteOrder, values); err != nil {
		return nil, FileReadingError
	}
	data := make([]float64, numCells)
	for i, v := range values {
		data[i] = float64(v)
	}

	return NewRasterFromData(header.rows, header.columns, header.north, header.south,
		header.east, header.west, data, header.config(RT_ArcGisBinaryRaster))
}

// Save the file
func (r *arcGisBinaryRaster) Save(rin *Raster, fileName string) (err error) {
	dataFile, headerFile, err := r.fileNames(fileName)
	if err != nil {
		return err
	}
	header := newArcGisHeader(rin)
	header.nodata = float64(float32(header.nodata))

	hf, err := os.Create(headerFile)
	if err != nil {
		return FileWritingError
	}
	defer hf.Close()
	hw := bufio.NewWriter(hf)
	if err = header.write(hw, true); err != nil {
		return err
	}
	if err = hw.Flush(); err != nil {
		return FileWritingError
	}

	f, err := os.Create(dataFile)
	if err != nil {
		return FileWritingError
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	values := make([]float32, rin.Columns)
	data := rin.Data()
	for row := 0; row < rin.Rows; row++ {
		for col := range values {
			values[col] = float32(data[row*rin.Columns+col])
		}
		if err = binary.Write(w, header.byteOrder, values); err != nil {
			return FileWritingError
		}
	}
	if err = w.Flush(); err != nil {
		return FileWritingError
	}
	return nil
}
