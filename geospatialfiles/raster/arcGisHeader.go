// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"bufio"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// arcGisHeader holds the keyword header shared by the ArcGIS ASCII grid and
// the .hdr file of the ArcGIS float binary grid. Non-square cells are
// written with the DX/DY keywords used by GDAL.
type arcGisHeader struct {
	rows           int
	columns        int
	nodata         float64
	cellSizeX      float64
	cellSizeY      float64
	north          float64
	south          float64
	east           float64
	west           float64
	byteOrder      binary.ByteOrder
	cellCornerMode bool
}

func newArcGisHeader(r *Raster) arcGisHeader {
	h := arcGisHeader{
		rows:           r.Rows,
		columns:        r.Columns,
		nodata:         r.NoDataValue,
		cellSizeX:      (r.East - r.West) / float64(r.Columns),
		cellSizeY:      (r.North - r.South) / float64(r.Rows),
		north:          r.North,
		south:          r.South,
		east:           r.East,
		west:           r.West,
		byteOrder:      r.config.ByteOrder,
		cellCornerMode: true,
	}
	if h.byteOrder == nil {
		h.byteOrder = binary.LittleEndian
	}
	return h
}

// isHeaderLine reports whether a line starts with a keyword rather than a
// number.
func isHeaderLine(line string) bool {
	s := strings.Fields(line)
	if len(s) < 2 {
		return false
	}
	_, err := strconv.ParseFloat(s[0], 64)
	return err != nil && !strings.EqualFold(s[0], "nan")
}

// parseLine reads one keyword line into the header.
func (h *arcGisHeader) parseLine(line string) (err error) {
	s := strings.Fields(strings.ToLower(line))
	if len(s) < 2 {
		return nil
	}
	key, val := s[0], s[len(s)-1]
	var f float64
	switch key {
	case "ncols":
		h.columns, err = strconv.Atoi(val)
	case "nrows":
		h.rows, err = strconv.Atoi(val)
	case "byteorder":
		if strings.Contains(val, "lsb") {
			h.byteOrder = binary.LittleEndian
		} else {
			h.byteOrder = binary.BigEndian
		}
	case "nodata", "nodata_value":
		h.nodata, err = strconv.ParseFloat(val, 64)
	case "cellsize":
		f, err = strconv.ParseFloat(val, 64)
		h.cellSizeX, h.cellSizeY = f, f
	case "dx":
		h.cellSizeX, err = strconv.ParseFloat(val, 64)
	case "dy":
		h.cellSizeY, err = strconv.ParseFloat(val, 64)
	case "xllcenter":
		h.cellCornerMode = false
		h.west, err = strconv.ParseFloat(val, 64)
	case "yllcenter":
		h.cellCornerMode = false
		h.south, err = strconv.ParseFloat(val, 64)
	case "xllcorner":
		h.cellCornerMode = true
		h.west, err = strconv.ParseFloat(val, 64)
	case "yllcorner":
		h.cellCornerMode = true
		h.south, err = strconv.ParseFloat(val, 64)
	}
	if err != nil {
		return FileIsNotProperlyFormated
	}
	return nil
}

// finish converts the lower-left reference into the North, East, South and
// West coordinates once every keyword has been read.
func (h *arcGisHeader) finish() error {
	if h.rows <= 0 || h.columns <= 0 || h.cellSizeX <= 0 || h.cellSizeY <= 0 {
		return FileIsNotProperlyFormated
	}
	if !h.cellCornerMode {
		h.west -= 0.5 * h.cellSizeX
		h.south -= 0.5 * h.cellSizeY
		h.cellCornerMode = true
	}
	h.east = h.west + float64(h.columns)*h.cellSizeX
	h.north = h.south + float64(h.rows)*h.cellSizeY
	if h.byteOrder == nil {
		h.byteOrder = binary.LittleEndian
	}
	return nil
}

func (h *arcGisHeader) write(w *bufio.Writer, withByteOrder bool) (err error) {
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	lines := []string{
		"NCOLS         " + strconv.Itoa(h.columns),
		"NROWS         " + strconv.Itoa(h.rows),
		"XLLCORNER     " + format(h.west),
		"YLLCORNER     " + format(h.south),
	}
	if math.Abs(h.cellSizeX-h.cellSizeY) > 1e-9*math.Abs(h.cellSizeX) {
		lines = append(lines,
			"DX            "+format(h.cellSizeX),
			"DY            "+format(h.cellSizeY))
	} else {
		lines = append(lines, "CELLSIZE      "+format(h.cellSizeX))
	}
	lines = append(lines, "NODATA_VALUE  "+format(h.nodata))
	if withByteOrder {
		if h.byteOrder == binary.BigEndian {
			lines = append(lines, "BYTEORDER     msbfirst")
		} else {
			lines = append(lines, "BYTEORDER     lsbfirst")
		}
	}
	for _, str := range lines {
		if _, err = w.WriteString(str + "\n"); err != nil {
			return FileWritingError
		}
	}
	return nil
}

func (h *arcGisHeader) config(rt RasterType) *RasterConfig {
	config := NewDefaultRasterConfig()
	config.NoDataValue = h.nodata
	config.InitialValue = h.nodata
	config.RasterFormat = rt
	config.ByteOrder = h.byteOrder
	return config
}
