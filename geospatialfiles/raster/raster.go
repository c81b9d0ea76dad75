// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package raster provides the in-memory Raster grid shared by the terrain
// tools, along with readers and writers for the ArcGIS ASCII (.asc) and
// ArcGIS float binary (.flt/.hdr) grid formats.
package raster

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/digitalearthafrica/wetland/structures"
)

// rasterFile is implemented by each supported on-disk format.
type rasterFile interface {
	ReadFile(fileName string) (*Raster, error)
	Save(r *Raster, fileName string) error
	RasterType() RasterType
}

// Raster is a dense single-band grid of float64 values with a nodata
// sentinel, a geographic extent and an opaque coordinate reference that is
// carried forward unchanged to every derived raster.
type Raster struct {
	Rows, Columns            int
	NumberofCells            int
	North, South, East, West float64
	NoDataValue              float64
	Name                     string
	FileName                 string
	RasterFormat             RasterType
	config                   *RasterConfig
	grid                     *structures.RectangularArrayFloat64
}

type RasterConfig struct {
	NoDataValue            float64
	InitialValue           float64
	RasterFormat           RasterType
	ByteOrder              binary.ByteOrder
	MetadataEntries        []string
	CoordinateRefSystemWKT string
	ZUnits                 string
	XYUnits                string
	PixelIsArea            bool
	EPSGCode               int
}

func (h RasterConfig) String() string {
	var buffer bytes.Buffer
	buffer.WriteString("Raster Configuration:\n")
	s := reflect.ValueOf(&h).Elem()
	typeOfT := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		str := fmt.Sprintf("%s %s = %v\n", typeOfT.Field(i).Name, f.Type(), f.Interface())
		buffer.WriteString(str)
	}
	return buffer.String()
}

func NewDefaultRasterConfig() *RasterConfig {
	var rc RasterConfig
	rc.NoDataValue = -32768.0
	rc.InitialValue = -32768.0
	rc.RasterFormat = RT_UnknownRaster
	rc.ByteOrder = binary.LittleEndian
	rc.ZUnits = "not specified"
	rc.XYUnits = "not specified"
	rc.CoordinateRefSystemWKT = ""
	rc.PixelIsArea = true
	rc.MetadataEntries = make([]string, 0)
	return &rc
}

// Copy returns a deep copy of the configuration.
func (h *RasterConfig) Copy() *RasterConfig {
	c := *h
	c.MetadataEntries = append([]string(nil), h.MetadataEntries...)
	return &c
}

// NewRaster creates an in-memory raster. Every cell is set to the config's
// InitialValue. If more than one config is specified, only the last is used.
func NewRaster(rows int, columns int, north float64, south float64,
	east float64, west float64, config ...*RasterConfig) *Raster {

	var myConfig *RasterConfig
	if len(config) == 0 {
		myConfig = NewDefaultRasterConfig()
	} else {
		myConfig = config[len(config)-1]
	}
	r := &Raster{
		Rows:          rows,
		Columns:       columns,
		NumberofCells: rows * columns,
		North:         north,
		South:         south,
		East:          east,
		West:          west,
		NoDataValue:   myConfig.NoDataValue,
		RasterFormat:  myConfig.RasterFormat,
		config:        myConfig,
		grid:          structures.NewRectangularArrayFloat64(rows, columns, myConfig.NoDataValue),
	}
	if myConfig.InitialValue != 0 {
		r.grid.InitializeWithConstant(myConfig.InitialValue)
	}
	return r
}

// NewRasterFromData wraps an existing row-major slice. The slice is used
// directly, not copied.
func NewRasterFromData(rows, columns int, north, south, east, west float64,
	data []float64, config *RasterConfig) (*Raster, error) {

	if config == nil {
		config = NewDefaultRasterConfig()
	}
	r := NewRaster(0, 0, north, south, east, west, config)
	r.Rows, r.Columns, r.NumberofCells = rows, columns, rows*columns
	r.grid = structures.NewRectangularArrayFloat64(rows, columns, config.NoDataValue)
	if err := r.grid.InitializeWithData(data); err != nil {
		return nil, DataSetError
	}
	return r, nil
}

// NewRasterLike creates a raster on the same grid as r, with the same nodata
// value and coordinate reference, initialised to nodata.
func NewRasterLike(r *Raster, name string) *Raster {
	config := r.config.Copy()
	config.InitialValue = r.NoDataValue
	config.NoDataValue = r.NoDataValue
	config.MetadataEntries = make([]string, 0)
	out := NewRaster(r.Rows, r.Columns, r.North, r.South, r.East, r.West, config)
	out.Name = name
	return out
}

// Clone returns a deep copy of r under a new name.
func (r *Raster) Clone(name string) *Raster {
	out := *r
	out.config = r.config.Copy()
	out.grid = r.grid.Clone()
	out.Name = name
	out.FileName = ""
	return &out
}

// Retrives an individual pixel value in the grid. Cells beyond the grid
// edges return the nodata value.
func (r *Raster) Value(row, column int) float64 {
	return r.grid.Value(row, column)
}

// Sets an individual pixel value in the grid.
func (r *Raster) SetValue(row, column int, value float64) {
	r.grid.SetValue(row, column, value)
}

// IsNoData reports whether value is this raster's nodata sentinel. When the
// sentinel is NaN any NaN matches.
func (r *Raster) IsNoData(value float64) bool {
	return r.grid.IsNodata(value)
}

// IsValid reports whether (row, column) is inside the grid and not nodata.
func (r *Raster) IsValid(row, column int) bool {
	if row < 0 || row >= r.Rows || column < 0 || column >= r.Columns {
		return false
	}
	return !r.grid.IsNodata(r.grid.Value(row, column))
}

// Returns the data as a row-major slice of float64 values. The slice is the
// raster's backing store.
func (r *Raster) Data() []float64 {
	return r.grid.Data()
}

// Sets the data from a slice of float64 values
func (r *Raster) SetData(values []float64) error {
	if err := r.grid.InitializeWithData(values); err != nil {
		return DataSetError
	}
	return nil
}

// Grid exposes the underlying array.
func (r *Raster) Grid() *structures.RectangularArrayFloat64 {
	return r.grid
}

// Sets the raster config
func (r *Raster) SetRasterConfig(value *RasterConfig) {
	r.config = value
	r.NoDataValue = value.NoDataValue
	r.grid.SetNodata(value.NoDataValue)
}

// Gets the raster config
func (r *Raster) GetRasterConfig() *RasterConfig {
	return r.config
}

func (r *Raster) GetMetadataEntries() []string {
	return r.config.MetadataEntries
}

func (r *Raster) AddMetadataEntry(value string) {
	r.config.MetadataEntries = append(r.config.MetadataEntries, value)
}

// GetMinimumValue returns the smallest valid value, or +Inf when there are
// no valid cells.
func (r *Raster) GetMinimumValue() float64 {
	minVal := math.Inf(1)
	for _, v := range r.grid.Data() {
		if !r.grid.IsNodata(v) && v < minVal {
			minVal = v
		}
	}
	return minVal
}

// GetMaximumValue returns the largest valid value, or -Inf when there are
// no valid cells.
func (r *Raster) GetMaximumValue() float64 {
	maxVal := math.Inf(-1)
	for _, v := range r.grid.Data() {
		if !r.grid.IsNodata(v) && v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// NumValidCells counts cells that are not nodata.
func (r *Raster) NumValidCells() int {
	n := 0
	for _, v := range r.grid.Data() {
		if !r.grid.IsNodata(v) {
			n++
		}
	}
	return n
}

func (r *Raster) GetCellSizeX() (cellSizeX float64) {
	if r.config.PixelIsArea {
		cellSizeX = (r.East - r.West) / (float64(r.Columns))
	} else {
		cellSizeX = (r.East - r.West) / (float64(r.Columns - 1))
	}
	return cellSizeX
}

func (r *Raster) GetCellSizeY() (cellSizeY float64) {
	if r.config.PixelIsArea {
		cellSizeY = (r.North - r.South) / (float64(r.Rows))
	} else {
		cellSizeY = (r.North - r.South) / (float64(r.Rows - 1))
	}
	return cellSizeY
}

// CellArea is |cellSizeX| * |cellSizeY| in squared map units.
func (r *Raster) CellArea() float64 {
	return math.Abs(r.GetCellSizeX()) * math.Abs(r.GetCellSizeY())
}

// SameGrid reports whether a and b have identical dimensions.
func SameGrid(a, b *Raster) bool {
	return a.Rows == b.Rows && a.Columns == b.Columns
}

// CreateRasterFromFile reads a raster, choosing the format from the file
// extension.
func CreateRasterFromFile(fileName string) (*Raster, error) {
	rt, err := DetermineRasterFormat(fileName)
	if err != nil {
		return nil, err
	}
	rf := newRasterFile(rt)
	if rf == nil {
		return nil, UnsupportedRasterFormatError
	}
	r, err := rf.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	r.FileName = fileName
	r.RasterFormat = rt
	r.config.RasterFormat = rt
	if r.Name == "" {
		base := filepath.Base(fileName)
		r.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err = readProjection(fileName, r.config); err != nil {
		return nil, err
	}
	return r, nil
}

// Save writes the raster to fileName. The format follows the file
// extension, falling back to the config's RasterFormat.
func (r *Raster) Save(fileName string) (err error) {
	rt, err := DetermineRasterFormat(fileName)
	if err != nil {
		if r.config.RasterFormat == RT_UnknownRaster {
			return err
		}
		rt = r.config.RasterFormat
	}
	rf := newRasterFile(rt)
	if rf == nil {
		return UnsupportedRasterFormatError
	}
	if err = rf.Save(r, fileName); err != nil {
		return err
	}
	r.FileName = fileName
	return writeProjection(fileName, r.config)
}

func newRasterFile(rt RasterType) rasterFile {
	switch rt {
	case RT_ArcGisBinaryRaster:
		return new(arcGisBinaryRaster)
	case RT_ArcGisAsciiRaster:
		return new(arcGisAsciiRaster)
	}
	return nil
}
