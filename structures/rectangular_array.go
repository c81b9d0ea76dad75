// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package structures

import (
	"errors"
	"math"
)

// A rectangular shaped array (matrix) of float64 type stored in row-major
// order. Reads outside the grid return the nodata value.
type RectangularArrayFloat64 struct {
	data          []float64
	rows, columns int
	nodata        float64
}

func NewRectangularArrayFloat64(rows, columns int, nodata float64) *RectangularArrayFloat64 {
	r := RectangularArrayFloat64{rows: rows, columns: columns, nodata: nodata}
	r.data = make([]float64, rows*columns)
	return &r
}

// Returns the number of rows
func (r *RectangularArrayFloat64) GetRows() int {
	return r.rows
}

// Returns the number of columns
func (r *RectangularArrayFloat64) GetColumns() int {
	return r.columns
}

// Sets the nodata value
func (r *RectangularArrayFloat64) SetNodata(value float64) {
	r.nodata = value
}

// IsNodata reports whether value is the nodata sentinel. A NaN sentinel
// matches every NaN.
func (r *RectangularArrayFloat64) IsNodata(value float64) bool {
	if math.IsNaN(r.nodata) {
		return math.IsNaN(value)
	}
	return value == r.nodata
}

// Retrives an individual cell value in the matrix.
func (r *RectangularArrayFloat64) Value(row, column int) float64 {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		return r.data[row*r.columns+column]
	}
	return r.nodata
}

// Sets an individual cell value in the matrix.
func (r *RectangularArrayFloat64) SetValue(row, column int, value float64) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] = value
	} // else do nothing, the cell is outside the bounds of the matrix
}

// Returns an entire row of values.
func (r *RectangularArrayFloat64) GetRowData(row int) []float64 {
	values := make([]float64, r.columns)
	copy(values, r.data[row*r.columns:(row+1)*r.columns])
	return values
}

// Sets and entire row of values.
func (r *RectangularArrayFloat64) SetRowData(row int, values []float64) {
	if row >= 0 && row < r.rows {
		copy(r.data[row*r.columns:(row+1)*r.columns], values)
	}
}

// Increments an individual cell value in the matrix.
func (r *RectangularArrayFloat64) Increment(row, column int, values ...float64) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		if len(values) == 0 {
			r.data[row*r.columns+column]++
		} else {
			for _, num := range values {
				r.data[row*r.columns+column] += num
			}
		}
	}
}

// Initializes all cells with a constant value.
func (r *RectangularArrayFloat64) InitializeWithConstant(value float64) {
	for i := range r.data {
		r.data[i] = value
	}
}

// Sets the data based on an existing array. The slice is used directly,
// not copied.
func (r *RectangularArrayFloat64) InitializeWithData(values []float64) error {
	if len(values) != r.rows*r.columns {
		return ArrayLengthError
	}
	r.data = values
	return nil
}

// Data returns the backing row-major slice.
func (r *RectangularArrayFloat64) Data() []float64 {
	return r.data
}

// Clone returns a deep copy of the array.
func (r *RectangularArrayFloat64) Clone() *RectangularArrayFloat64 {
	c := NewRectangularArrayFloat64(r.rows, r.columns, r.nodata)
	copy(c.data, r.data)
	return c
}

// A rectangular shaped array (matrix) of byte type. Used for masks and
// flow-direction codes.
type RectangularArrayByte struct {
	data          []byte
	rows, columns int
}

func NewRectangularArrayByte(rows, columns int) *RectangularArrayByte {
	r := RectangularArrayByte{rows: rows, columns: columns}
	r.data = make([]byte, rows*columns)
	return &r
}

// Returns the number of rows
func (r *RectangularArrayByte) GetRows() int {
	return r.rows
}

// Returns the number of columns
func (r *RectangularArrayByte) GetColumns() int {
	return r.columns
}

// Retrives an individual cell value in the matrix. Cells outside the
// matrix are 0.
func (r *RectangularArrayByte) Value(row, column int) byte {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		return r.data[row*r.columns+column]
	}
	return 0
}

// Sets an individual cell value in the matrix.
func (r *RectangularArrayByte) SetValue(row, column int, value byte) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] = value
	}
}

// Increments an individual cell value in the matrix.
func (r *RectangularArrayByte) Increment(row, column int) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column]++
	}
}

// Decrements an individual cell value in the matrix.
func (r *RectangularArrayByte) Decrement(row, column int) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column]--
	}
}

// Initializes all cells with a constant value.
func (r *RectangularArrayByte) InitializeWithConstant(value byte) {
	for i := range r.data {
		r.data[i] = value
	}
}

// A rectangular shaped array (matrix) of int type, used for component labels.
type RectangularArrayInt struct {
	data          []int
	rows, columns int
}

func NewRectangularArrayInt(rows, columns int) *RectangularArrayInt {
	r := RectangularArrayInt{rows: rows, columns: columns}
	r.data = make([]int, rows*columns)
	return &r
}

// Returns the number of rows
func (r *RectangularArrayInt) GetRows() int {
	return r.rows
}

// Returns the number of columns
func (r *RectangularArrayInt) GetColumns() int {
	return r.columns
}

// Retrives an individual cell value in the matrix. Cells outside the
// matrix are -1.
func (r *RectangularArrayInt) Value(row, column int) int {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		return r.data[row*r.columns+column]
	}
	return -1
}

// Sets an individual cell value in the matrix.
func (r *RectangularArrayInt) SetValue(row, column int, value int) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] = value
	}
}

// Initializes all cells with a constant value.
func (r *RectangularArrayInt) InitializeWithConstant(value int) {
	for i := range r.data {
		r.data[i] = value
	}
}

// errors
var ArrayLengthError = errors.New("Incorrect array length: The specified data array must have rows * columns elements.")
