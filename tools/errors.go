// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import "errors"

var ErrInvalidWindowSize = errors.New("window size must be odd and at least 3")
var ErrEmptyChannelMask = errors.New("no cell meets the flow initiation threshold")
var ErrShapeMismatch = errors.New("input rasters do not share the same grid dimensions")
var ErrNonFiniteInput = errors.New("non-finite value found in a valid (non-nodata) cell")
var ErrInvalidParameter = errors.New("invalid parameter")
var ErrFillDidNotConverge = errors.New("depression filling did not converge")
var ErrUnknownContiguity = errors.New("unknown contiguity method")
