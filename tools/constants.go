package tools

import (
	"fmt"
	"math"
	"strings"
)

const (
	Pi       = math.Pi
	RadToDeg = 180 / Pi
)

// AngleUnit selects the unit of slope and aspect outputs.
type AngleUnit int

const (
	Radians AngleUnit = iota
	Degrees
)

func (u AngleUnit) String() string {
	if u == Degrees {
		return "degrees"
	}
	return "radians"
}

// convert converts an angle in radians into u.
func (u AngleUnit) convert(rad float64) float64 {
	if u == Degrees {
		return rad * RadToDeg
	}
	return rad
}

func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radians", "rad", "":
		return Radians, nil
	case "degrees", "deg":
		return Degrees, nil
	}
	return Radians, fmt.Errorf("angle unit %q: %w", s, ErrInvalidParameter)
}
