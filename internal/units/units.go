// Package units converts solver speeds, always in metres per second, into
// display units.
package units

import (
	"fmt"
	"slices"
)

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	return slices.Contains(ValidUnits, unit)
}

// Validate returns an error naming the accepted units when unit is unknown.
func Validate(unit string) error {
	if !IsValid(unit) {
		return fmt.Errorf("invalid speed unit %q: must be one of %v", unit, ValidUnits)
	}
	return nil
}

// ConvertSpeed converts a speed in m/s to targetUnits. Unknown units are
// treated as m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH, KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

// FormatSpeed renders a m/s speed in targetUnits with its unit suffix.
func FormatSpeed(speedMPS float64, targetUnits string) string {
	if !IsValid(targetUnits) {
		targetUnits = MPS
	}
	return fmt.Sprintf("%.3f %s", ConvertSpeed(speedMPS, targetUnits), targetUnits)
}
