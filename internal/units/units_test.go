package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, u := range ValidUnits {
		assert.True(t, IsValid(u), u)
		assert.NoError(t, Validate(u), u)
	}
	assert.False(t, IsValid("knots"))
	assert.ErrorContains(t, Validate("knots"), "knots")
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		unit string
		want float64
	}{
		{MPS, 10},
		{MPH, 22.369362920544},
		{KMPH, 36},
		{KPH, 36},
		{"unknown", 10},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConvertSpeed(10, tt.unit), 1e-9)
		})
	}
}

func TestFormatSpeed(t *testing.T) {
	assert.Equal(t, "0.200 mps", FormatSpeed(0.2, MPS))
	assert.Equal(t, "0.720 kph", FormatSpeed(0.2, KPH))
	assert.Equal(t, "0.200 mps", FormatSpeed(0.2, "furlongs"))
}
