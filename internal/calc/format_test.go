package calc_test

import (
	"testing"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "12.3k", calc.FormatVolume(12345))
	assert.Equal(t, "1.0k", calc.FormatVolume(1000))
	assert.Equal(t, "950", calc.FormatVolume(950))
	assert.Equal(t, "0", calc.FormatVolume(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1h 5m", calc.FormatDuration(3900))
	assert.Equal(t, "3m 20s", calc.FormatDuration(200))
	assert.Equal(t, "45s", calc.FormatDuration(45))
	assert.Equal(t, "0s", calc.FormatDuration(-3))
}

func TestFormatTimer(t *testing.T) {
	assert.Equal(t, "1:05", calc.FormatTimer(65))
	assert.Equal(t, "0:00", calc.FormatTimer(0))
	assert.Equal(t, "2:00", calc.FormatTimer(120))
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "100lb", calc.FormatWeight(100, domain.UnitPounds))
	assert.Equal(t, "62.5kg", calc.FormatWeight(62.5, domain.UnitKilograms))
	assert.Equal(t, "20lb", calc.FormatWeight(20, ""))
}
