package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiaValido(t *testing.T) {
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		DiaValido(2026, time.March, 15))

	// fevereiro sem dia 31
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		DiaValido(2026, time.February, 31))

	// ano bissexto
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		DiaValido(2024, time.February, 30))

	assert.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
		DiaValido(2026, time.April, 31))

	assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		DiaValido(2026, time.May, 0))
}

func TestProximoDiaUtil(t *testing.T) {
	segunda := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	sabado := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, segunda, ProximoDiaUtil(sabado))

	domingo := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, segunda, ProximoDiaUtil(domingo))

	// dia útil não muda
	assert.Equal(t, segunda, ProximoDiaUtil(segunda))
	sexta := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sexta, ProximoDiaUtil(sexta))
}
