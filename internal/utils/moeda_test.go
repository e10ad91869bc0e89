package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(1000), ToCents(10.00))
	assert.Equal(t, int64(17550), ToCents(175.50))
	assert.Equal(t, int64(1), ToCents(0.01))
	assert.Equal(t, int64(0), ToCents(0))
	assert.Equal(t, int64(0), ToCents(-5.00))
	// arredondamento de ponto flutuante
	assert.Equal(t, int64(1999), ToCents(19.99))
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, 10.00, FromCents(1000))
	assert.Equal(t, 0.01, FromCents(1))
	assert.Equal(t, 0.0, FromCents(0))
}

func TestMetadeValor(t *testing.T) {
	assert.Equal(t, int64(500), MetadeValor(1000))
	// meio centavo arredonda para cima
	assert.Equal(t, int64(8751), MetadeValor(17501))
	assert.Equal(t, int64(1), MetadeValor(1))
	assert.Equal(t, int64(0), MetadeValor(0))
	assert.Equal(t, int64(0), MetadeValor(-100))
}

func TestFormatarBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatarBRL(0))
	assert.Equal(t, "R$ 10,00", FormatarBRL(1000))
	assert.Equal(t, "R$ 1.234,56", FormatarBRL(123456))
	assert.Equal(t, "R$ 1.234.567,89", FormatarBRL(123456789))
	assert.Equal(t, "-R$ 50,25", FormatarBRL(-5025))
}
