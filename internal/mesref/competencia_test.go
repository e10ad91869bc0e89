package mesref

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("02/2026")
	require.NoError(t, err)
	assert.Equal(t, Competencia{Ano: 2026, Mes: time.February}, c)

	_, err = Parse("13/2026")
	assert.Error(t, err)
	_, err = Parse("2026-02")
	assert.Error(t, err)
	_, err = Parse("")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "02/2026", Competencia{Ano: 2026, Mes: time.February}.String())
	assert.Equal(t, "12/2025", Competencia{Ano: 2025, Mes: time.December}.String())
}

func TestNova(t *testing.T) {
	c := Nova(time.Date(2026, time.August, 29, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, Competencia{Ano: 2026, Mes: time.August}, c)
}

func TestAdicionarMeses(t *testing.T) {
	dez := Competencia{Ano: 2025, Mes: time.December}
	assert.Equal(t, Competencia{Ano: 2026, Mes: time.January}, dez.AdicionarMeses(1))
	assert.Equal(t, Competencia{Ano: 2026, Mes: time.March}, dez.AdicionarMeses(3))
	assert.Equal(t, Competencia{Ano: 2025, Mes: time.November}, dez.AdicionarMeses(-1))
}

func TestAntes(t *testing.T) {
	jan := Competencia{Ano: 2026, Mes: time.January}
	fev := Competencia{Ano: 2026, Mes: time.February}
	assert.True(t, jan.Antes(fev))
	assert.False(t, fev.Antes(jan))
	assert.False(t, jan.Antes(jan))
	assert.True(t, Competencia{Ano: 2025, Mes: time.December}.Antes(jan))
}

func TestScanValue(t *testing.T) {
	var c Competencia
	require.NoError(t, c.Scan("07/2026"))
	assert.Equal(t, Competencia{Ano: 2026, Mes: time.July}, c)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "07/2026", v)

	require.NoError(t, c.Scan(nil))
	assert.True(t, c.Zero())

	assert.Error(t, c.Scan("not-a-month"))
}

func TestOrdenarDecrescente(t *testing.T) {
	meses := []string{"01/2026", "12/2025", "03/2026", "11/2025"}
	OrdenarDecrescente(meses)
	assert.Equal(t, []string{"03/2026", "01/2026", "12/2025", "11/2025"}, meses)
}
