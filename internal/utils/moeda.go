package utils

import (
	"fmt"
	"math"
	"strings"
)

// ToCents converte R$ 10,00 (float) para 1000 (int64 centavos) para salvar no banco.
func ToCents(valor float64) int64 {
	if valor <= 0 {
		return 0
	}
	return int64(math.Round(valor * 100))
}

// FromCents converte 1000 (centavos) do banco para 10.00 (float) para exibir.
func FromCents(centavos int64) float64 {
	return float64(centavos) / 100.0
}

// MetadeValor aplica 50% sobre um valor em centavos, arredondando meio
// centavo para cima (17501 -> 8751).
func MetadeValor(centavos int64) int64 {
	if centavos <= 0 {
		return 0
	}
	return (centavos + 1) / 2
}

// FormatarBRL formata centavos como "R$ 1.234,56".
func FormatarBRL(centavos int64) string {
	negativo := centavos < 0
	if negativo {
		centavos = -centavos
	}
	reais := centavos / 100
	resto := centavos % 100

	digitos := fmt.Sprintf("%d", reais)
	var partes []string
	for len(digitos) > 3 {
		partes = append([]string{digitos[len(digitos)-3:]}, partes...)
		digitos = digitos[:len(digitos)-3]
	}
	partes = append([]string{digitos}, partes...)

	valor := fmt.Sprintf("R$ %s,%02d", strings.Join(partes, "."), resto)
	if negativo {
		return "-" + valor
	}
	return valor
}
