package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimparCPF(t *testing.T) {
	assert.Equal(t, "52998224725", LimparCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", LimparCPF("52998224725"))
	assert.Equal(t, "", LimparCPF(""))
	assert.Equal(t, "123", LimparCPF("1a2b3c"))
}

func TestValidarCPF(t *testing.T) {
	valido := []string{"52998224725", "11144477735"}
	for _, cpf := range valido {
		assert.True(t, ValidarCPF(cpf), cpf)
	}

	invalido := []string{
		"52998224724", // dígito verificador errado
		"11111111111", // todos iguais
		"00000000000",
		"123456789",    // curto
		"529982247251", // longo
		"",
	}
	for _, cpf := range invalido {
		assert.False(t, ValidarCPF(cpf), cpf)
	}
}

func TestFormatarCPF(t *testing.T) {
	assert.Equal(t, "529.982.247-25", FormatarCPF("52998224725"))
	// fora do tamanho esperado devolve como veio
	assert.Equal(t, "123", FormatarCPF("123"))
}
