package equipe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EducaFranquia/api-unidade/internal/catalogo"
)

func TestCategoriaDoCusto(t *testing.T) {
	assert.Equal(t, catalogo.CategoriaImpostos, CategoriaDoCusto(TipoCustoImposto))
	assert.Equal(t, catalogo.CategoriaPessoal, CategoriaDoCusto(TipoCustoBeneficio))
	// tipo desconhecido cai em pessoal
	assert.Equal(t, catalogo.CategoriaPessoal, CategoriaDoCusto("OUTRO"))
}

func TestDescricoesDeFolha(t *testing.T) {
	assert.Equal(t, "Salário - Maria Souza", DescricaoSalario("Maria Souza"))
	assert.Equal(t, "Vale Transporte - Maria Souza", DescricaoCusto("Vale Transporte", "Maria Souza"))
}
