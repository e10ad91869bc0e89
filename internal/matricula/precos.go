package matricula

import (
	"time"

	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

// PrimeiraCobranca é o resultado do cálculo pro-rata da matrícula.
type PrimeiraCobranca struct {
	Valor          int64
	MesReferencia  mesref.Competencia
	DataVencimento time.Time
}

// CalcularPrimeiraCobranca aplica a regra pro-rata por dia do mês da
// matrícula:
//   - dia 1 a 10: 100% do valor acordado, competência do próprio mês;
//   - dia 11 a 20: 50% (arredondando meio centavo para cima), mesmo mês;
//   - dia 21 em diante: 100%, competência e vencimento no mês seguinte.
//
// O vencimento cai no dia configurado da competência, empurrado para o
// próximo dia útil; se essa data não for posterior à matrícula, vence no
// dia seguinte.
func CalcularPrimeiraCobranca(valorAcordado int64, diaVencimento int, dataMatricula time.Time) PrimeiraCobranca {
	dia := dataMatricula.Day()

	valor := valorAcordado
	ref := mesref.Nova(dataMatricula)
	switch {
	case dia <= 10:
		// valor cheio no mês corrente
	case dia <= 20:
		valor = utils.MetadeValor(valorAcordado)
	default:
		ref = ref.AdicionarMeses(1)
	}

	vencimento := utils.ProximoDiaUtil(utils.DiaValido(ref.Ano, ref.Mes, diaVencimento))
	diaMatricula := time.Date(dataMatricula.Year(), dataMatricula.Month(), dataMatricula.Day(), 0, 0, 0, 0, time.UTC)
	if !vencimento.After(diaMatricula) {
		vencimento = diaMatricula.AddDate(0, 0, 1)
	}

	return PrimeiraCobranca{
		Valor:          valor,
		MesReferencia:  ref,
		DataVencimento: vencimento,
	}
}
