package matricula

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/EducaFranquia/api-unidade/internal/mesref"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

func TestCalcularPrimeiraCobranca(t *testing.T) {
	casos := []struct {
		nome          string
		valor         int64
		diaVencimento int
		matricula     time.Time
		esperaValor   int64
		esperaMes     mesref.Competencia
		esperaVenc    time.Time
	}{
		{
			nome:          "inicio do mes cobra valor cheio",
			valor:         30000,
			diaVencimento: 10,
			matricula:     dia(2026, time.March, 5),
			esperaValor:   30000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.March},
			esperaVenc:    dia(2026, time.March, 10), // terça
		},
		{
			nome:          "meio do mes cobra metade",
			valor:         30000,
			diaVencimento: 20,
			matricula:     dia(2026, time.March, 12),
			esperaValor:   15000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.March},
			esperaVenc:    dia(2026, time.March, 20), // sexta
		},
		{
			nome:          "metade arredonda meio centavo para cima",
			valor:         17501,
			diaVencimento: 20,
			matricula:     dia(2026, time.March, 15),
			esperaValor:   8751,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.March},
			esperaVenc:    dia(2026, time.March, 20),
		},
		{
			nome:          "fim do mes empurra para o mes seguinte",
			valor:         30000,
			diaVencimento: 10,
			matricula:     dia(2026, time.March, 25),
			esperaValor:   30000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.April},
			esperaVenc:    dia(2026, time.April, 10), // sexta
		},
		{
			nome:          "vencimento no sabado vai para segunda",
			valor:         30000,
			diaVencimento: 11,
			matricula:     dia(2026, time.March, 25),
			esperaValor:   30000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.April},
			esperaVenc:    dia(2026, time.April, 13), // 11/04 é sábado
		},
		{
			nome:          "dia 31 em fevereiro ajusta para o ultimo dia",
			valor:         30000,
			diaVencimento: 31,
			matricula:     dia(2026, time.January, 25),
			esperaValor:   30000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.February},
			esperaVenc:    dia(2026, time.March, 2), // 28/02 é sábado
		},
		{
			nome:          "vencimento que ja passou vence no dia seguinte",
			valor:         30000,
			diaVencimento: 10,
			matricula:     dia(2026, time.March, 15),
			esperaValor:   15000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.March},
			esperaVenc:    dia(2026, time.March, 16),
		},
		{
			nome:          "virada de ano",
			valor:         20000,
			diaVencimento: 5,
			matricula:     dia(2025, time.December, 28),
			esperaValor:   20000,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.January},
			esperaVenc:    dia(2026, time.January, 5), // segunda
		},
		{
			nome:          "valor zero continua zero",
			valor:         0,
			diaVencimento: 20,
			matricula:     dia(2026, time.March, 12),
			esperaValor:   0,
			esperaMes:     mesref.Competencia{Ano: 2026, Mes: time.March},
			esperaVenc:    dia(2026, time.March, 20),
		},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			resultado := CalcularPrimeiraCobranca(caso.valor, caso.diaVencimento, caso.matricula)
			assert.Equal(t, caso.esperaValor, resultado.Valor)
			assert.Equal(t, caso.esperaMes, resultado.MesReferencia)
			assert.Equal(t, caso.esperaVenc, resultado.DataVencimento)
		})
	}
}
