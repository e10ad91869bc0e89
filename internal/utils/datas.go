package utils

import "time"

// DiaValido monta uma data ajustando o dia para o último dia do mês
// quando ele não existe (31/02 vira 28/02 ou 29/02).
func DiaValido(ano int, mes time.Month, dia int) time.Time {
	ultimo := time.Date(ano, mes+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dia > ultimo {
		dia = ultimo
	}
	if dia < 1 {
		dia = 1
	}
	return time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)
}

// ProximoDiaUtil empurra sábado para segunda e domingo para segunda.
// O ajuste é de passo único, igual à regra de cobrança vigente.
func ProximoDiaUtil(data time.Time) time.Time {
	switch data.Weekday() {
	case time.Saturday:
		return data.AddDate(0, 0, 2)
	case time.Sunday:
		return data.AddDate(0, 0, 1)
	}
	return data
}
