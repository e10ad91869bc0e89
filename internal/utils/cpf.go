package utils

import "strings"

// LimparCPF remove tudo que não for dígito.
func LimparCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF confere os dois dígitos verificadores do CPF (apenas dígitos).
func ValidarCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	// CPFs com todos os dígitos iguais passam no cálculo mas são inválidos
	iguais := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			iguais = false
			break
		}
	}
	if iguais {
		return false
	}

	digito := func(quantos int) int {
		soma := 0
		peso := quantos + 1
		for i := 0; i < quantos; i++ {
			soma += int(cpf[i]-'0') * peso
			peso--
		}
		resto := (soma * 10) % 11
		if resto == 10 {
			resto = 0
		}
		return resto
	}

	return digito(9) == int(cpf[9]-'0') && digito(10) == int(cpf[10]-'0')
}

// FormatarCPF devolve o CPF no formato 000.000.000-00.
func FormatarCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}
