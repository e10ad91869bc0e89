package dashboard

import "time"

// ResumoMes é o painel principal da competência.
type ResumoMes struct {
	Mes               string `json:"mes"`
	ReceitasTotal     int64  `json:"receitasTotal"`
	ReceitasPendentes int64  `json:"receitasPendentes"`
	DespesasTotal     int64  `json:"despesasTotal"`
	DespesasPendentes int64  `json:"despesasPendentes"`
	SaldoPrevisto     int64  `json:"saldoPrevisto"`
	AlunosAtivos      int64  `json:"alunosAtivos"`
	SaidasMes         int64  `json:"saidasMes"`
}

// TotalPendente resume uma fila de pendências.
type TotalPendente struct {
	Quantidade int64 `json:"quantidade"`
	Total      int64 `json:"total"`
}

// Pendencias são as filas de recebimento e pagamento da competência.
type Pendencias struct {
	Mes          string        `json:"mes"`
	Recebimentos TotalPendente `json:"recebimentos"`
	Pagamentos   TotalPendente `json:"pagamentos"`
}

// SerieMensal é um ponto da série anual receita × despesa.
type SerieMensal struct {
	Mes      string `json:"mes"`
	Receitas int64  `json:"receitas"`
	Despesas int64  `json:"despesas"`
}

// CategoriaTotal é o total de despesas de uma categoria na competência.
type CategoriaTotal struct {
	Categoria string `json:"categoria"`
	Total     int64  `json:"total"`
}

// DisciplinaTotal é a quantidade de matrículas ativas por disciplina.
type DisciplinaTotal struct {
	Disciplina string `json:"disciplina"`
	Quantidade int64  `json:"quantidade"`
}

// InadimplenteLinha é uma cobrança vencida e não paga.
type InadimplenteLinha struct {
	PagamentoID    uint      `json:"pagamentoId"`
	Aluno          string    `json:"aluno"`
	Valor          int64     `json:"valor"`
	DataVencimento time.Time `json:"dataVencimento"`
	MesReferencia  string    `json:"mesReferencia"`
}

// Inadimplencia é a foto da carteira vencida.
type Inadimplencia struct {
	Quantidade int64               `json:"quantidade"`
	Total      int64               `json:"total"`
	Cobrancas  []InadimplenteLinha `json:"cobrancas"`
}

// CustoRHMensal é o custo de folha de uma competência.
type CustoRHMensal struct {
	Mes   string `json:"mes"`
	Total int64  `json:"total"`
}
