package pagamento

import "time"

// ReciboPendente é uma linha da lista de recebimentos em aberto.
type ReciboPendente struct {
	ID             uint      `json:"id"`
	DataVencimento time.Time `json:"dataVencimento"`
	Aluno          string    `json:"aluno"`
	Disciplina     string    `json:"disciplina"`
	Valor          int64     `json:"valor"`
}

// MovimentoCaixa é uma linha do fluxo de caixa do mês (entradas pagas e
// saídas pagas mescladas).
type MovimentoCaixa struct {
	ID             uint       `json:"id"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	Tipo           string     `json:"tipo"`
	Valor          int64      `json:"valor"`
	FormaPagamento string     `json:"formaPagamento"`
	Descricao      string     `json:"descricao"`
}

// HistoricoAluno é uma linha do extrato financeiro de um aluno.
type HistoricoAluno struct {
	ID            uint   `json:"id"`
	MesReferencia string `json:"mesReferencia"`
	Valor         int64  `json:"valor"`
	Status        uint   `json:"status"`
	Tipo          uint   `json:"tipo"`
}
