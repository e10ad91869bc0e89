package aluno

// LinhaGrid é a listagem de alunos com o status derivado da existência
// de matrícula ativa.
type LinhaGrid struct {
	ID              uint   `json:"id"`
	Status          string `json:"status"`
	Nome            string `json:"nome"`
	ResponsavelNome string `json:"responsavelNome"`
	CPFResponsavel  string `json:"cpfResponsavel"`
}

// Filtros de status aceitos pela listagem.
const (
	FiltroAtivos   = "Ativos"
	FiltroInativos = "Inativos"
	FiltroTodos    = "Todos"
)
