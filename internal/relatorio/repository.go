package relatorio

import (
	"time"

	"gorm.io/gorm"
)

// LinhaPeriodo é um aluno com matrícula vigente dentro do período.
type LinhaPeriodo struct {
	AlunoID     uint       `json:"alunoId"`
	Aluno       string     `json:"aluno"`
	Responsavel string     `json:"responsavel"`
	Disciplina  string     `json:"disciplina"`
	DataInicio  time.Time  `json:"dataInicio"`
	DataFim     *time.Time `json:"dataFim"`
	Ativo       bool       `json:"ativo"`
}

type Repository interface {
	AlunosDoPeriodo(db *gorm.DB, unidadeID uint, inicio, fim time.Time) ([]LinhaPeriodo, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// AlunosDoPeriodo lista as matrículas que estiveram vigentes em algum
// momento do intervalo: começaram até o fim do período e ainda estavam
// ativas (ou terminaram) depois do início.
func (r *repositoryImpl) AlunosDoPeriodo(db *gorm.DB, unidadeID uint, inicio, fim time.Time) ([]LinhaPeriodo, error) {
	var linhas []LinhaPeriodo
	err := db.Raw(`
		SELECT a.id AS aluno_id, a.nome AS aluno, a.responsavel_nome AS responsavel,
		       d.nome AS disciplina, m.data_inicio, m.data_fim, m.ativo
		FROM matriculas m
		JOIN alunos a ON a.id = m.aluno_id
		JOIN disciplinas d ON d.id = m.disciplina_id
		WHERE m.unidade_id = ?
		  AND m.data_inicio <= ?
		  AND (m.ativo OR m.data_fim >= ?)
		ORDER BY a.nome, d.nome`,
		unidadeID, fim, inicio).Scan(&linhas).Error
	return linhas, err
}
