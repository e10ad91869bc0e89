package aluno

import "gorm.io/gorm"

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Aluno, error)
	AtualizarCadastro(db *gorm.DB, id uint, nome, responsavel, cpf string, canalID uint) error
	ListarGrid(db *gorm.DB, unidadeID uint, termo, filtroStatus string) ([]LinhaGrid, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Aluno, error) {
	var a Aluno
	err := db.First(&a, id).Error
	return &a, err
}

func (r *repositoryImpl) AtualizarCadastro(db *gorm.DB, id uint, nome, responsavel, cpf string, canalID uint) error {
	return db.Model(&Aluno{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nome":               nome,
		"responsavel_nome":   responsavel,
		"cpf_responsavel":    cpf,
		"canal_aquisicao_id": canalID,
	}).Error
}

// ListarGrid traz os alunos da unidade com o status calculado pela
// existência de matrícula ativa. Ativos primeiro, depois ordem
// alfabética.
func (r *repositoryImpl) ListarGrid(db *gorm.DB, unidadeID uint, termo, filtroStatus string) ([]LinhaGrid, error) {
	sql := `
		SELECT
			a.id,
			CASE
				WHEN EXISTS (SELECT 1 FROM matriculas m WHERE m.aluno_id = a.id AND m.ativo) THEN 'Ativo'
				ELSE 'Inativo'
			END AS status,
			a.nome,
			a.responsavel_nome,
			a.cpf_responsavel
		FROM alunos a
		WHERE a.unidade_id = ?`
	args := []interface{}{unidadeID}

	if termo != "" {
		sql += " AND (a.nome ILIKE ? OR a.cpf_responsavel LIKE ?)"
		like := "%" + termo + "%"
		args = append(args, like, like)
	}
	sql += " ORDER BY status ASC, a.nome ASC"

	var linhas []LinhaGrid
	if err := db.Raw(sql, args...).Scan(&linhas).Error; err != nil {
		return nil, err
	}

	if filtroStatus == FiltroAtivos || filtroStatus == FiltroInativos {
		alvo := "Ativo"
		if filtroStatus == FiltroInativos {
			alvo = "Inativo"
		}
		filtradas := linhas[:0]
		for _, l := range linhas {
			if l.Status == alvo {
				filtradas = append(filtradas, l)
			}
		}
		linhas = filtradas
	}
	return linhas, nil
}
