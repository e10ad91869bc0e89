package matricula

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/aluno"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

// ItemMatricula é uma disciplina a matricular, com valor já em centavos.
type ItemMatricula struct {
	DisciplinaID  uint
	Valor         int64
	Justificativa string
}

type Repository interface {
	MatricularCompleto(db *gorm.DB, unidadeID uint, dados DadosAluno, itens []ItemMatricula, diaVencimento int, taxaCentavos int64, campanhaAtiva bool, hoje time.Time) (uint, error)
	AdicionarParaAluno(db *gorm.DB, unidadeID, alunoID uint, item ItemMatricula, diaVencimento int, hoje time.Time) (*Matricula, error)
	BuscarPorID(db *gorm.DB, id uint) (*Matricula, error)
	ListarDoAluno(db *gorm.DB, alunoID, unidadeID uint) ([]LinhaMatricula, error)
	AplicarBolsa(db *gorm.DB, matriculaID uint, mesesDuracao int, aplicarPendente bool, unidadeID uint) error
	AtualizarValor(db *gorm.DB, matriculaID uint, novoValor int64, unidadeID uint) error
	Inativar(db *gorm.DB, matriculaID uint, quando time.Time) error
	InativarAlunoCompleto(db *gorm.DB, alunoID, unidadeID uint, quando time.Time) error
	ListarBolsasAtivas(db *gorm.DB, unidadeID uint) ([]BolsaAtivaLinha, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// MatricularCompleto realiza todo o processo de matrícula em uma única
// transação atômica: cria o aluno, as matrículas, a primeira cobrança
// de cada disciplina e a taxa de matrícula quando devida.
func (r *repositoryImpl) MatricularCompleto(db *gorm.DB, unidadeID uint, dados DadosAluno, itens []ItemMatricula, diaVencimento int, taxaCentavos int64, campanhaAtiva bool, hoje time.Time) (uint, error) {
	if len(itens) == 0 {
		return 0, fmt.Errorf("matrícula sem disciplinas")
	}

	var alunoID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		novoAluno := aluno.Aluno{
			UnidadeID:        unidadeID,
			Nome:             dados.Nome,
			ResponsavelNome:  dados.Responsavel,
			CPFResponsavel:   dados.CPF,
			CanalAquisicaoID: dados.CanalID,
			DataCadastro:     hoje,
		}
		if err := tx.Create(&novoAluno).Error; err != nil {
			return err
		}
		alunoID = novoAluno.ID

		for _, item := range itens {
			if err := criarMatriculaComCobranca(tx, unidadeID, alunoID, item, diaVencimento, hoje); err != nil {
				return err
			}
		}

		// taxa de matrícula: isenta em campanha ou quando zerada
		if !campanhaAtiva && taxaCentavos > 0 {
			amanha := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
			taxa := pagamento.Pagamento{
				UnidadeID:      unidadeID,
				AlunoID:        alunoID,
				MesReferencia:  mesref.Nova(amanha),
				DataVencimento: amanha,
				Valor:          taxaCentavos,
				Status:         pagamento.StatusPendente,
				Tipo:           pagamento.TipoTaxaMatricula,
			}
			if err := tx.Create(&taxa).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return alunoID, err
}

// AdicionarParaAluno matricula um aluno já existente em mais uma
// disciplina, gerando também a primeira cobrança.
func (r *repositoryImpl) AdicionarParaAluno(db *gorm.DB, unidadeID, alunoID uint, item ItemMatricula, diaVencimento int, hoje time.Time) (*Matricula, error) {
	var criada *Matricula
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		criada, err = novaMatricula(tx, unidadeID, alunoID, item, diaVencimento, hoje)
		if err != nil {
			return err
		}
		return criarCobrancaInicial(tx, criada, hoje)
	})
	return criada, err
}

func criarMatriculaComCobranca(tx *gorm.DB, unidadeID, alunoID uint, item ItemMatricula, diaVencimento int, hoje time.Time) error {
	m, err := novaMatricula(tx, unidadeID, alunoID, item, diaVencimento, hoje)
	if err != nil {
		return err
	}
	return criarCobrancaInicial(tx, m, hoje)
}

func novaMatricula(tx *gorm.DB, unidadeID, alunoID uint, item ItemMatricula, diaVencimento int, hoje time.Time) (*Matricula, error) {
	if item.Valor < 0 {
		return nil, fmt.Errorf("valor acordado não pode ser negativo")
	}
	m := Matricula{
		UnidadeID:             unidadeID,
		AlunoID:               alunoID,
		DisciplinaID:          item.DisciplinaID,
		ValorAcordado:         item.Valor,
		DiaVencimento:         diaVencimento,
		JustificativaDesconto: item.Justificativa,
		Ativo:                 true,
		DataInicio:            hoje,
	}
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func criarCobrancaInicial(tx *gorm.DB, m *Matricula, hoje time.Time) error {
	cobranca := CalcularPrimeiraCobranca(m.ValorAcordado, m.DiaVencimento, hoje)
	p := pagamento.Pagamento{
		UnidadeID:      m.UnidadeID,
		MatriculaID:    &m.ID,
		AlunoID:        m.AlunoID,
		MesReferencia:  cobranca.MesReferencia,
		DataVencimento: cobranca.DataVencimento,
		Valor:          cobranca.Valor,
		Status:         pagamento.StatusPendente,
		Tipo:           pagamento.TipoMensalidade,
	}
	return tx.Create(&p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Matricula, error) {
	var m Matricula
	err := db.First(&m, id).Error
	return &m, err
}

func (r *repositoryImpl) ListarDoAluno(db *gorm.DB, alunoID, unidadeID uint) ([]LinhaMatricula, error) {
	var linhas []LinhaMatricula
	err := db.Raw(`
		SELECT m.id, d.nome AS disciplina, m.valor_acordado, m.dia_vencimento,
		       m.ativo, m.bolsa_ativa, m.bolsa_meses_restantes
		FROM matriculas m
		JOIN disciplinas d ON m.disciplina_id = d.id
		WHERE m.aluno_id = ? AND m.unidade_id = ?`,
		alunoID, unidadeID).Scan(&linhas).Error
	return linhas, err
}

// AplicarBolsa ativa o desconto de 50% por N meses. Com aplicarPendente,
// a cobrança pendente do mês já sai pela metade e consome um mês do
// saldo da bolsa.
func (r *repositoryImpl) AplicarBolsa(db *gorm.DB, matriculaID uint, mesesDuracao int, aplicarPendente bool, unidadeID uint) error {
	if mesesDuracao <= 0 {
		return fmt.Errorf("duração da bolsa deve ser de ao menos 1 mês")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var m Matricula
		if err := tx.First(&m, matriculaID).Error; err != nil {
			return err
		}
		if m.UnidadeID != unidadeID {
			return fmt.Errorf("matrícula %d não pertence à unidade %d", matriculaID, unidadeID)
		}

		// aplicar na pendência consome um mês do saldo imediatamente
		meses := mesesDuracao
		if aplicarPendente {
			meses--
		}
		updates := map[string]interface{}{
			"bolsa_ativa":           meses > 0,
			"bolsa_meses_restantes": meses,
		}
		if err := tx.Model(&Matricula{}).Where("id = ?", matriculaID).Updates(updates).Error; err != nil {
			return err
		}

		if !aplicarPendente {
			return nil
		}
		// a pendência sai pela metade do que ela cobra hoje (pode ser a
		// pro-rata da matrícula, não o valor acordado cheio), meio
		// centavo para cima
		return tx.Model(&pagamento.Pagamento{}).
			Where("matricula_id = ? AND status = ? AND unidade_id = ?", matriculaID, pagamento.StatusPendente, unidadeID).
			Update("valor", gorm.Expr("(valor + 1) / 2")).Error
	})
}

// AtualizarValor troca o valor acordado e recalcula as cobranças
// pendentes (metade quando há bolsa ativa).
func (r *repositoryImpl) AtualizarValor(db *gorm.DB, matriculaID uint, novoValor int64, unidadeID uint) error {
	if novoValor < 0 {
		return fmt.Errorf("valor acordado não pode ser negativo")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var m Matricula
		if err := tx.First(&m, matriculaID).Error; err != nil {
			return err
		}
		if m.UnidadeID != unidadeID {
			return fmt.Errorf("matrícula %d não pertence à unidade %d", matriculaID, unidadeID)
		}

		if err := tx.Model(&Matricula{}).Where("id = ?", matriculaID).
			Update("valor_acordado", novoValor).Error; err != nil {
			return err
		}

		valorFinal := novoValor
		if m.BolsaAtiva {
			valorFinal = utils.MetadeValor(novoValor)
		}
		return tx.Model(&pagamento.Pagamento{}).
			Where("matricula_id = ? AND status = ? AND unidade_id = ?", matriculaID, pagamento.StatusPendente, unidadeID).
			Update("valor", valorFinal).Error
	})
}

func (r *repositoryImpl) Inativar(db *gorm.DB, matriculaID uint, quando time.Time) error {
	return db.Model(&Matricula{}).Where("id = ?", matriculaID).Updates(map[string]interface{}{
		"ativo":    false,
		"data_fim": quando,
	}).Error
}

// InativarAlunoCompleto encerra todas as matrículas do aluno na unidade.
func (r *repositoryImpl) InativarAlunoCompleto(db *gorm.DB, alunoID, unidadeID uint, quando time.Time) error {
	return db.Model(&Matricula{}).
		Where("aluno_id = ? AND unidade_id = ?", alunoID, unidadeID).
		Updates(map[string]interface{}{
			"ativo":    false,
			"data_fim": quando,
		}).Error
}

func (r *repositoryImpl) ListarBolsasAtivas(db *gorm.DB, unidadeID uint) ([]BolsaAtivaLinha, error) {
	var linhas []BolsaAtivaLinha
	err := db.Raw(`
		SELECT a.nome AS aluno, d.nome AS disciplina,
		       m.valor_acordado AS valor_original,
		       m.bolsa_meses_restantes AS meses_restantes
		FROM matriculas m
		JOIN disciplinas d ON d.id = m.disciplina_id
		JOIN alunos a ON m.aluno_id = a.id
		WHERE m.unidade_id = ? AND m.bolsa_ativa AND m.ativo
		ORDER BY m.bolsa_meses_restantes ASC`,
		unidadeID).Scan(&linhas).Error
	return linhas, err
}
