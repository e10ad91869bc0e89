package migracao

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/aluno"
	"github.com/EducaFranquia/api-unidade/internal/catalogo"
	"github.com/EducaFranquia/api-unidade/internal/matricula"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

// Registro é uma linha da carga inicial, já digerida pela UI.
type Registro struct {
	Nome          string  `json:"nome" validate:"required"`
	Responsavel   string  `json:"responsavel"`
	CPF           string  `json:"cpf"`
	Canal         string  `json:"canal"`
	Disciplina    string  `json:"disciplina" validate:"required"`
	Valor         float64 `json:"valor" validate:"gte=0"`
	DiaVencimento int     `json:"diaVencimento" validate:"min=1,max=31"`
}

// Status informa se a unidade está vazia e pronta para a carga.
type Status struct {
	Alunos     int64 `json:"alunos"`
	Matriculas int64 `json:"matriculas"`
	Pronta     bool  `json:"pronta"`
}

// Resultado resume a carga concluída.
type Resultado struct {
	Alunos     int `json:"alunos"`
	Matriculas int `json:"matriculas"`
}

type Repository interface {
	VerificarStatus(db *gorm.DB, unidadeID uint) (*Status, error)
	Importar(db *gorm.DB, unidadeID uint, registros []Registro, hoje time.Time) (*Resultado, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) VerificarStatus(db *gorm.DB, unidadeID uint) (*Status, error) {
	var s Status
	if err := db.Model(&aluno.Aluno{}).Where("unidade_id = ?", unidadeID).
		Count(&s.Alunos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&matricula.Matricula{}).Where("unidade_id = ?", unidadeID).
		Count(&s.Matriculas).Error; err != nil {
		return nil, err
	}
	s.Pronta = s.Alunos == 0 && s.Matriculas == 0
	return &s, nil
}

// Importar faz a carga inicial da unidade: tudo ou nada. A unidade
// precisa estar vazia; alunos repetidos na carga são reaproveitados
// pelo nome, e disciplinas desconhecidas abortam a importação.
func (r *repositoryImpl) Importar(db *gorm.DB, unidadeID uint, registros []Registro, hoje time.Time) (*Resultado, error) {
	status, err := r.VerificarStatus(db, unidadeID)
	if err != nil {
		return nil, err
	}
	if !status.Pronta {
		return nil, fmt.Errorf("unidade %d já possui cadastros, importação bloqueada", unidadeID)
	}

	var resultado Resultado
	err = db.Transaction(func(tx *gorm.DB) error {
		alunosCriados := make(map[string]uint, len(registros))
		mes := mesref.Nova(hoje)

		for _, reg := range registros {
			alunoID, ok := alunosCriados[reg.Nome]
			if !ok {
				canalID, err := resolverCanal(tx, reg.Canal)
				if err != nil {
					return err
				}
				novo := aluno.Aluno{
					UnidadeID:        unidadeID,
					Nome:             reg.Nome,
					ResponsavelNome:  reg.Responsavel,
					CPFResponsavel:   reg.CPF,
					CanalAquisicaoID: canalID,
					DataCadastro:     hoje,
				}
				if err := tx.Create(&novo).Error; err != nil {
					return err
				}
				alunoID = novo.ID
				alunosCriados[reg.Nome] = alunoID
				resultado.Alunos++
			}

			var disciplina catalogo.Disciplina
			if err := tx.Where("nome = ?", reg.Disciplina).First(&disciplina).Error; err != nil {
				return fmt.Errorf("disciplina desconhecida %q", reg.Disciplina)
			}

			m := matricula.Matricula{
				UnidadeID:             unidadeID,
				AlunoID:               alunoID,
				DisciplinaID:          disciplina.ID,
				ValorAcordado:         utils.ToCents(reg.Valor),
				DiaVencimento:         reg.DiaVencimento,
				JustificativaDesconto: "Migracao",
				Ativo:                 true,
				DataInicio:            hoje,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			resultado.Matriculas++

			p := pagamento.Pagamento{
				UnidadeID:      unidadeID,
				MatriculaID:    &m.ID,
				AlunoID:        alunoID,
				MesReferencia:  mes,
				DataVencimento: utils.DiaValido(hoje.Year(), hoje.Month(), reg.DiaVencimento),
				Valor:          m.ValorAcordado,
				Status:         pagamento.StatusPendente,
				Tipo:           pagamento.TipoMensalidade,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resultado, nil
}

func resolverCanal(tx *gorm.DB, nome string) (uint, error) {
	if nome == "" {
		return 0, nil
	}
	var canal catalogo.CanalAquisicao
	err := tx.Where("nome = ?", nome).FirstOrCreate(&canal, catalogo.CanalAquisicao{Nome: nome}).Error
	return canal.ID, err
}
