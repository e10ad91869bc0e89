package matricula

import (
	"time"

	"gorm.io/gorm"
)

// Matricula registra um aluno em uma disciplina por um valor acordado.
// Valor sempre em centavos, nunca negativo. Desativar preenche DataFim.
type Matricula struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	UnidadeID             uint       `gorm:"not null;index" json:"unidadeId"`
	AlunoID               uint       `gorm:"not null;index" json:"alunoId"`
	DisciplinaID          uint       `gorm:"not null;index" json:"disciplinaId"`
	ValorAcordado         int64      `gorm:"not null;default:0" json:"valorAcordado"`
	DiaVencimento         int        `gorm:"not null" json:"diaVencimento"`
	JustificativaDesconto string     `gorm:"size:255" json:"justificativaDesconto"`
	Ativo                 bool       `gorm:"not null;default:true;index" json:"ativo"`
	BolsaAtiva            bool       `gorm:"not null;default:false" json:"bolsaAtiva"`
	BolsaMesesRestantes   int        `gorm:"not null;default:0" json:"bolsaMesesRestantes"`
	DataInicio            time.Time  `gorm:"not null" json:"dataInicio"`
	DataFim               *time.Time `json:"dataFim"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (Matricula) TableName() string { return "matriculas" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Matricula{})
}
