package equipe

import (
	"time"

	"gorm.io/gorm"
)

const (
	TipoCustoImposto   = "IMPOSTO"
	TipoCustoBeneficio = "BENEFICIO"
)

// Funcionario é um membro da equipe da unidade. Salário sempre em
// centavos. Desligar preenche DataDesligamento.
type Funcionario struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UnidadeID         uint       `gorm:"not null;index" json:"unidadeId"`
	Nome              string     `gorm:"size:255;not null" json:"nome"`
	Cargo             string     `gorm:"size:100" json:"cargo"`
	TipoContratacaoID uint       `gorm:"not null" json:"tipoContratacaoId"`
	SalarioBase       int64      `gorm:"not null;default:0" json:"salarioBase"`
	DiaPagamento      int        `gorm:"not null;default:5" json:"diaPagamento"`
	Ativo             bool       `gorm:"not null;default:true;index" json:"ativo"`
	DataAdmissao      time.Time  `gorm:"not null" json:"dataAdmissao"`
	DataDesligamento  *time.Time `json:"dataDesligamento"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Custos []CustoPessoal `gorm:"foreignKey:FuncionarioID" json:"custos,omitempty"`
}

func (Funcionario) TableName() string { return "funcionarios" }

// CustoPessoal é um encargo mensal ligado a um funcionário (imposto ou
// benefício). O robô materializa uma despesa por competência.
type CustoPessoal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UnidadeID     uint      `gorm:"not null;index" json:"unidadeId"`
	FuncionarioID uint      `gorm:"not null;index" json:"funcionarioId"`
	Tipo          string    `gorm:"size:20;not null" json:"tipo"`
	Nome          string    `gorm:"size:255;not null" json:"nome"`
	Valor         int64     `gorm:"not null;default:0" json:"valor"`
	DiaVencimento int       `gorm:"not null;default:5" json:"diaVencimento"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (CustoPessoal) TableName() string { return "custos_pessoais" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Funcionario{}, &CustoPessoal{})
}
