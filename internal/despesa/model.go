package despesa

import (
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/mesref"
)

const (
	StatusPendente uint = 1
	StatusPaga     uint = 2
)

// Despesa é uma conta a pagar: avulsa, materializada de uma recorrência,
// gerada pela folha ou taxa vinculada a um recebimento.
// A folha é vinculada por chave estrangeira (funcionario_id /
// custo_pessoal_id); a descrição é apenas texto de exibição.
type Despesa struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	UnidadeID      uint               `gorm:"not null;index" json:"unidadeId"`
	CategoriaID    uint               `gorm:"not null;index" json:"categoriaId"`
	Descricao      string             `gorm:"size:255;not null" json:"descricao"`
	Valor          int64              `gorm:"not null;default:0" json:"valor"`
	DataVencimento time.Time          `gorm:"not null" json:"dataVencimento"`
	MesReferencia  mesref.Competencia `gorm:"not null;index;index:idx_despesa_rec_mes,unique;index:idx_despesa_custo_mes,unique;index:idx_despesa_func_mes,unique" json:"mesReferencia"`
	Status         uint               `gorm:"not null;default:1;index" json:"status"`
	DataPagamento  *time.Time         `json:"dataPagamento"`

	// Origens possíveis (mutuamente exclusivas na prática). Os índices
	// únicos por competência fecham a porta para geração duplicada em
	// execuções concorrentes do robô; o de salário é parcial porque o
	// funcionário também aparece nas despesas dos custos pessoais.
	RecorrenteID      *uint `gorm:"index:idx_despesa_rec_mes,unique" json:"recorrenteId"`
	FuncionarioID     *uint `gorm:"index;index:idx_despesa_func_mes,unique,where:custo_pessoal_id IS NULL" json:"funcionarioId"`
	CustoPessoalID    *uint `gorm:"index;index:idx_despesa_custo_mes,unique" json:"custoPessoalId"`
	PagamentoOrigemID *uint `gorm:"index" json:"pagamentoOrigemId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Despesa) TableName() string { return "despesas" }

// DespesaRecorrente é a regra que o robô financeiro materializa em no
// máximo uma despesa por competência.
type DespesaRecorrente struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UnidadeID     uint      `gorm:"not null;index" json:"unidadeId"`
	CategoriaID   uint      `gorm:"not null" json:"categoriaId"`
	Descricao     string    `gorm:"size:255;not null" json:"descricao"`
	Valor         int64     `gorm:"not null;default:0" json:"valor"`
	DiaVencimento int       `gorm:"not null" json:"diaVencimento"`
	Ativo         bool      `gorm:"not null;default:true;index" json:"ativo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (DespesaRecorrente) TableName() string { return "despesas_recorrentes" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Despesa{}, &DespesaRecorrente{})
}
