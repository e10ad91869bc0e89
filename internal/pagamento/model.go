package pagamento

import (
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/mesref"
)

const (
	StatusPendente uint = 1
	StatusPago     uint = 2
)

const (
	TipoMensalidade   uint = 1
	TipoTaxaMatricula uint = 2
)

// Pagamento é uma cobrança mensal. Mensalidades apontam para a
// matrícula; taxas de matrícula são avulsas (MatriculaID nulo).
// O índice único em (matricula_id, mes_referencia) garante no banco a
// regra de "no máximo uma cobrança por matrícula por competência" que
// o robô também confere por existência.
type Pagamento struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	UnidadeID        uint               `gorm:"not null;index" json:"unidadeId"`
	MatriculaID      *uint              `gorm:"index:idx_pagamento_mat_mes,unique" json:"matriculaId"`
	AlunoID          uint               `gorm:"not null;index" json:"alunoId"`
	MesReferencia    mesref.Competencia `gorm:"not null;index;index:idx_pagamento_mat_mes,unique" json:"mesReferencia"`
	DataVencimento   time.Time          `gorm:"not null" json:"dataVencimento"`
	Valor            int64              `gorm:"not null;default:0" json:"valor"`
	Status           uint               `gorm:"not null;default:1;index" json:"status"`
	Tipo             uint               `gorm:"not null;default:1" json:"tipo"`
	FormaPagamentoID *uint              `json:"formaPagamentoId"`
	DataPagamento    *time.Time         `json:"dataPagamento"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func (Pagamento) TableName() string { return "pagamentos" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{})
}
