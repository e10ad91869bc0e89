package cofre

import (
	"time"

	"gorm.io/gorm"
)

const (
	TipoEntrada = "ENTRADA"
	TipoSaida   = "SAIDA"
)

// Cofre é um envelope de distribuição de lucro da unidade. O saldo é
// sempre a soma das movimentações com sinal.
type Cofre struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UnidadeID        uint      `gorm:"not null;index" json:"unidadeId"`
	Nome             string    `gorm:"size:100;not null" json:"nome"`
	Descricao        string    `gorm:"size:255" json:"descricao"`
	PercentualPadrao int       `gorm:"not null;default:0" json:"percentualPadrao"`
	SaldoAtual       int64     `gorm:"not null;default:0" json:"saldoAtual"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (Cofre) TableName() string { return "cofres" }

// Movimentacao é um lançamento imutável no extrato de um cofre.
// Nunca é atualizada nem removida.
type Movimentacao struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CofreID    uint      `gorm:"not null;index" json:"cofreId"`
	Tipo       string    `gorm:"size:10;not null" json:"tipo"`
	Valor      int64     `gorm:"not null" json:"valor"`
	Descricao  string    `gorm:"size:255;not null" json:"descricao"`
	Data       time.Time `gorm:"not null" json:"data"`
	Referencia string    `gorm:"size:36;not null;index" json:"referencia"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Movimentacao) TableName() string { return "movimentacoes_cofre" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cofre{}, &Movimentacao{})
}
