package catalogo

import "gorm.io/gorm"

// Tabelas de apoio compartilhadas por todas as unidades.

type Disciplina struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;not null;unique" json:"nome"`
}

type CanalAquisicao struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;not null;unique" json:"nome"`
}

func (CanalAquisicao) TableName() string { return "canais_aquisicao" }

type FormaPagamento struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;not null;unique" json:"nome"`
}

func (FormaPagamento) TableName() string { return "formas_pagamento" }

type CategoriaDespesa struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;not null;unique" json:"nome"`
}

func (CategoriaDespesa) TableName() string { return "categorias_despesas" }

// Categorias fixas referenciadas pelo robô financeiro e pela baixa de
// recebimentos. A seed garante que existam com estes IDs.
const (
	CategoriaPessoal  uint = 1
	CategoriaImpostos uint = 2
	CategoriaTaxas    uint = 3
)

type TipoContratacao struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;not null;unique" json:"nome"`
}

func (TipoContratacao) TableName() string { return "tipos_contratacao" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Disciplina{},
		&CanalAquisicao{},
		&FormaPagamento{},
		&CategoriaDespesa{},
		&TipoContratacao{},
	)
}
